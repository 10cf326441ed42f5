package models

// Supplier is a vendor a product can be bought from.
type Supplier struct {
	ID           uint   `json:"supplierID" gorm:"column:supplier_id;primaryKey;autoIncrement"`
	SupplierName string `json:"supplierName" gorm:"type:varchar(255)"`
	ContactName  string `json:"contactName" gorm:"type:varchar(255)"`
	City         string `json:"city" gorm:"type:varchar(100)"`
	Country      string `json:"country" gorm:"type:varchar(100)"`
}

// Category groups products.
type Category struct {
	ID           uint   `json:"categoryID" gorm:"column:category_id;primaryKey;autoIncrement"`
	CategoryName string `json:"categoryName" gorm:"type:varchar(255)"`
	Description  string `json:"description" gorm:"type:text"`
}
