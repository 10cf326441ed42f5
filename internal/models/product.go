package models

import "time"

// Product represents a catalog item that references a supplier and a category.
type Product struct {
	ProductID   uint      `json:"productID" gorm:"primaryKey;autoIncrement"`
	ProductName string    `json:"productName" gorm:"type:varchar(255)"`
	SupplierID  *uint     `json:"supplierID"`
	Supplier    *Supplier `json:"-" gorm:"foreignKey:SupplierID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CategoryID  *uint     `json:"categoryID"`
	Category    *Category `json:"-" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Unit        string    `json:"unit" gorm:"type:varchar(255)"`
	Price       float64   `json:"price" gorm:"type:numeric(10,2)"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductRequest is the body accepted by create and update.
// Omitted fields keep their zero value, so an update always replaces all five.
type ProductRequest struct {
	ProductName string  `json:"productName"`
	SupplierID  *uint   `json:"supplierID"`
	CategoryID  *uint   `json:"categoryID"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
}

// Apply overwrites the mutable fields of p with the request values.
func (r ProductRequest) Apply(p *Product) {
	p.ProductName = r.ProductName
	p.SupplierID = r.SupplierID
	p.CategoryID = r.CategoryID
	p.Unit = r.Unit
	p.Price = r.Price
}
