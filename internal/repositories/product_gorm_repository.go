package repositories

import (
	"errors"
	"fmt"
	"strings"

	"northwind/internal/models"

	"gorm.io/gorm"
)

// replaceColumns are written on every update, zero values included.
var replaceColumns = []string{"ProductName", "SupplierID", "CategoryID", "Unit", "Price", "UpdatedAt"}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
// The db session should be opened with TranslateError so that constraint
// failures can be recognised regardless of the driver.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("product_id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product; the database assigns its ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Omit("Supplier", "Category").Create(product).Error; err != nil {
		return translateWriteError("create", err)
	}
	return nil
}

// Update replaces the mutable columns of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(product).Select(replaceColumns).Updates(product)
	if res.Error != nil {
		return translateWriteError("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, product.ProductID)
	}
	return nil
}

// Delete permanently removes a product by its ID.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "product_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return nil
}

// translateWriteError falls back to the message text for drivers whose
// constraint errors gorm does not translate.
func translateWriteError(op string, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(strings.ToLower(err.Error()), "foreign key constraint") {
		return fmt.Errorf("failed to %s product: %w", op, ErrForeignKeyViolation)
	}
	return fmt.Errorf("failed to %s product: %w", op, err)
}
