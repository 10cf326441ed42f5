package repositories

import (
	"errors"

	"northwind/internal/models"
)

var (
	// ErrProductNotFound is returned when no product row matches an id.
	ErrProductNotFound = errors.New("product not found")
	// ErrForeignKeyViolation is returned when a product references a missing supplier or category.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
