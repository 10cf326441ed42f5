package repositories

import (
	"fmt"

	"northwind/internal/models"

	"gorm.io/gorm"
)

// ReferenceRepository manages the supplier and category rows products point at.
type ReferenceRepository interface {
	CreateSupplier(supplier *models.Supplier) error
	CreateCategory(category *models.Category) error
	ListSuppliers() ([]models.Supplier, error)
	ListCategories() ([]models.Category, error)
	SupplierExists(id uint) (bool, error)
	CategoryExists(id uint) (bool, error)
}

// GORMReferenceRepository is a GORM implementation of ReferenceRepository.
type GORMReferenceRepository struct {
	db *gorm.DB
}

// NewGORMReferenceRepository creates a new instance of GORMReferenceRepository.
func NewGORMReferenceRepository(db *gorm.DB) *GORMReferenceRepository {
	return &GORMReferenceRepository{db: db}
}

func (r *GORMReferenceRepository) CreateSupplier(supplier *models.Supplier) error {
	if err := r.db.Create(supplier).Error; err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *GORMReferenceRepository) CreateCategory(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *GORMReferenceRepository) ListSuppliers() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.db.Order("supplier_id").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *GORMReferenceRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("category_id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *GORMReferenceRepository) SupplierExists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Supplier{}).Where("supplier_id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up supplier %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *GORMReferenceRepository) CategoryExists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up category %d: %w", id, err)
	}
	return count > 0, nil
}
