package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"northwind/internal/models"
)

// ReferenceLookup reports whether the supplier or category a product points
// at exists.
type ReferenceLookup interface {
	SupplierExists(id uint) (bool, error)
	CategoryExists(id uint) (bool, error)
}

// ReferenceSet is an in-memory ReferenceLookup.
type ReferenceSet struct {
	suppliers  map[uint]struct{}
	categories map[uint]struct{}
	mu         sync.RWMutex
}

// NewReferenceSet creates an empty ReferenceSet.
func NewReferenceSet() *ReferenceSet {
	return &ReferenceSet{
		suppliers:  make(map[uint]struct{}),
		categories: make(map[uint]struct{}),
	}
}

// AddSupplier registers a supplier id that products may reference.
func (s *ReferenceSet) AddSupplier(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[id] = struct{}{}
}

// AddCategory registers a category id that products may reference.
func (s *ReferenceSet) AddCategory(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[id] = struct{}{}
}

func (s *ReferenceSet) SupplierExists(id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.suppliers[id]
	return ok, nil
}

func (s *ReferenceSet) CategoryExists(id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.categories[id]
	return ok, nil
}

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Supplier and category references are resolved through refs on every write.
type MemoryProductRepository struct {
	products map[uint]models.Product
	refs     ReferenceLookup
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository(refs ReferenceLookup) *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint]models.Product),
		refs:     refs,
	}
}

// GetAll returns all products ordered by ID.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].ProductID < productList[j].ProductID
	})
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return &product, nil
}

// Create adds a new product and assigns it the next free ID.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkReferences(product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	r.nextID++
	now := time.Now()
	product.ProductID = r.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ProductID] = *product
	return nil
}

// Update replaces an existing product.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ProductID]; !ok {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, product.ProductID)
	}
	if err := r.checkReferences(product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	product.UpdatedAt = time.Now()
	r.products[product.ProductID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	delete(r.products, id)
	return nil
}

// checkReferences must be called with r.mu held.
func (r *MemoryProductRepository) checkReferences(product *models.Product) error {
	if product.SupplierID != nil {
		ok, err := r.refs.SupplierExists(*product.SupplierID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrForeignKeyViolation
		}
	}
	if product.CategoryID != nil {
		ok, err := r.refs.CategoryExists(*product.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrForeignKeyViolation
		}
	}
	return nil
}
