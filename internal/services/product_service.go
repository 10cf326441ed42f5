package services

import (
	"log"
	"time"

	"northwind/internal/metrics"
	"northwind/internal/models"
	"northwind/internal/repositories"
)

// EventPublisher delivers product events to interested consumers.
type EventPublisher interface {
	PublishEvent(payload interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new product built from req.
func (s *ProductService) CreateProduct(req models.ProductRequest) (*models.Product, error) {
	product := &models.Product{}
	req.Apply(product)

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	metrics.ProductsCreated.Inc()
	s.publish(models.ProductCreated, product.ProductID, product)
	return product, nil
}

// UpdateProduct replaces every mutable field of the product with the values
// in req. Fields missing from the request are cleared.
func (s *ProductService) UpdateProduct(id uint, req models.ProductRequest) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	req.Apply(product)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	metrics.ProductsUpdated.Inc()
	s.publish(models.ProductUpdated, product.ProductID, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	metrics.ProductsDeleted.Inc()
	s.publish(models.ProductDeleted, id, nil)
	return nil
}

// publish never fails the caller; the row is already committed.
func (s *ProductService) publish(eventType string, id uint, product *models.Product) {
	if s.publisher == nil {
		return
	}

	event := models.ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", eventType, id, err)
	}
}
