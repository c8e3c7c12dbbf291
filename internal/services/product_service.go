package services

import (
	"log"

	"inventory/internal/models"
	"inventory/internal/repositories"
)

// Pagination bounds for list endpoints. Out-of-range requests are clamped
// rather than rejected.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int64            `json:"total"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil,
// in which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts retrieves one page of products. page and pageSize are
// clamped to sane bounds, so malformed query parameters degrade to
// defaults instead of failing.
func (s *ProductService) ListProducts(page, pageSize int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	products, total, err := s.repo.List((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &ProductPage{
		Products: products,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product and emits a product.created event.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publish(EventProductCreated, product)
	return nil
}

// UpdateProduct overwrites an existing product and emits a
// product.updated event.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publish(EventProductUpdated, product)
	return nil
}

// DeleteProduct deletes a product by its ID and returns a snapshot of the
// record as it was just before deletion. Dependent orders are removed by
// the store's cascade.
func (s *ProductService) DeleteProduct(id string) (*models.Product, error) {
	snapshot, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(id); err != nil {
		return nil, err
	}
	s.publish(EventProductDeleted, snapshot)
	return snapshot, nil
}

// publish emits an event best-effort: failures are logged, never returned,
// so broker trouble cannot fail the request that triggered the event.
func (s *ProductService) publish(event string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
