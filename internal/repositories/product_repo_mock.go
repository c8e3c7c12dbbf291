package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"inventory/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository,
// used when the service runs without a relational store.
type MockProductRepository struct {
	products map[string]models.Product
	cascade  func(productID string)
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// CascadeTo registers fn to run after a successful delete, letting the
// in-memory order repository mirror the store-level ON DELETE CASCADE.
func (r *MockProductRepository) CascadeTo(fn func(productID string)) {
	r.cascade = fn
}

// List returns one page of products ordered by creation time plus the
// total count.
func (r *MockProductRepository) List(offset, limit int) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		if !productList[i].CreatedAt.Equal(productList[j].CreatedAt) {
			return productList[i].CreatedAt.Before(productList[j].CreatedAt)
		}
		return productList[i].ID < productList[j].ID
	})

	total := int64(len(productList))
	if offset >= len(productList) {
		return []models.Product{}, total, nil
	}
	end := offset + limit
	if end > len(productList) {
		end = len(productList)
	}
	return productList[offset:end], total, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product, enforcing sku uniqueness.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.skuTaken(product.SKU, "") {
		return fmt.Errorf("product sku %s: %w", product.SKU, ErrDuplicateSKU)
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	r.products[product.ID] = *product
	return nil
}

// Update overwrites an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	if r.skuTaken(product.SKU, product.ID) {
		return fmt.Errorf("product sku %s: %w", product.SKU, ErrDuplicateSKU)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID and cascades to dependent orders.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	if _, ok := r.products[id]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	cascade := r.cascade
	r.mu.Unlock()

	if cascade != nil {
		cascade(id)
	}
	return nil
}

// DecrementStock subtracts quantity from the product's stock.
func (r *MockProductRepository) DecrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	if product.Stock < quantity {
		return fmt.Errorf("product with ID %s: %w", id, ErrInsufficientStock)
	}
	product.Stock -= quantity
	r.products[id] = product
	return nil
}

// skuTaken reports whether sku belongs to a product other than excludeID.
// Callers must hold the lock.
func (r *MockProductRepository) skuTaken(sku, excludeID string) bool {
	for _, p := range r.products {
		if p.SKU == sku && p.ID != excludeID {
			return true
		}
	}
	return false
}
