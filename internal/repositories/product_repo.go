package repositories

import (
	"inventory/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns one page of products in stable order plus the total count.
	List(offset, limit int) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// DecrementStock atomically subtracts quantity from the product's stock,
	// failing with ErrInsufficientStock when not enough is on hand.
	DecrementStock(id string, quantity int) error
}
