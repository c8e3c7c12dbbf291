package repositories

import (
	"inventory/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// never updated or deleted directly; the store's cascade removes them when
// their product goes away.
type OrderRepository interface {
	List(offset, limit int) ([]models.Order, int64, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
}
