package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"inventory/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// List returns one page of orders ordered by creation time plus the total
// count.
func (r *MockOrderRepository) List(offset, limit int) ([]models.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orderList = append(orderList, o)
	}
	sort.Slice(orderList, func(i, j int) bool {
		if !orderList[i].CreatedAt.Equal(orderList[j].CreatedAt) {
			return orderList[i].CreatedAt.Before(orderList[j].CreatedAt)
		}
		return orderList[i].OrderID < orderList[j].OrderID
	})

	total := int64(len(orderList))
	if offset >= len(orderList) {
		return []models.Order{}, total, nil
	}
	end := offset + limit
	if end > len(orderList) {
		end = len(orderList)
	}
	return orderList[offset:end], total, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.OrderID == "" {
		order.OrderID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.OrderID] = *order
	return nil
}

// DeleteByProduct removes every order referencing productID. Wired as the
// product repository's cascade hook in memory mode.
func (r *MockOrderRepository) DeleteByProduct(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, o := range r.orders {
		if o.ProductID == productID {
			delete(r.orders, id)
		}
	}
}
