package services

import (
	"log"

	"inventory/internal/models"
	"inventory/internal/repositories"

	"github.com/shopspring/decimal"
)

// OrderPage is one page of the order listing.
type OrderPage struct {
	Orders   []models.Order `json:"orders"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int64          `json:"total"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case no events are emitted.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// ListOrders retrieves one page of orders under the same pagination
// contract as the product listing.
func (s *OrderService) ListOrders(page, pageSize int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	orders, total, err := s.orderRepo.List((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &OrderPage{
		Orders:   orders,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder places an order for quantity units of the given product.
// The total price is the product's current price times the quantity,
// snapshotted at order time; the request cannot set it. Stock is reserved
// with a single conditional decrement before the order row is written.
func (s *OrderService) CreateOrder(productID string, quantity int) (*models.Order, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.DecrementStock(productID, quantity); err != nil {
		return nil, err
	}

	order := &models.Order{
		ProductID:  product.ID,
		Quantity:   quantity,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(EventOrderCreated, order); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.OrderID, err)
		}
	}
	return order, nil
}
