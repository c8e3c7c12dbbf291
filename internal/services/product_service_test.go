package services_test

import (
	"fmt"
	"testing"

	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(offset, limit int) ([]models.Product, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(id string, quantity int) error {
	args := m.Called(id, quantity)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event string, payload interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", SKU: "A-1", Price: decimal.NewFromFloat(10.0), Stock: 100},
		{ID: "2", Name: "Product B", SKU: "B-1", Price: decimal.NewFromFloat(20.0), Stock: 50},
	}

	mockRepo.On("List", 0, 20).Return(expectedProducts, int64(2), nil).Once()

	page, err := service.ListProducts(1, 20)

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, page.Products)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, int64(2), page.Total)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProducts_ClampsPagination(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	// Oversized page_size is capped at the maximum.
	mockRepo.On("List", 0, services.MaxPageSize).Return([]models.Product{}, int64(0), nil).Once()
	page, err := service.ListProducts(1, 500)
	assert.NoError(t, err)
	assert.Equal(t, services.MaxPageSize, page.PageSize)
	mockRepo.AssertExpectations(t)

	// Non-positive page and page_size fall back to defaults.
	mockRepo.On("List", 0, services.DefaultPageSize).Return([]models.Product{}, int64(0), nil).Once()
	page, err = service.ListProducts(0, -5)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, services.DefaultPageSize, page.PageSize)
	mockRepo.AssertExpectations(t)

	// Page numbers translate into offsets.
	mockRepo.On("List", 20, 10).Return([]models.Product{}, int64(0), nil).Once()
	_, err = service.ListProducts(3, 10)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: "1", Name: "Product A", SKU: "A-1", Price: decimal.NewFromFloat(10.0), Stock: 100}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID("99")
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	newProduct := &models.Product{Name: "New Product", SKU: "N-1", Price: decimal.NewFromFloat(50.0), Stock: 20}

	// Test successful creation, including the product.created event
	mockRepo.On("Create", newProduct).Return(nil).Once()
	mockPublisher.On("Publish", services.EventProductCreated, newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test creation failure: no event is emitted
	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_CreateProduct_PublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	newProduct := &models.Product{Name: "New Product", SKU: "N-1", Price: decimal.NewFromFloat(50.0), Stock: 20}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	mockPublisher.On("Publish", services.EventProductCreated, newProduct).Return(fmt.Errorf("broker down")).Once()

	// A broker failure must not fail the write.
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	updatedProduct := &models.Product{ID: "1", Name: "Product A Updated", SKU: "A-1", Price: decimal.NewFromFloat(12.0), Stock: 95}

	// Test successful update
	mockRepo.On("Update", updatedProduct).Return(nil).Once()
	err := service.UpdateProduct(updatedProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test update failure (product not found in repo)
	missing := &models.Product{ID: "99", Name: "NonExistent", SKU: "X-1", Price: decimal.NewFromFloat(1.0), Stock: 1}
	mockRepo.On("Update", missing).Return(fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	err = service.UpdateProduct(missing)
	assert.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	existing := &models.Product{ID: "1", Name: "Product A", SKU: "A-1", Price: decimal.NewFromFloat(10.0), Stock: 100}

	// Successful deletion returns the pre-deletion snapshot.
	mockRepo.On("GetByID", "1").Return(existing, nil).Once()
	mockRepo.On("Delete", "1").Return(nil).Once()
	mockPublisher.On("Publish", services.EventProductDeleted, existing).Return(nil).Once()
	snapshot, err := service.DeleteProduct("1")
	assert.NoError(t, err)
	assert.Equal(t, existing, snapshot)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Deleting a missing product surfaces ErrNotFound without touching Delete.
	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	snapshot, err = service.DeleteProduct("99")
	assert.Error(t, err)
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Delete", "99")
}
