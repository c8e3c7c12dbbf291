package repositories_test

import (
	"testing"

	"inventory/internal/models"
	"inventory/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProductRepository_CascadeHookRemovesOrders(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	orderRepo := repositories.NewMockOrderRepository()
	productRepo.CascadeTo(orderRepo.DeleteByProduct)

	product := &models.Product{Name: "Widget", SKU: "W-100", Price: decimal.RequireFromString("9.99"), Stock: 5}
	require.NoError(t, productRepo.Create(product))

	order := &models.Order{ProductID: product.ID, Quantity: 1, TotalPrice: decimal.RequireFromString("9.99")}
	require.NoError(t, orderRepo.Create(order))

	require.NoError(t, productRepo.Delete(product.ID))

	_, err := orderRepo.GetByID(order.OrderID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMockProductRepository_DuplicateSKU(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	require.NoError(t, repo.Create(&models.Product{Name: "A", SKU: "A-1", Price: decimal.NewFromInt(1), Stock: 1}))

	err := repo.Create(&models.Product{Name: "B", SKU: "A-1", Price: decimal.NewFromInt(2), Stock: 2})
	assert.ErrorIs(t, err, repositories.ErrDuplicateSKU)

	// Updating a product to keep its own sku is fine.
	b := &models.Product{Name: "B", SKU: "B-1", Price: decimal.NewFromInt(2), Stock: 2}
	require.NoError(t, repo.Create(b))
	b.Name = "B renamed"
	assert.NoError(t, repo.Update(b))

	// Updating it onto another product's sku is not.
	b.SKU = "A-1"
	assert.ErrorIs(t, repo.Update(b), repositories.ErrDuplicateSKU)
}

func TestMockProductRepository_DecrementStock(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	product := &models.Product{Name: "Widget", SKU: "W-100", Price: decimal.RequireFromString("9.99"), Stock: 2}
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.DecrementStock(product.ID, 2))
	assert.ErrorIs(t, repo.DecrementStock(product.ID, 1), repositories.ErrInsufficientStock)

	stored, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)
}
