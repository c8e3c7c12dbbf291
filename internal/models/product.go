package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a stocked item in the inventory.
type Product struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string          `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	SKU       string          `json:"sku" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=1,max=50"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)" validate:"gte=0"`
	Stock     int             `json:"stock" validate:"gte=0"`
	CreatedAt time.Time       `json:"created_at"`
}
