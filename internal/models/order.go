package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order records a purchase of a single product. The foreign key carries
// ON DELETE CASCADE: removing a product removes its orders at the store
// level, not in application code.
type Order struct {
	OrderID    string          `json:"order_id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID  string          `json:"product_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	Product    *Product        `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity   int             `json:"quantity" validate:"required,gt=0"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2)"`
	CreatedAt  time.Time       `json:"created_at"`
}
