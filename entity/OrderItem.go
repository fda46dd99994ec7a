package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is a snapshot of a cart line at checkout time.
type OrderItem struct {
	gorm.Model
	Position  int             `json:"-"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unitPrice"`

	OrderID    uint `gorm:"index" json:"orderId"`
	FoodItemID uint `json:"itemId"`
}

func (oi OrderItem) Total() decimal.Decimal {
	return oi.UnitPrice.Mul(decimal.NewFromInt(int64(oi.Quantity))).Round(2)
}
