package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	OrderTime time.Time       `json:"orderTime"`
	Status    OrderStatus     `gorm:"size:16;index;not null" json:"status"`

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	// สร้างครั้งเดียวตอน checkout แล้วไม่แก้อีก
	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
}
