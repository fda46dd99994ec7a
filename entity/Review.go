package entity

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	Stars       int       `gorm:"not null" json:"stars"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SubmittedAt time.Time `json:"submittedAt"`

	OrderID      uint       `gorm:"uniqueIndex;not null" json:"orderId"` // 1 review ต่อ 1 order
	Order        Order      `json:"-"`
	UserID       uint       `gorm:"index" json:"userId"`
	User         User       `json:"-"`
	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
