package entity

import (
	"gorm.io/gorm"
)

// CartLine = 1 รายการในตะกร้า, ทุก line ของ user ต้องเป็นร้านเดียวกัน
type CartLine struct {
	gorm.Model
	UserID       uint `gorm:"uniqueIndex:idx_cart_user_item;not null" json:"userId"`
	FoodItemID   uint `gorm:"uniqueIndex:idx_cart_user_item;not null" json:"itemId"`
	RestaurantID uint `gorm:"index;not null" json:"restaurantId"`
	Quantity     int  `gorm:"not null" json:"quantity"`

	User     User     `json:"-"`
	FoodItem FoodItem `json:"-"`
}
