package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store รวม repository ทุกตัวที่ใช้ *gorm.DB ตัวเดียวกัน
type Store struct {
	DB          *gorm.DB
	Users       *UserRepository
	Restaurants *RestaurantRepository
	FoodItems   *FoodItemRepository
	Carts       *CartRepository
	Orders      *OrderRepository
	Reviews     *ReviewRepository
	Contacts    *ContactRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:          db,
		Users:       NewUserRepository(db),
		Restaurants: NewRestaurantRepository(db),
		FoodItems:   NewFoodItemRepository(db),
		Carts:       NewCartRepository(db),
		Orders:      NewOrderRepository(db),
		Reviews:     NewReviewRepository(db),
		Contacts:    NewContactRepository(db),
	}
}

// Transaction runs fn against a Store bound to one database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
