package repository

import (
	"context"

	"foodshare/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// สร้าง order พร้อม items (gorm สร้าง association ให้)
func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	return r.DB.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// รายการ order ของ user (ใหม่สุดก่อน)
func (r *OrderRepository) ListForUser(ctx context.Context, userID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

// รายการ order ของร้าน
func (r *OrderRepository) ListForRestaurant(ctx context.Context, restID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("User").
		Where("restaurant_id = ?", restID).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

// UpdateStatusGuard moves the order to `to` only if it is currently in one of
// `from`. The returned bool is false when no row matched.
func (r *OrderRepository) UpdateStatusGuard(ctx context.Context, orderID uint, from []entity.OrderStatus, to entity.OrderStatus) (bool, error) {
	names := make([]string, 0, len(from))
	for _, s := range from {
		names = append(names, string(s))
	}
	res := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND status IN ?", orderID, names).
		Update("status", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
