package repository

import (
	"context"

	"foodshare/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// คืนทุก line ของ user (ไม่มีก็คืน slice ว่าง)
func (r *CartRepository) Lines(ctx context.Context, userID uint) ([]entity.CartLine, error) {
	lines := []entity.CartLine{}
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&lines).Error
	return lines, err
}

func (r *CartRepository) Line(ctx context.Context, userID, itemID uint) (*entity.CartLine, error) {
	var line entity.CartLine
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND food_item_id = ?", userID, itemID).
		First(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// ร้านที่ตะกร้าล็อกอยู่ (0 = ตะกร้าว่าง)
func (r *CartRepository) RestaurantOf(ctx context.Context, userID uint) (uint, error) {
	var row struct{ RestaurantID uint }
	err := r.DB.WithContext(ctx).Model(&entity.CartLine{}).
		Select("restaurant_id").
		Where("user_id = ?", userID).
		Limit(1).Scan(&row).Error
	return row.RestaurantID, err
}

func (r *CartRepository) Insert(ctx context.Context, line *entity.CartLine) error {
	return r.DB.WithContext(ctx).Create(line).Error
}

func (r *CartRepository) SetQuantity(ctx context.Context, lineID uint, qty int) error {
	return r.DB.WithContext(ctx).Model(&entity.CartLine{}).Where("id = ?", lineID).
		Update("quantity", qty).Error
}

func (r *CartRepository) DeleteLine(ctx context.Context, lineID uint) error {
	return r.DB.WithContext(ctx).Unscoped().Delete(&entity.CartLine{}, lineID).Error
}

func (r *CartRepository) Clear(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&entity.CartLine{}).Error
}

// DeleteItem เอา item ออกจากตะกร้าของทุก user (ใช้ตอนร้านลบ item)
func (r *CartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	return r.DB.WithContext(ctx).Unscoped().
		Where("food_item_id = ?", itemID).
		Delete(&entity.CartLine{}).Error
}
