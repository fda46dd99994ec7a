package repository

import (
	"context"

	"foodshare/entity"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *entity.Review) error {
	return r.DB.WithContext(ctx).Create(rev).Error
}

func (r *ReviewRepository) ExistsForOrder(ctx context.Context, orderID uint) (bool, error) {
	var cnt int64
	if err := r.DB.WithContext(ctx).Model(&entity.Review{}).
		Where("order_id = ?", orderID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *ReviewRepository) ListForRestaurant(ctx context.Context, restID uint) ([]entity.Review, error) {
	var out []entity.Review
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("restaurant_id = ?", restID).
		Order("submitted_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ReviewRepository) ListForUser(ctx context.Context, userID uint) ([]entity.Review, error) {
	var out []entity.Review
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&out).Error
	return out, err
}
