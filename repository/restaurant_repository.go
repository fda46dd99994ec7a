package repository

import (
	"context"

	"foodshare/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// ดึงร้านทั้งหมด
func (r *RestaurantRepository) FindAll(ctx context.Context) ([]entity.Restaurant, error) {
	var rests []entity.Restaurant
	err := r.DB.WithContext(ctx).Order("id").Find(&rests).Error
	return rests, err
}

// ดึงร้านตาม ID
func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.WithContext(ctx).First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// ร้านของเจ้าของ (1 user มีได้ 1 ร้าน)
func (r *RestaurantRepository) FindByOwner(ctx context.Context, userID uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) NameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var cnt int64
	q := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *entity.Restaurant) error {
	return r.DB.WithContext(ctx).Create(rest).Error
}

func (r *RestaurantRepository) Update(ctx context.Context, id uint, upd entity.RestaurantUpdate) error {
	cols := upd.Columns()
	if len(cols) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&entity.Restaurant{}).Where("id = ?", id).Updates(cols).Error
}

func (r *RestaurantRepository) SetOpen(ctx context.Context, id uint, open bool) error {
	return r.DB.WithContext(ctx).Model(&entity.Restaurant{}).Where("id = ?", id).
		Update("open", open).Error
}

// อัปเดตคะแนนรวม (เรียกจาก review aggregator เท่านั้น)
func (r *RestaurantRepository) UpdateRating(ctx context.Context, id uint, avg decimal.Decimal, n int) error {
	return r.DB.WithContext(ctx).Model(&entity.Restaurant{}).Where("id = ?", id).
		Updates(map[string]any{"avg_review": avg, "num_reviews": n}).Error
}

// เช็คว่า user เป็นเจ้าของร้านนี้มั้ย
func (r *RestaurantRepository) IsOwnedBy(ctx context.Context, restID, userID uint) (bool, error) {
	var cnt int64
	if err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("id = ? AND user_id = ?", restID, userID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
