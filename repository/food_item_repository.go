package repository

import (
	"context"

	"foodshare/entity"

	"gorm.io/gorm"
)

type FoodItemRepository struct {
	DB *gorm.DB
}

func NewFoodItemRepository(db *gorm.DB) *FoodItemRepository {
	return &FoodItemRepository{DB: db}
}

// ดึงเมนูทั้งหมดของร้าน (รวมที่ซ่อนอยู่)
func (r *FoodItemRepository) FindByRestaurant(ctx context.Context, restID uint) ([]entity.FoodItem, error) {
	var items []entity.FoodItem
	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ?", restID).
		Order("id").
		Find(&items).Error
	return items, err
}

// เฉพาะที่เปิดให้ลูกค้าเห็น
func (r *FoodItemRepository) FindMenu(ctx context.Context, restID uint) ([]entity.FoodItem, error) {
	var items []entity.FoodItem
	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ? AND in_menu = ?", restID, true).
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *FoodItemRepository) FindByID(ctx context.Context, id uint) (*entity.FoodItem, error) {
	var item entity.FoodItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *FoodItemRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]entity.FoodItem, error) {
	out := make(map[uint]entity.FoodItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []entity.FoodItem
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *FoodItemRepository) Create(ctx context.Context, item *entity.FoodItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *FoodItemRepository) Update(ctx context.Context, id uint, upd entity.FoodItemUpdate) error {
	cols := upd.Columns()
	if len(cols) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&entity.FoodItem{}).Where("id = ?", id).Updates(cols).Error
}

func (r *FoodItemRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&entity.FoodItem{}, id).Error
}
