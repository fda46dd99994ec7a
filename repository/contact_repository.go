package repository

import (
	"context"

	"foodshare/entity"

	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.ContactResponse) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *ContactRepository) FindAll(ctx context.Context) ([]entity.ContactResponse, error) {
	var out []entity.ContactResponse
	err := r.DB.WithContext(ctx).Order("id DESC").Find(&out).Error
	return out, err
}
