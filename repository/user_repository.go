package repository

import (
	"context"
	"time"

	"foodshare/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository รับผิดชอบการคุยกับตาราง users ใน DB เท่านั้น
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// หาผู้ใช้จาก email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// นับจำนวน user ที่มี email ซ้ำ
func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// โหลด user ตาม ID
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// LockForUpdate ล็อกแถว user จนจบ transaction ตะกร้ากับ checkout ของ user เดียวกันจึงไม่ทับกัน
// (sqlite driver ข้าม FOR UPDATE)
func (r *UserRepository) LockForUpdate(ctx context.Context, id uint) error {
	var user entity.User
	return r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&user, id).Error
}

func (r *UserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.DB.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).
		Update("password", hash).Error
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID uint, token string, expiry time.Time) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).
		Updates(map[string]any{"reset_token": token, "reset_expiry": expiry}).Error
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Where("reset_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ลบ token หลังใช้แล้ว/หมดอายุ
func (r *UserRepository) ClearResetToken(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).
		Updates(map[string]any{"reset_token": nil, "reset_expiry": nil}).Error
}
