package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"foodshare/entity"
	"foodshare/pkg/geo"
	"foodshare/pkg/notify"
	"foodshare/repository"
	"foodshare/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = 10 * time.Minute

type AuthConfig struct {
	JWTSecret    string
	JWTTTL       time.Duration
	BaseURL      string
	SupportEmail string
}

// AuthService จัดการ business logic ของการ login/register/reset password
type AuthService struct {
	store    *repository.Store
	geo      geo.Provider
	notifier notify.Notifier
	cfg      AuthConfig
	now      func() time.Time
}

func NewAuthService(store *repository.Store, g geo.Provider, n notify.Notifier, cfg AuthConfig) *AuthService {
	return &AuthService{store: store, geo: g, notifier: n, cfg: cfg, now: time.Now}
}

type RegisterIn struct {
	FirstName  string `form:"fname" json:"fname" binding:"required"`
	LastName   string `form:"lname" json:"lname" binding:"required"`
	Email      string `form:"email" json:"email" binding:"required,email"`
	Address    string `form:"address" json:"address" binding:"required"`
	Password   string `form:"password" json:"password" binding:"required"`
	RePassword string `form:"repassword" json:"repassword" binding:"required"`
}

// Register สร้าง user ใหม่ (geocode ที่อยู่ก่อน) แล้วส่งอีเมลต้อนรับ
func (s *AuthService) Register(ctx context.Context, in RegisterIn) (*entity.User, error) {
	// trim และ normalize email
	email := strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Address = strings.TrimSpace(in.Address)

	if in.FirstName == "" || in.LastName == "" || email == "" || in.Address == "" || in.Password == "" {
		return nil, validation("all fields are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validation("invalid email address")
	}
	if in.Password != in.RePassword {
		return nil, validation("passwords do not match")
	}

	// ตรวจซ้ำ email
	count, err := s.store.Users.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	coords, err := s.geo.Coordinates(ctx, in.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: geocode address: %v", ErrExternalService, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Address:   in.Address,
		Longitude: coords[0],
		Latitude:  coords[1],
		Role:      entity.RoleCustomer,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	send(ctx, s.notifier, notify.Welcome, user.Email, map[string]string{"fname": user.FirstName})
	return user, nil
}

// Login ตรวจสอบ user + สร้าง JWT
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return "", nil, err
	}

	// เทียบรหัสผ่าน
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	// ออก token
	token, err := utils.GenerateToken(user.ID, user.Role, s.cfg.JWTSecret, s.cfg.JWTTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*entity.User, error) {
	u, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if newPassword == "" {
		return validation("new password is required")
	}
	u, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)); err != nil {
		return validation("current password is incorrect")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.Users.UpdatePassword(ctx, u.ID, string(hashed)); err != nil {
		return err
	}
	send(ctx, s.notifier, notify.PasswordChanged, u.Email, map[string]string{
		"fname":   u.FirstName,
		"support": s.cfg.SupportEmail,
	})
	return nil
}

// RequestPasswordReset ออก token ใช้ครั้งเดียว อายุ 10 นาที
// email ที่ไม่มีในระบบถือว่าสำเร็จเงียบๆ
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.store.Users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.store.Users.SetResetToken(ctx, u.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return err
	}
	send(ctx, s.notifier, notify.ResetPassword, u.Email, map[string]string{
		"fname":   u.FirstName,
		"link":    s.cfg.BaseURL + "/auth/reset-password/" + token,
		"support": s.cfg.SupportEmail,
	})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if password == "" {
		return validation("password is required")
	}
	u, err := s.store.Users.FindByResetToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return validation("reset link is invalid")
	}
	if err != nil {
		return err
	}
	if u.ResetExpiry == nil || u.ResetExpiry.Before(s.now()) {
		if err := s.store.Users.ClearResetToken(ctx, u.ID); err != nil {
			return err
		}
		return validation("reset link has expired")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.UpdatePassword(ctx, u.ID, string(hashed)); err != nil {
			return err
		}
		return tx.Users.ClearResetToken(ctx, u.ID)
	})
	if err != nil {
		return err
	}

	send(ctx, s.notifier, notify.ResetPasswordDone, u.Email, map[string]string{
		"fname":   u.FirstName,
		"support": s.cfg.SupportEmail,
	})
	return nil
}
