package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"foodshare/entity"
	"foodshare/pkg/notify"
	"foodshare/repository"
)

type ContactService struct {
	store        *repository.Store
	notifier     notify.Notifier
	supportEmail string
	now          func() time.Time
}

func NewContactService(store *repository.Store, n notify.Notifier, supportEmail string) *ContactService {
	return &ContactService{store: store, notifier: n, supportEmail: supportEmail, now: time.Now}
}

type ContactIn struct {
	FirstName string `form:"fname" json:"fname" binding:"required"`
	LastName  string `form:"lname" json:"lname" binding:"required"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Nature    string `form:"nature" json:"nature" binding:"required"`
	Message   string `form:"message" json:"message" binding:"required"`
}

// Submit เก็บข้อความแล้วส่งต่อให้ทีม support
func (s *ContactService) Submit(ctx context.Context, in ContactIn) (*entity.ContactResponse, error) {
	c := &entity.ContactResponse{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Nature:      strings.TrimSpace(in.Nature),
		Message:     strings.TrimSpace(in.Message),
		SubmittedAt: s.now(),
	}
	if c.FirstName == "" || c.Email == "" || c.Nature == "" || c.Message == "" {
		return nil, validation("all fields are required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return nil, validation("invalid email address")
	}
	if err := s.store.Contacts.Create(ctx, c); err != nil {
		return nil, err
	}

	send(ctx, s.notifier, notify.ContactUs, s.supportEmail, map[string]string{
		"fname":   c.FirstName,
		"lname":   c.LastName,
		"email":   c.Email,
		"nature":  c.Nature,
		"message": c.Message,
	})
	return c, nil
}

// AdminService: หน้าดูข้อมูลรวมของ admin (read only)
type AdminService struct {
	store *repository.Store
}

func NewAdminService(store *repository.Store) *AdminService {
	return &AdminService{store: store}
}

func (s *AdminService) Users(ctx context.Context) ([]entity.User, error) {
	return s.store.Users.FindAll(ctx)
}

func (s *AdminService) Restaurants(ctx context.Context) ([]entity.Restaurant, error) {
	return s.store.Restaurants.FindAll(ctx)
}

func (s *AdminService) Contacts(ctx context.Context) ([]entity.ContactResponse, error) {
	return s.store.Contacts.FindAll(ctx)
}
