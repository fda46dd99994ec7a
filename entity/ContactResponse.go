package entity

import (
	"time"

	"gorm.io/gorm"
)

type ContactResponse struct {
	gorm.Model
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Nature      string    `json:"nature"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}
