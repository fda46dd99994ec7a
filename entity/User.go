package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Password  string  `json:"-"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address   string  `json:"address"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Role      string  `gorm:"not null;default:customer" json:"role"`

	// password reset, single use
	ResetToken  *string    `gorm:"uniqueIndex" json:"-"`
	ResetExpiry *time.Time `json:"-"`

	Restaurant *Restaurant `gorm:"foreignKey:UserID" json:"-"`
	Orders     []Order     `json:"-"`
	Reviews    []Review    `json:"-"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Coordinates ในรูป (lon, lat) ตามที่ geo provider ใช้
func (u *User) Coordinates() [2]float64 {
	return [2]float64{u.Longitude, u.Latitude}
}
