package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name      string  `gorm:"uniqueIndex;not null" json:"name"`
	Address   string  `json:"address"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	CoverPic  string  `json:"coverPic"`
	Open      bool    `gorm:"not null;default:false" json:"open"`

	// แก้ได้จาก review aggregator เท่านั้น
	AvgReview  decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0" json:"avgReview"`
	NumReviews int             `gorm:"not null;default:0" json:"numReviews"`

	UserID uint `gorm:"uniqueIndex;not null" json:"userId"` // owner (users.id)
	User   User `json:"-"`

	FoodItems []FoodItem `json:"-"`
	Orders    []Order    `json:"-"`
	Reviews   []Review   `json:"-"`
}

func (r *Restaurant) Coordinates() [2]float64 {
	return [2]float64{r.Longitude, r.Latitude}
}

// RestaurantUpdate lists the fields an owner may change.
// Nil means leave as is.
type RestaurantUpdate struct {
	Name      *string
	Address   *string
	Longitude *float64
	Latitude  *float64
	CoverPic  *string
}

func (u RestaurantUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Address != nil {
		cols["address"] = *u.Address
	}
	if u.Longitude != nil {
		cols["longitude"] = *u.Longitude
	}
	if u.Latitude != nil {
		cols["latitude"] = *u.Latitude
	}
	if u.CoverPic != nil {
		cols["cover_pic"] = *u.CoverPic
	}
	return cols
}
