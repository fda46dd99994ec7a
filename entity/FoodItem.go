package entity

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const restrictionSep = ", "

type FoodItem struct {
	gorm.Model
	Name         string          `gorm:"not null" json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Restrictions string          `json:"-"` // "vegan, halal"
	InMenu       bool            `gorm:"not null;default:false" json:"inMenu"`
	Picture      string          `json:"picture"`

	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}

// DietaryRestrictions คืน tag เป็น set (เรียงแล้ว)
func (f *FoodItem) DietaryRestrictions() []string {
	if f.Restrictions == "" {
		return []string{}
	}
	return strings.Split(f.Restrictions, restrictionSep)
}

// MarshalJSON แสดง restrictions เป็น array แทน string ที่เก็บใน DB
func (f FoodItem) MarshalJSON() ([]byte, error) {
	type plain FoodItem
	return json.Marshal(struct {
		plain
		DietaryRestrictions []string `json:"dietaryRestrictions"`
	}{plain(f), f.DietaryRestrictions()})
}

func JoinRestrictions(tags []string) string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return strings.Join(out, restrictionSep)
}

// FoodItemUpdate lists the fields an owner may change on an item.
type FoodItemUpdate struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	Restrictions *[]string
	Picture      *string
	InMenu       *bool
}

func (u FoodItemUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.Price != nil {
		cols["price"] = *u.Price
	}
	if u.Restrictions != nil {
		cols["restrictions"] = JoinRestrictions(*u.Restrictions)
	}
	if u.Picture != nil {
		cols["picture"] = *u.Picture
	}
	if u.InMenu != nil {
		cols["in_menu"] = *u.InMenu
	}
	return cols
}
