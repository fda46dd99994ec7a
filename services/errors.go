package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// หมวด error หลัก controller ใช้ errors.Is แปลงเป็น status code
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("conflict")
	ErrExternalService = errors.New("external service error")
)

var (
	ErrCrossRestaurant   = fmt.Errorf("%w: cart already holds items from another restaurant", ErrConflict)
	ErrItemNotInCart     = fmt.Errorf("%w: item is not in the cart", ErrConflict)
	ErrEmptyCart         = fmt.Errorf("%w: cart is empty", ErrConflict)
	ErrRestaurantClosed  = fmt.Errorf("%w: restaurant is not accepting orders", ErrConflict)
	ErrInvalidTransition = fmt.Errorf("%w: invalid order status transition", ErrConflict)
	ErrAlreadyReviewed   = fmt.Errorf("%w: order already reviewed", ErrConflict)
)

func validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFound แปลง gorm.ErrRecordNotFound เป็น ErrNotFound, error อื่นคืนตามเดิม
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}
