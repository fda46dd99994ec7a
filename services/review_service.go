package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodshare/entity"
	"foodshare/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReviewService struct {
	store *repository.Store
	now   func() time.Time
}

func NewReviewService(store *repository.Store) *ReviewService {
	return &ReviewService{store: store, now: time.Now}
}

type AddReviewIn struct {
	OrderID     uint
	UserID      uint
	Stars       int
	Title       string
	Description string
}

// NextAverage folds one rating into a running average, rounded to 2 places.
func NextAverage(avg decimal.Decimal, n, stars int) decimal.Decimal {
	s := decimal.NewFromInt(int64(stars))
	if n == 0 {
		return s.Round(2)
	}
	total := avg.Mul(decimal.NewFromInt(int64(n))).Add(s)
	return total.Div(decimal.NewFromInt(int64(n + 1))).Round(2)
}

// AddReview stores the buyer's review of a collected order and updates the
// restaurant aggregate in the same transaction.
func (s *ReviewService) AddReview(ctx context.Context, in AddReviewIn) (*entity.Review, error) {
	o, err := s.store.Orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if o.UserID != in.UserID {
		return nil, ErrUnauthorized
	}
	if in.Stars < 1 || in.Stars > 5 {
		return nil, validation("stars must be between 1 and 5")
	}
	if o.Status != entity.OrderCollected {
		return nil, fmt.Errorf("%w: only collected orders can be reviewed", ErrConflict)
	}

	rev := &entity.Review{
		Stars:        in.Stars,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		SubmittedAt:  s.now(),
		OrderID:      o.ID,
		UserID:       in.UserID,
		RestaurantID: o.RestaurantID,
	}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Reviews.ExistsForOrder(ctx, o.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyReviewed
		}
		if err := tx.Reviews.Create(ctx, rev); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyReviewed
			}
			return err
		}

		rest, err := tx.Restaurants.FindByID(ctx, o.RestaurantID)
		if err != nil {
			return notFound(err, "restaurant")
		}
		avg := NextAverage(rest.AvgReview, rest.NumReviews, in.Stars)
		return tx.Restaurants.UpdateRating(ctx, rest.ID, avg, rest.NumReviews+1)
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

type ReviewView struct {
	entity.Review
	Reviewer string `json:"reviewer"`
}

// ListForRestaurant คืนรีวิวของร้าน ใหม่สุดก่อน
func (s *ReviewService) ListForRestaurant(ctx context.Context, restID uint) ([]ReviewView, error) {
	if _, err := s.store.Restaurants.FindByID(ctx, restID); err != nil {
		return nil, notFound(err, "restaurant")
	}
	reviews, err := s.store.Reviews.ListForRestaurant(ctx, restID)
	if err != nil {
		return nil, err
	}
	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewView{Review: r, Reviewer: r.User.FirstName})
	}
	return out, nil
}
