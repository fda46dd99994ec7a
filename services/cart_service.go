package services

import (
	"context"
	"errors"
	"sort"

	"foodshare/entity"
	"foodshare/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	store *repository.Store
}

func NewCartService(store *repository.Store) *CartService {
	return &CartService{store: store}
}

type CartLineView struct {
	ItemID    uint            `json:"itemId"`
	Name      string          `json:"name"`
	Picture   string          `json:"picture"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

type CartView struct {
	RestaurantID   uint            `json:"restaurantId,omitempty"`
	RestaurantName string          `json:"restaurantName,omitempty"`
	Lines          []CartLineView  `json:"lines"`
	Total          decimal.Decimal `json:"total"`
}

// Increment adds one unit of itemID to the user's cart. A cart is locked to
// the restaurant of its first line until it is emptied.
func (s *CartService) Increment(ctx context.Context, userID, itemID uint) error {
	item, err := s.store.FoodItems.FindByID(ctx, itemID)
	if err != nil {
		return notFound(err, "food item")
	}
	if !item.InMenu {
		return validation("item %d is not on the menu", itemID)
	}

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.LockForUpdate(ctx, userID); err != nil {
			return notFound(err, "user")
		}
		restID, err := tx.Carts.RestaurantOf(ctx, userID)
		if err != nil {
			return err
		}
		if restID != 0 && restID != item.RestaurantID {
			return ErrCrossRestaurant
		}

		line, err := tx.Carts.Line(ctx, userID, itemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Carts.Insert(ctx, &entity.CartLine{
				UserID:       userID,
				FoodItemID:   itemID,
				RestaurantID: item.RestaurantID,
				Quantity:     1,
			})
		}
		if err != nil {
			return err
		}
		return tx.Carts.SetQuantity(ctx, line.ID, line.Quantity+1)
	})
}

// Decrement removes one unit; a line that reaches zero is deleted.
func (s *CartService) Decrement(ctx context.Context, userID, itemID uint) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.LockForUpdate(ctx, userID); err != nil {
			return notFound(err, "user")
		}
		line, err := tx.Carts.Line(ctx, userID, itemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotInCart
		}
		if err != nil {
			return err
		}
		if line.Quantity <= 1 {
			return tx.Carts.DeleteLine(ctx, line.ID)
		}
		return tx.Carts.SetQuantity(ctx, line.ID, line.Quantity-1)
	})
}

func (s *CartService) Fetch(ctx context.Context, userID uint) ([]entity.CartLine, error) {
	return s.store.Carts.Lines(ctx, userID)
}

// View คืนตะกร้าพร้อมรายละเอียดเมนู ราคา และยอดรวม
func (s *CartService) View(ctx context.Context, userID uint) (*CartView, error) {
	lines, err := s.store.Carts.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &CartView{Lines: []CartLineView{}, Total: decimal.Zero}
	if len(lines) == 0 {
		return view, nil
	}

	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.FoodItemID)
	}
	items, err := s.store.FoodItems.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for _, l := range lines {
		it, ok := items[l.FoodItemID]
		if !ok {
			continue
		}
		lineTotal := it.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		sum = sum.Add(lineTotal)
		view.Lines = append(view.Lines, CartLineView{
			ItemID:    it.ID,
			Name:      it.Name,
			Picture:   it.Picture,
			UnitPrice: it.Price,
			Quantity:  l.Quantity,
			Total:     lineTotal.Round(2),
		})
	}
	sort.Slice(view.Lines, func(i, j int) bool { return view.Lines[i].ItemID < view.Lines[j].ItemID })
	view.Total = sum.Round(2)

	view.RestaurantID = lines[0].RestaurantID
	if rest, err := s.store.Restaurants.FindByID(ctx, view.RestaurantID); err == nil {
		view.RestaurantName = rest.Name
	}
	return view, nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.store.Carts.Clear(ctx, userID)
}
