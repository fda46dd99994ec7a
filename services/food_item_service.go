package services

import (
	"context"
	"strings"

	"foodshare/entity"
	"foodshare/repository"
	"foodshare/utils"

	"github.com/shopspring/decimal"
)

type FoodItemService struct {
	store *repository.Store
}

func NewFoodItemService(store *repository.Store) *FoodItemService {
	return &FoodItemService{store: store}
}

type AddFoodItemIn struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	Restrictions []string
	Picture      string
	InMenu       bool
}

func cleanName(s string) string {
	return strings.Trim(strings.TrimSpace(s), "'\"")
}

func checkPrice(p decimal.Decimal) (decimal.Decimal, error) {
	if p.IsNegative() {
		return p, validation("price cannot be negative")
	}
	return p.Round(2), nil
}

func checkPicture(name string) error {
	if name != "" && !utils.AllowedPicture(name) {
		return validation("%v", utils.ErrBadExtension)
	}
	return nil
}

// ListMine คืนทุก item ของร้านเจ้าของ (รวมที่ไม่ได้อยู่ในเมนู)
func (s *FoodItemService) ListMine(ctx context.Context, ownerID uint) ([]entity.FoodItem, error) {
	rest, err := s.store.Restaurants.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	return s.store.FoodItems.FindByRestaurant(ctx, rest.ID)
}

func (s *FoodItemService) Add(ctx context.Context, ownerID uint, in AddFoodItemIn) (*entity.FoodItem, error) {
	rest, err := s.store.Restaurants.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	name := cleanName(in.Name)
	if name == "" {
		return nil, validation("name is required")
	}
	price, err := checkPrice(in.Price)
	if err != nil {
		return nil, err
	}
	if err := checkPicture(in.Picture); err != nil {
		return nil, err
	}

	item := &entity.FoodItem{
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        price,
		Restrictions: entity.JoinRestrictions(in.Restrictions),
		InMenu:       in.InMenu,
		Picture:      in.Picture,
		RestaurantID: rest.ID,
	}
	if err := s.store.FoodItems.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *FoodItemService) Edit(ctx context.Context, ownerID, itemID uint, upd entity.FoodItemUpdate) (*entity.FoodItem, error) {
	if _, err := s.owned(ctx, ownerID, itemID); err != nil {
		return nil, err
	}
	if upd.Name != nil {
		name := cleanName(*upd.Name)
		if name == "" {
			return nil, validation("name cannot be empty")
		}
		upd.Name = &name
	}
	if upd.Price != nil {
		price, err := checkPrice(*upd.Price)
		if err != nil {
			return nil, err
		}
		upd.Price = &price
	}
	if upd.Picture != nil {
		if err := checkPicture(*upd.Picture); err != nil {
			return nil, err
		}
	}

	if err := s.store.FoodItems.Update(ctx, itemID, upd); err != nil {
		return nil, err
	}
	item, err := s.store.FoodItems.FindByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "food item")
	}
	return item, nil
}

func (s *FoodItemService) SetInMenu(ctx context.Context, ownerID, itemID uint, inMenu bool) (*entity.FoodItem, error) {
	return s.Edit(ctx, ownerID, itemID, entity.FoodItemUpdate{InMenu: &inMenu})
}

// Delete ลบ item และเอาออกจากตะกร้าทุกคน
func (s *FoodItemService) Delete(ctx context.Context, ownerID, itemID uint) error {
	if _, err := s.owned(ctx, ownerID, itemID); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Carts.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		return tx.FoodItems.Delete(ctx, itemID)
	})
}

// owned โหลด item และเช็คว่าเป็นของร้าน owner
func (s *FoodItemService) owned(ctx context.Context, ownerID, itemID uint) (*entity.FoodItem, error) {
	item, err := s.store.FoodItems.FindByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "food item")
	}
	ok, err := s.store.Restaurants.IsOwnedBy(ctx, item.RestaurantID, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized
	}
	return item, nil
}
