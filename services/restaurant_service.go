package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"foodshare/entity"
	"foodshare/pkg/geo"
	"foodshare/repository"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// จำนวน request ไป geo provider พร้อมกันสูงสุดตอนจัดเรียงร้าน
const distanceFanout = 8

type RestaurantService struct {
	store *repository.Store
	geo   geo.Provider
}

func NewRestaurantService(store *repository.Store, g geo.Provider) *RestaurantService {
	return &RestaurantService{store: store, geo: g}
}

type SetupRestaurantIn struct {
	Name     string
	Address  string
	CoverPic string
}

// Setup สร้างร้านให้ owner (1 คน 1 ร้าน, ชื่อห้ามซ้ำ) ร้านใหม่ยังไม่รับ order
func (s *RestaurantService) Setup(ctx context.Context, ownerID uint, in SetupRestaurantIn) (*entity.Restaurant, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" || in.Address == "" {
		return nil, validation("name and address are required")
	}

	_, err := s.store.Restaurants.FindByOwner(ctx, ownerID)
	if err == nil {
		return nil, fmt.Errorf("%w: user already has a restaurant", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := s.checkName(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	coords, err := s.geo.Coordinates(ctx, in.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: geocode address: %v", ErrExternalService, err)
	}

	rest := &entity.Restaurant{
		Name:      in.Name,
		Address:   in.Address,
		Longitude: coords[0],
		Latitude:  coords[1],
		CoverPic:  in.CoverPic,
		UserID:    ownerID,
	}
	if err := s.store.Restaurants.Create(ctx, rest); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: restaurant name or owner already taken", ErrConflict)
		}
		return nil, err
	}
	return rest, nil
}

type EditRestaurantIn struct {
	Name     *string
	Address  *string
	CoverPic *string
}

func (s *RestaurantService) Edit(ctx context.Context, ownerID uint, in EditRestaurantIn) (*entity.Restaurant, error) {
	rest, err := s.Mine(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	upd := entity.RestaurantUpdate{CoverPic: in.CoverPic}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validation("name cannot be empty")
		}
		if name != rest.Name {
			if err := s.checkName(ctx, name, rest.ID); err != nil {
				return nil, err
			}
			upd.Name = &name
		}
	}
	if in.Address != nil {
		addr := strings.TrimSpace(*in.Address)
		if addr == "" {
			return nil, validation("address cannot be empty")
		}
		if addr != rest.Address {
			coords, err := s.geo.Coordinates(ctx, addr)
			if err != nil {
				return nil, fmt.Errorf("%w: geocode address: %v", ErrExternalService, err)
			}
			upd.Address = &addr
			upd.Longitude = &coords[0]
			upd.Latitude = &coords[1]
		}
	}

	if err := s.store.Restaurants.Update(ctx, rest.ID, upd); err != nil {
		return nil, err
	}
	return s.Mine(ctx, ownerID)
}

func (s *RestaurantService) checkName(ctx context.Context, name string, exceptID uint) error {
	taken, err := s.store.Restaurants.NameTaken(ctx, name, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: restaurant name %q is taken", ErrConflict, name)
	}
	return nil
}

// SetOpen เปิด/ปิดรับ order
func (s *RestaurantService) SetOpen(ctx context.Context, ownerID uint, open bool) (*entity.Restaurant, error) {
	rest, err := s.Mine(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Restaurants.SetOpen(ctx, rest.ID, open); err != nil {
		return nil, err
	}
	rest.Open = open
	return rest, nil
}

func (s *RestaurantService) Mine(ctx context.Context, ownerID uint) (*entity.Restaurant, error) {
	rest, err := s.store.Restaurants.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	return rest, nil
}

type NearbyRestaurant struct {
	entity.Restaurant
	Distance *float64 `json:"distance"` // เมตร, null = คำนวณไม่ได้
}

// ListNearby คืนร้านทั้งหมดเรียงตามระยะเดินจาก user ร้านที่หาระยะไม่ได้อยู่ท้ายสุด
func (s *RestaurantService) ListNearby(ctx context.Context, userID uint) ([]NearbyRestaurant, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	rests, err := s.store.Restaurants.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]NearbyRestaurant, len(rests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(distanceFanout)
	for i := range rests {
		i := i
		out[i].Restaurant = rests[i]
		g.Go(func() error {
			out[i].Distance = s.distance(gctx, user, &rests[i])
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Distance, out[j].Distance
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out, nil
}

func (s *RestaurantService) distance(ctx context.Context, user *entity.User, rest *entity.Restaurant) *float64 {
	d, err := s.geo.WalkingDistance(ctx, geo.Coordinates(user.Coordinates()), geo.Coordinates(rest.Coordinates()))
	if err != nil {
		log.Printf("⚠️ distance user %d -> restaurant %d: %v", user.ID, rest.ID, err)
		return nil
	}
	return &d
}

type RestaurantDetail struct {
	Restaurant entity.Restaurant `json:"restaurant"`
	Menu       []entity.FoodItem `json:"menu"`
	Distance   *float64          `json:"distance"`
	Cart       map[uint]int      `json:"cart"` // itemId -> quantity ในตะกร้าของ user
}

func (s *RestaurantService) View(ctx context.Context, restID, userID uint) (*RestaurantDetail, error) {
	rest, err := s.store.Restaurants.FindByID(ctx, restID)
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	menu, err := s.store.FoodItems.FindMenu(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	lines, err := s.store.Carts.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}

	detail := &RestaurantDetail{Restaurant: *rest, Menu: menu, Cart: map[uint]int{}}
	for _, l := range lines {
		if l.RestaurantID == rest.ID {
			detail.Cart[l.FoodItemID] = l.Quantity
		}
	}
	if user, err := s.store.Users.FindByID(ctx, userID); err == nil {
		detail.Distance = s.distance(ctx, user, rest)
	}
	return detail, nil
}

// Autocomplete แนะนำที่อยู่ระหว่างพิมพ์
func (s *RestaurantService) Autocomplete(ctx context.Context, text string) (map[string]geo.Coordinates, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validation("address is required")
	}
	res, err := s.geo.Autocomplete(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: autocomplete: %v", ErrExternalService, err)
	}
	return res, nil
}
