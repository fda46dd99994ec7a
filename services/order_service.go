package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"foodshare/entity"
	"foodshare/pkg/notify"
	"foodshare/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type OrderService struct {
	store    *repository.Store
	notifier notify.Notifier
	events   OrderEventPublisher
	baseURL  string
	now      func() time.Time

	// checkout ของ user เดียวกันที่ยิงพร้อมกันจะได้ order เดียว
	flight          singleflight.Group
	checkoutTimeout time.Duration
}

const defaultCheckoutTimeout = 30 * time.Second

func NewOrderService(store *repository.Store, n notify.Notifier, events OrderEventPublisher, baseURL string) *OrderService {
	if events == nil {
		events = noopPublisher{}
	}
	return &OrderService{
		store:    store,
		notifier: n,
		events:   events,
		baseURL:  baseURL,
		now:      time.Now,

		checkoutTimeout: defaultCheckoutTimeout,
	}
}

// OrderAmount sums quantity × unit price exactly and rounds once at the end.
func OrderAmount(items []entity.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.Round(2)
}

// Checkout turns the user's cart into a Placed order. Item lookup, order
// insert and cart clear share one transaction; notifications go out after
// commit. Concurrent calls for one user share a single run that outlives
// any one caller's cancellation.
func (s *OrderService) Checkout(ctx context.Context, userID uint) (*entity.Order, error) {
	key := strconv.FormatUint(uint64(userID), 10)
	ch := s.flight.DoChan(key, func() (any, error) {
		// ไม่ผูกกับ request ของคนแรก คนที่มาร่วมทีหลังต้องไม่โดน cancel ตาม
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.checkoutTimeout)
		defer cancel()
		return s.checkout(runCtx, userID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entity.Order), nil
	}
}

func (s *OrderService) checkout(ctx context.Context, userID uint) (*entity.Order, error) {
	var (
		order *entity.Order
		rest  *entity.Restaurant
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.LockForUpdate(ctx, userID); err != nil {
			return notFound(err, "user")
		}
		lines, err := tx.Carts.Lines(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		rest, err = tx.Restaurants.FindByID(ctx, lines[0].RestaurantID)
		if err != nil {
			return notFound(err, "restaurant")
		}
		if !rest.Open {
			return ErrRestaurantClosed
		}

		sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
		ids := make([]uint, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.FoodItemID)
		}
		items, err := tx.FoodItems.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}

		orderItems := make([]entity.OrderItem, 0, len(lines))
		for i, l := range lines {
			it, ok := items[l.FoodItemID]
			if !ok {
				return fmt.Errorf("%w: food item %d is no longer available", ErrNotFound, l.FoodItemID)
			}
			orderItems = append(orderItems, entity.OrderItem{
				Position:   i,
				Name:       it.Name,
				Quantity:   l.Quantity,
				UnitPrice:  it.Price,
				FoodItemID: it.ID,
			})
		}

		order = &entity.Order{
			Amount:       OrderAmount(orderItems),
			OrderTime:    s.now(),
			Status:       entity.OrderPlaced,
			UserID:       userID,
			RestaurantID: rest.ID,
			Items:        orderItems,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		return tx.Carts.Clear(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	s.announceCheckout(ctx, order, rest)
	s.publish(order, rest)
	return order, nil
}

// แจ้งผู้ซื้อและร้าน หลัง commit แล้วเท่านั้น
func (s *OrderService) announceCheckout(ctx context.Context, o *entity.Order, rest *entity.Restaurant) {
	buyer, err := s.store.Users.FindByID(ctx, o.UserID)
	if err != nil {
		return
	}
	seller, err := s.store.Users.FindByID(ctx, rest.UserID)
	if err != nil {
		return
	}

	fields := map[string]string{
		"orderId":        strconv.FormatUint(uint64(o.ID), 10),
		"buyerName":      buyer.FullName(),
		"sellerName":     seller.FullName(),
		"amount":         o.Amount.StringFixed(2),
		"restaurantName": rest.Name,
	}
	send(ctx, s.notifier, notify.OrderConfirmBuyer, buyer.Email, withLink(fields, s.baseURL+"/buyer/orders"))
	send(ctx, s.notifier, notify.OrderConfirmSeller, seller.Email, withLink(fields, s.baseURL+"/seller/dashboard"))
}

func (s *OrderService) publish(o *entity.Order, rest *entity.Restaurant) {
	s.events.PublishOrderEvent(OrderEvent{
		OrderID:      o.ID,
		RestaurantID: o.RestaurantID,
		Status:       o.Status,
		Amount:       o.Amount.StringFixed(2),
		At:           s.now(),
		BuyerID:      o.UserID,
		SellerID:     rest.UserID,
	})
}

func withLink(fields map[string]string, link string) map[string]string {
	out := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["link"] = link
	return out
}

type BuyerOrderView struct {
	entity.Order
	RestaurantName string `json:"restaurantName"`
	Review         *int   `json:"review"`
}

// BuyerOrders คืนประวัติ order ของผู้ซื้อ (ใหม่สุดก่อน) พร้อมดาวรีวิวของตัวเอง
func (s *OrderService) BuyerOrders(ctx context.Context, userID uint) ([]BuyerOrderView, error) {
	orders, err := s.store.Orders.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.store.Reviews.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stars := make(map[uint]int, len(reviews))
	for _, r := range reviews {
		stars[r.OrderID] = r.Stars
	}

	names := map[uint]string{}
	out := make([]BuyerOrderView, 0, len(orders))
	for _, o := range orders {
		name, ok := names[o.RestaurantID]
		if !ok {
			if rest, err := s.store.Restaurants.FindByID(ctx, o.RestaurantID); err == nil {
				name = rest.Name
			}
			names[o.RestaurantID] = name
		}
		v := BuyerOrderView{Order: o, RestaurantName: name}
		if n, ok := stars[o.ID]; ok {
			v.Review = &n
		}
		out = append(out, v)
	}
	return out, nil
}

type SellerOrderView struct {
	entity.Order
	BuyerName string `json:"buyerName"`
}

type SellerDashboard struct {
	Restaurant entity.Restaurant `json:"restaurant"`
	Orders     []SellerOrderView `json:"orders"`
}

func (s *OrderService) SellerOrders(ctx context.Context, ownerID uint) (*SellerDashboard, error) {
	rest, err := s.store.Restaurants.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	orders, err := s.store.Orders.ListForRestaurant(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	dash := &SellerDashboard{Restaurant: *rest, Orders: make([]SellerOrderView, 0, len(orders))}
	for _, o := range orders {
		dash.Orders = append(dash.Orders, SellerOrderView{Order: o, BuyerName: o.User.FullName()})
	}
	return dash, nil
}

type Invoice struct {
	Order      entity.Order      `json:"order"`
	Restaurant entity.Restaurant `json:"restaurant"`
	BuyerName  string            `json:"buyerName"`
	BuyerEmail string            `json:"buyerEmail"`
}

// Invoice ดูได้เฉพาะผู้ซื้อหรือเจ้าของร้าน
func (s *OrderService) Invoice(ctx context.Context, orderID, userID uint) (*Invoice, error) {
	o, rest, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID && rest.UserID != userID {
		return nil, ErrUnauthorized
	}
	buyer, err := s.store.Users.FindByID(ctx, o.UserID)
	if err != nil {
		return nil, notFound(err, "buyer")
	}
	return &Invoice{Order: *o, Restaurant: *rest, BuyerName: buyer.FullName(), BuyerEmail: buyer.Email}, nil
}

func (s *OrderService) load(ctx context.Context, orderID uint) (*entity.Order, *entity.Restaurant, error) {
	o, err := s.store.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, notFound(err, "order")
	}
	rest, err := s.store.Restaurants.FindByID(ctx, o.RestaurantID)
	if err != nil {
		return nil, nil, notFound(err, "restaurant")
	}
	return o, rest, nil
}
