package services

import (
	"context"
	"fmt"
	"strconv"

	"foodshare/entity"
	"foodshare/pkg/notify"
)

// ----- Seller actions -----

// MarkReady: Placed -> Ready, แจ้งผู้ซื้อให้มารับ
func (s *OrderService) MarkReady(ctx context.Context, orderID, actingUserID uint) (*entity.Order, error) {
	o, rest, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if rest.UserID != actingUserID {
		return nil, ErrUnauthorized
	}
	if err := s.move(ctx, o, entity.OrderReady); err != nil {
		return nil, err
	}

	if buyer, err := s.store.Users.FindByID(ctx, o.UserID); err == nil {
		send(ctx, s.notifier, notify.OrderReady, buyer.Email, map[string]string{
			"orderId":        strconv.FormatUint(uint64(o.ID), 10),
			"restaurantName": rest.Name,
			"address":        rest.Address,
		})
	}
	s.publish(o, rest)
	return o, nil
}

// MarkCollected: Ready -> Collected (ไม่มีอีเมล)
func (s *OrderService) MarkCollected(ctx context.Context, orderID, actingUserID uint) (*entity.Order, error) {
	o, rest, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if rest.UserID != actingUserID {
		return nil, ErrUnauthorized
	}
	if err := s.move(ctx, o, entity.OrderCollected); err != nil {
		return nil, err
	}
	s.publish(o, rest)
	return o, nil
}

// ----- Buyer or seller -----

// Cancel moves a Placed or Ready order to Cancelled. The order stays in
// history; the other party is notified.
func (s *OrderService) Cancel(ctx context.Context, orderID, actingUserID uint) (*entity.Order, error) {
	o, rest, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	byBuyer := o.UserID == actingUserID
	if !byBuyer && rest.UserID != actingUserID {
		return nil, ErrUnauthorized
	}
	if err := s.move(ctx, o, entity.OrderCancelled); err != nil {
		return nil, err
	}

	id := strconv.FormatUint(uint64(o.ID), 10)
	if byBuyer {
		buyer, err1 := s.store.Users.FindByID(ctx, o.UserID)
		seller, err2 := s.store.Users.FindByID(ctx, rest.UserID)
		if err1 == nil && err2 == nil {
			send(ctx, s.notifier, notify.OrderCancelledByBuyer, seller.Email, map[string]string{
				"orderId":   id,
				"buyerName": buyer.FullName(),
			})
		}
	} else if buyer, err := s.store.Users.FindByID(ctx, o.UserID); err == nil {
		send(ctx, s.notifier, notify.OrderCancelledBySeller, buyer.Email, map[string]string{
			"orderId":        id,
			"restaurantName": rest.Name,
		})
	}
	s.publish(o, rest)
	return o, nil
}

// move เปลี่ยนสถานะแบบมีเงื่อนไข ถ้าสถานะปัจจุบันไม่ใช่ต้นทางที่อนุญาตจะไม่อัปเดต
func (s *OrderService) move(ctx context.Context, o *entity.Order, to entity.OrderStatus) error {
	ok, err := s.store.Orders.UpdateStatusGuard(ctx, o.ID, to.Sources(), to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	o.Status = to
	return nil
}
