package services

import (
	"context"
	"log"
	"time"

	"foodshare/entity"
	"foodshare/pkg/notify"
)

// OrderEvent is pushed to the live feed whenever an order is created or
// changes status. BuyerID and SellerID select the recipients.
type OrderEvent struct {
	OrderID      uint               `json:"orderId"`
	RestaurantID uint               `json:"restaurantId"`
	Status       entity.OrderStatus `json:"status"`
	Amount       string             `json:"amount"`
	At           time.Time          `json:"at"`
	BuyerID      uint               `json:"-"`
	SellerID     uint               `json:"-"`
}

type OrderEventPublisher interface {
	PublishOrderEvent(ev OrderEvent)
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderEvent(OrderEvent) {}

// ส่งอีเมลแบบไม่ให้ล้ม flow หลัก (log อย่างเดียว)
func send(ctx context.Context, n notify.Notifier, templateID, to string, fields map[string]string) {
	if n == nil || to == "" {
		return
	}
	if err := n.Notify(ctx, templateID, to, fields); err != nil {
		log.Printf("⚠️ notify %s to %s failed: %v", templateID, to, err)
	}
}
