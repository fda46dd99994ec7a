// Package notify delivers templated notifications (e-mail) to users.
//
// Delivery is fire-and-forget from the caller's point of view: wrap any
// Notifier with Async and failures are logged instead of returned.
package notify

import (
	"context"
	"log"
	"time"
)

// Template IDs. Bodies live in templates.yaml.
const (
	Welcome                = "welcome"
	ResetPassword          = "reset_password"
	ResetPasswordDone      = "reset_password_done"
	PasswordChanged        = "password_changed"
	OrderConfirmBuyer      = "order_confirm_buyer"
	OrderConfirmSeller     = "order_confirm_seller"
	OrderCancelledByBuyer  = "order_cancelled_by_buyer"
	OrderCancelledBySeller = "order_cancelled_by_seller"
	OrderReady             = "order_ready"
	ContactUs              = "contact_us"
)

type Notifier interface {
	Notify(ctx context.Context, templateID, recipient string, fields map[string]string) error
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, templateID, recipient string, fields map[string]string) error

func (f Func) Notify(ctx context.Context, templateID, recipient string, fields map[string]string) error {
	return f(ctx, templateID, recipient, fields)
}

// LogNotifier only writes the notification to the log. Used when no broker or
// mail provider is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, templateID, recipient string, fields map[string]string) error {
	log.Printf("[notify] %s -> %s %v", templateID, recipient, fields)
	return nil
}

type async struct {
	next    Notifier
	timeout time.Duration
}

// Async returns a Notifier that hands every call to next on its own goroutine
// with a fresh timeout, so the caller never waits on delivery.
func Async(next Notifier, timeout time.Duration) Notifier {
	return &async{next: next, timeout: timeout}
}

func (a *async) Notify(_ context.Context, templateID, recipient string, fields map[string]string) error {
	// request ctx จะถูก cancel หลังตอบ client แล้ว จึงต้องใช้ ctx ใหม่
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if err := a.next.Notify(ctx, templateID, recipient, fields); err != nil {
			log.Printf("❌ notify %s -> %s failed: %v", templateID, recipient, err)
		}
	}()
	return nil
}
