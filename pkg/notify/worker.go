package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MailWorker consumes queued notifications and hands each one to a delivery
// Notifier (normally MailgunSender). Failed deliveries are dropped, not
// requeued.
type MailWorker struct {
	url      string
	queue    string
	next     Notifier
	timeout  time.Duration
	prefetch int

	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewMailWorker(url, queue string, next Notifier, timeout time.Duration) *MailWorker {
	return &MailWorker{
		url:      url,
		queue:    queue,
		next:     next,
		timeout:  timeout,
		prefetch: 10,

		minBackoff: time.Second,
		maxBackoff: 30 * time.Second,
	}
}

// Run consumes until ctx is cancelled. An unreachable broker or a dropped
// connection is logged and retried with exponential backoff; Run only
// returns once ctx is done, and then always with nil.
func (w *MailWorker) Run(ctx context.Context) error {
	delay := w.minBackoff
	for {
		consumed, err := w.consume(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if consumed {
			delay = w.minBackoff
		}
		log.Printf("⚠️ mail worker: %v (retry in %s)", err, delay)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		delay = min(delay*2, w.maxBackoff)
	}
}

// consume รับ message จน ctx ถูก cancel หรือ connection หลุด
// consumed = true ถ้าเคยต่อ broker สำเร็จในรอบนี้
func (w *MailWorker) consume(ctx context.Context) (consumed bool, err error) {
	conn, err := amqp.Dial(w.url)
	if err != nil {
		return false, fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return false, fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if _, err := declareQueue(ch, w.queue); err != nil {
		return false, err
	}
	if err := ch.Qos(w.prefetch, 0, false); err != nil {
		return false, err
	}
	deliveries, err := ch.Consume(w.queue, "foodshare-mail-worker", false, false, false, false, nil)
	if err != nil {
		return false, fmt.Errorf("consume %s: %w", w.queue, err)
	}

	log.Printf("📬 mail worker consuming %s", w.queue)
	for {
		select {
		case <-ctx.Done():
			return true, nil
		case d, ok := <-deliveries:
			if !ok {
				return true, errors.New("delivery channel closed")
			}
			if err := w.process(ctx, d.Body); err != nil {
				log.Printf("❌ mail worker: %v", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *MailWorker) process(ctx context.Context, body []byte) error {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if msg.TemplateID == "" || msg.Recipient == "" {
		return fmt.Errorf("message %s: missing template or recipient", msg.ID)
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.next.Notify(ctx, msg.TemplateID, msg.Recipient, msg.Fields); err != nil {
		return fmt.Errorf("message %s: %w", msg.ID, err)
	}
	return nil
}
