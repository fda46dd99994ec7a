package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is the queued form of one Notify call.
type Message struct {
	ID         string            `json:"id"`
	TemplateID string            `json:"templateId"`
	Recipient  string            `json:"recipient"`
	Fields     map[string]string `json:"fields"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Publisher pushes notifications onto a durable RabbitMQ queue; MailWorker
// delivers them.
type Publisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher ลอง connect ทันที ถ้า broker ยังไม่พร้อมก็แค่ log
// Notify จะ connect ใหม่เองตอนส่งครั้งถัดไป
func NewPublisher(url, queue string) *Publisher {
	p := &Publisher{url: url, queue: queue}
	if err := p.connect(); err != nil {
		log.Printf("⚠️ notification publisher offline: %v", err)
	}
	return p
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := declareQueue(ch, p.queue); err != nil {
		conn.Close()
		return err
	}
	p.conn = conn
	p.ch = ch
	return nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return q, fmt.Errorf("declare queue %s: %w", name, err)
	}
	return q, nil
}

func (p *Publisher) Notify(ctx context.Context, templateID, recipient string, fields map[string]string) error {
	msg := Message{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		Recipient:  recipient,
		Fields:     fields,
		CreatedAt:  time.Now().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// connection หลุด -> ลอง connect ใหม่ 1 ครั้ง ไม่ retry ต่อ
	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		if err := p.connect(); err != nil {
			return err
		}
	}

	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    msg.CreatedAt,
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.ch != nil && !p.ch.IsClosed() {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil && !p.conn.IsClosed() {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
