package ws

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"foodshare/services"
	"foodshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// OrderHub กระจาย event สถานะ order ไปยังผู้ซื้อและเจ้าของร้านที่เปิด WS ค้างไว้
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> set of connections
	broadcast  chan services.OrderEvent
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{}
	mu         sync.Mutex
}

// Subscription = 1 connection ของ 1 user
type Subscription struct {
	Conn   *websocket.Conn
	UserID uint
}

func NewOrderHub() *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan services.OrderEvent, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
	}
}

// Run คอยฟัง register/unregister/broadcast จนกว่า ctx จะถูกยกเลิก
func (h *OrderHub) Run(ctx context.Context) error {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return nil

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			h.drop(sub.UserID, sub.Conn)
			h.mu.Unlock()

		// ส่งให้ทั้งฝั่งผู้ซื้อและร้าน
		case ev := <-h.broadcast:
			h.mu.Lock()
			for _, uid := range recipients(ev) {
				for conn := range h.clients[uid] {
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteJSON(ev); err != nil {
						log.Printf("ws write error: %v", err)
						h.drop(uid, conn)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

func recipients(ev services.OrderEvent) []uint {
	if ev.BuyerID == ev.SellerID {
		return []uint{ev.BuyerID}
	}
	return []uint{ev.BuyerID, ev.SellerID}
}

// ต้องถือ h.mu อยู่
func (h *OrderHub) drop(userID uint, conn *websocket.Conn) {
	if _, ok := h.clients[userID][conn]; !ok {
		return
	}
	delete(h.clients[userID], conn)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
	conn.Close()
}

func (h *OrderHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for uid, conns := range h.clients {
		for conn := range conns {
			conn.Close()
		}
		delete(h.clients, uid)
	}
	close(h.done)
}

// PublishOrderEvent ไม่ block ถ้า buffer เต็มจะทิ้ง event นั้น
func (h *OrderHub) PublishOrderEvent(ev services.OrderEvent) {
	select {
	case h.broadcast <- ev:
	default:
		log.Printf("⚠️ order feed full, dropped event for order %d", ev.OrderID)
	}
}

// Connected คืนจำนวน connection ของ user
func (h *OrderHub) Connected(userID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders?token=
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)

	// --- Upgrade HTTP → WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{Conn: conn, UserID: userID}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}

	go h.listen(sub)
}

// client ไม่ต้องส่งอะไรมา อ่านไว้เพื่อรู้ว่าปิด connection แล้ว
func (h *OrderHub) listen(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
