package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// EventProductCreated carries the full stored product record.
	EventProductCreated = "product created"
	// EventProductDeleted carries the deleted product identifier.
	EventProductDeleted = "product deleted"
)

// Publisher broadcasts write events to whoever is listening. Publishing
// must never block or fail the caller's write path.
type Publisher interface {
	Publish(event string, payload any)
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(string, any) {}

// Message is the wire format delivered to subscribers.
type Message struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

const (
	subscriberBuffer = 16
	writeWait        = 10 * time.Second
)

// Hub fans write events out to connected WebSocket subscribers. A
// subscriber that cannot keep up (full send buffer) is dropped rather
// than allowed to stall publishing.
type Hub struct {
	logger   *logrus.Logger
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Publish marshals the event once and hands it to every subscriber's
// send queue without blocking.
func (h *Hub) Publish(event string, payload any) {
	data, err := json.Marshal(Message{Event: event, Payload: payload})
	if err != nil {
		h.logger.Warnf("marshal %q event: %v", event, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		select {
		case sub.send <- data:
		default:
			// slow consumer, cut it loose
			delete(h.subscribers, sub)
			close(sub.send)
		}
	}
}

// SubscriberCount reports the number of live subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// HandleUpgrade upgrades the request to a WebSocket connection and
// registers it as a subscriber until the peer disconnects.
func (h *Hub) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("websocket upgrade: %v", err)
		return
	}

	sub := &subscriber{
		conn: conn,
		send: make(chan []byte, subscriberBuffer),
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(sub)
	go h.readLoop(sub)
}

func (h *Hub) writeLoop(sub *subscriber) {
	defer sub.conn.Close()

	for data := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(sub)
			return
		}
	}
	// channel closed by Publish after a full buffer
	sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "subscriber too slow"))
}

// readLoop drains inbound frames so close/ping handling works and the
// hub notices disconnects.
func (h *Hub) readLoop(sub *subscriber) {
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			h.remove(sub)
			return
		}
	}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.send)
	}
}
