// Package realtime pushes jobcard change events to connected websocket clients.
package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/metrics"

	"github.com/gorilla/websocket"
)

type EventType string

const (
	JobcardCreated EventType = "jobcard.created"
	JobcardUpdated EventType = "jobcard.updated"
	JobcardDeleted EventType = "jobcard.deleted"
	JobcardPaid    EventType = "jobcard.paid"
	ModelsChanged  EventType = "models.changed"
)

type Event struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Hub struct {
	log        *logger.Logger
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:       log,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 64),
	}
}

// Publish queues an event for delivery. It never blocks; when the queue is
// full the event is dropped.
func (h *Hub) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- e:
	default:
		h.log.Warn("realtime queue full, dropping event", "type", e.Type, "id", e.ID)
	}
}

// Run delivers queued events until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case e := <-h.broadcast:
			h.deliver(e)
		}
	}
}

func (h *Hub) deliver(e Event) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		_ = client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteJSON(e); err != nil {
			client.Close()
			delete(h.clients, client)
			metrics.WebsocketClients.Dec()
		}
	}
}

func (h *Hub) closeAll() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
		metrics.WebsocketClients.Dec()
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and keeps the connection registered until the
// client goes away. Incoming messages are ignored.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()
	metrics.WebsocketClients.Inc()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.clientsMux.Lock()
	if h.clients[conn] {
		delete(h.clients, conn)
		metrics.WebsocketClients.Dec()
	}
	h.clientsMux.Unlock()
	conn.Close()
}
