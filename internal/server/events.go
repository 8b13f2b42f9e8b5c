package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Event is one grab lifecycle notification pushed to connected clients.
type Event struct {
	Type       string  `json:"type"`
	Grabber    string  `json:"grabber,omitempty"`
	Object     string  `json:"object,omitempty"`
	ObjectName string  `json:"object_name,omitempty"`
	Strength   float64 `json:"strength,omitempty"`
	Timestamp  int64   `json:"timestamp"`
}

// Event types pushed over /api/events.
const (
	EventGrabStarted = "grab_started"
	EventGrabEnded   = "grab_ended"
	EventGrabAttempt = "grab_attempt"
)

// wsConn serializes writes; gorilla connections do not allow concurrent
// writers.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) writeText(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// EventHub broadcasts grab events to WebSocket clients. A failed write
// drops the connection.
type EventHub struct {
	clients map[*wsConn]bool
	mu      sync.RWMutex
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[*wsConn]bool)}
}

// ServeHTTP handles WebSocket upgrade requests on /api/events.
func (h *EventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	c := &wsConn{conn: conn}
	defer conn.Close()

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish sends an event to all connected clients. The timestamp is filled
// in when the caller leaves it zero.
func (h *EventHub) Publish(e Event) {
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}

	msg, err := json.Marshal(e)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*wsConn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.writeText(msg); err != nil {
			h.mu.Lock()
			delete(h.clients, c)
			h.mu.Unlock()
			c.conn.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
