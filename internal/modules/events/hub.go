package events

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn wraps a websocket connection with a write lock. gorilla/websocket
// allows at most one concurrent writer, and notifications and pings arrive
// from different goroutines.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *Conn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

func (c *Conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}

// Hub tracks one live websocket connection per user.
type Hub struct {
	connections map[int64]*Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*Conn),
	}
}

// Register replaces any previous connection for the user and returns the
// wrapped connection all writes must go through.
func (h *Hub) Register(userID int64, ws *websocket.Conn) *Conn {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[userID]; exists && old != nil {
		_ = old.ws.Close()
	}

	c := &Conn{ws: ws}
	h.connections[userID] = c
	return c
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.connections[userID]; exists && c != nil {
		_ = c.ws.Close()
		delete(h.connections, userID)
	}
}

// SendToUser delivers the message to the user's connection if one is open.
// Returns false when the user is offline or the write fails.
func (h *Hub) SendToUser(userID int64, message interface{}) bool {
	h.mutex.RLock()
	c, exists := h.connections[userID]
	h.mutex.RUnlock()

	if !exists || c == nil {
		return false
	}

	if err := c.writeJSON(message); err != nil {
		h.Unregister(userID)
		return false
	}

	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[userID]
	return exists
}

func (h *Hub) GetOnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, c := range h.connections {
		if c != nil {
			_ = c.ws.Close()
		}
		delete(h.connections, userID)
	}
}
