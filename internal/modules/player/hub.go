package player

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event tells an online player device that part of its catalog changed
// and should be reloaded.
type Event struct {
	Type     string `json:"type"`
	Resource string `json:"resource"`
}

const EventCatalogChanged = "catalog.changed"

const (
	ResourceVideos  = "videos"
	ResourcePhrases = "phrases"
)

// Hub tracks the single live player connection per user. A new
// connection for the same user supersedes the old one, mirroring the
// one-session-per-user rule of the auth core.
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.connections[userID]; ok && old != nil {
		_ = old.Close()
	}
	h.connections[userID] = conn
}

// Unregister drops the user's connection, but only if it is still the
// given one; a superseding Register must not be undone by the old
// connection's read loop exiting.
func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.connections[userID]; ok && current == conn {
		if current != nil {
			_ = current.Close()
		}
		delete(h.connections, userID)
	}
}

// NotifyUser pushes an event to the user's player if one is online.
// Returns false when nobody is listening or the write failed.
func (h *Hub) NotifyUser(userID int64, event Event) bool {
	h.mu.RLock()
	conn, ok := h.connections[userID]
	h.mu.RUnlock()

	if !ok || conn == nil {
		return false
	}

	if err := conn.WriteJSON(event); err != nil {
		h.Unregister(userID, conn)
		return false
	}
	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.connections[userID]
	return ok
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}
