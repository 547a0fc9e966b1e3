package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message is a change notification pushed to connected note clients.
type Message struct {
	Type   string `json:"type"`
	NoteID int64  `json:"noteId,omitempty"`
}

// NoteEvent builds the message for a note lifecycle action
// ("created", "updated", "deleted", "pinned").
func NoteEvent(action string, noteID int64) Message {
	return Message{Type: "note_" + action, NoteID: noteID}
}

// Hub tracks active WebSocket clients and fans messages out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast delivers a message to the owner's connected clients only;
// note activity is never visible across user boundaries. Clients whose
// buffers are full are skipped rather than blocking the caller.
func (h *Hub) Broadcast(ownerID int64, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.userID != ownerID {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
