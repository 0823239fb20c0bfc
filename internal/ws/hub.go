package ws

import (
	"sync"

	"crestgold_backend/internal/logger"
)

// Hub fans live economy events out to connected feed clients. Unlike a
// game room there is no pairing: every client receives every broadcast,
// plus session-scoped events addressed to its own session id.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()
	logger.Debug("feed client connected", "session", c.SessionID, "clients", count)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
	count := len(h.clients)
	h.mu.Unlock()
	logger.Debug("feed client disconnected", "session", c.SessionID, "clients", count)
}

// Broadcast queues a message for every connected client. Slow clients are
// skipped rather than blocking the feed.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
		}
	}
}

// SendTo queues a message for the clients of one session.
func (h *Hub) SendTo(sessionID string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.SessionID != sessionID {
			continue
		}
		select {
		case c.Send <- msg:
		default:
		}
	}
}
