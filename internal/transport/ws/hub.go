package ws

import (
	"sync"

	"github.com/openclass/class-service/internal/service"
)

type Conn interface {
	ID() string
	Send(ev service.Event) error
	Close() error
}

// Hub indexes live connections by connection id. Room membership is the
// coordinator's business; the hub only delivers to the ids it is handed.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]Conn)}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[c.ID()] = c
}

func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.conns, id)
}

func (h *Hub) Unicast(id string, ev service.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.conns[id]; ok {
		_ = c.Send(ev) // best-effort
	}
}

func (h *Hub) Multicast(ids []string, ev service.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, id := range ids {
		if c, ok := h.conns[id]; ok {
			_ = c.Send(ev) // best-effort
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns)
}
