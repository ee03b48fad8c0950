package registry

import (
	"sync"

	"github.com/openclass/class-service/internal/domain"
)

// Registry owns the roomID -> Room mapping. Rooms are created lazily on
// first reference and never removed, even when empty: the ledger and chat
// history of a room outlive its participants for the process lifetime.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

func New() *Registry {
	return &Registry{rooms: make(map[string]*domain.Room)}
}

// GetOrCreate returns the room for id, creating an empty one if needed.
// The id is opaque and caller-supplied; no format validation.
func (r *Registry) GetOrCreate(id string) *domain.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[id]
	if !ok {
		room = domain.NewRoom(id)
		r.rooms[id] = room
	}
	return room
}

func (r *Registry) Get(id string) (*domain.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	return room, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}
