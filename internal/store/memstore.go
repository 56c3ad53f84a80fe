package store

import (
	"sync"

	"monopoly-be/internal/game"
)

// entry pairs a room with the mutex that serializes every mutation on it.
type entry struct {
	mu   sync.Mutex
	room *game.Room
}

// MemoryStore keeps every live room in process memory, addressable by id
// and by join code.
type MemoryStore struct {
	mu     sync.RWMutex
	rooms  map[string]*entry
	byCode map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:  map[string]*entry{},
		byCode: map[string]string{},
	}
}

func (m *MemoryStore) SaveRoom(r *game.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.ID] = &entry{room: r}
	m.byCode[r.Code] = r.ID
}

func (m *MemoryStore) get(id string) (*entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.rooms[id]
	return e, ok
}

// GetRoom returns the room by id without locking it. Callers that mutate
// must go through WithRoom instead.
func (m *MemoryStore) GetRoom(id string) (*game.Room, bool) {
	e, ok := m.get(id)
	if !ok {
		return nil, false
	}
	return e.room, true
}

func (m *MemoryStore) IDByCode(code string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byCode[code]
	return id, ok
}

func (m *MemoryStore) HasCode(code string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byCode[code]
	return ok
}

// WithRoom runs fn with the room's mutex held. All game mutations funnel
// through here, which is what keeps each room single-writer.
func (m *MemoryStore) WithRoom(id string, fn func(r *game.Room) error) error {
	e, ok := m.get(id)
	if !ok {
		return ErrRoomNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.room)
}

func (m *MemoryStore) DeleteRoom(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.rooms[id]; ok {
		delete(m.byCode, e.room.Code)
		delete(m.rooms, id)
	}
}

// Rooms snapshots the current room pointers, in no particular order.
func (m *MemoryStore) Rooms() []*game.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*game.Room, 0, len(m.rooms))
	for _, e := range m.rooms {
		out = append(out, e.room)
	}
	return out
}
