package room

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"monopoly-be/internal/config"
	"monopoly-be/internal/game"
	"monopoly-be/internal/store"
)

// Join codes avoid the lookalike characters 0/O/1/I.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const codeLength = 6

// Manager owns the room directory: creation, lookup, serialized access,
// and garbage collection of stale rooms.
type Manager struct {
	store  *store.MemoryStore
	engine *game.Engine
	cfg    config.Config
	log    *zap.Logger
	rng    *rand.Rand
}

func NewManager(s *store.MemoryStore, e *game.Engine, cfg config.Config, log *zap.Logger) *Manager {
	return &Manager{
		store:  s,
		engine: e,
		cfg:    cfg,
		log:    log,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *Manager) Engine() *game.Engine { return m.engine }

// CreateRoom makes a room with a directory-unique join code and seats the
// creator as its owner.
func (m *Manager) CreateRoom(playerName, roomName string) (*game.Room, string) {
	var code string
	for {
		code = m.randCode()
		if !m.store.HasCode(code) {
			break
		}
	}
	r, playerID := m.engine.NewRoom(code, playerName, roomName)
	m.store.SaveRoom(r)
	m.log.Info("room created",
		zap.String("roomId", r.ID),
		zap.String("code", r.Code),
		zap.String("owner", playerName))
	return r, playerID
}

func (m *Manager) randCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[m.rng.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// WithRoom runs fn under the room's lock.
func (m *Manager) WithRoom(id string, fn func(r *game.Room) error) error {
	return m.store.WithRoom(id, fn)
}

// WithRoomByCode resolves a join code first, then locks the room.
func (m *Manager) WithRoomByCode(code string, fn func(r *game.Room) error) error {
	id, ok := m.store.IDByCode(code)
	if !ok {
		return store.ErrRoomNotFound
	}
	return m.store.WithRoom(id, fn)
}

func (m *Manager) GetRoom(id string) (*game.Room, bool) {
	return m.store.GetRoom(id)
}

func (m *Manager) DeleteRoom(id string) {
	m.store.DeleteRoom(id)
	m.log.Info("room deleted", zap.String("roomId", id))
}

// RoomSummary is the lobby listing shape.
type RoomSummary struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	PlayerCount int        `json:"playerCount"`
	MaxPlayers  int        `json:"maxPlayers"`
	Phase       game.Phase `json:"phase"`
}

func (m *Manager) ListRooms() []RoomSummary {
	rooms := m.store.Rooms()
	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomSummary{
			ID:          r.ID,
			Code:        r.Code,
			Name:        r.Name,
			PlayerCount: len(r.Players),
			MaxPlayers:  r.Settings.MaxPlayers,
			Phase:       r.GameState.Phase,
		})
	}
	return out
}

// CleanupStale drops emptied rooms and every room older than the
// configured TTL. Age is measured from creation, which is a known
// simplification: a long game can be collected mid-play.
func (m *Manager) CleanupStale() int {
	cutoff := time.Now().Add(-m.cfg.RoomTTL)
	removed := 0
	for _, r := range m.store.Rooms() {
		if len(r.Players) == 0 || r.CreatedAt.Before(cutoff) {
			m.DeleteRoom(r.ID)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps stale rooms until ctx is cancelled.
func (m *Manager) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.CleanupStale(); n > 0 {
				m.log.Info("cleaned up stale rooms", zap.Int("count", n))
			}
		}
	}
}
