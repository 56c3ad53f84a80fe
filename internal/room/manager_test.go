package room

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"monopoly-be/internal/config"
	"monopoly-be/internal/game"
	"monopoly-be/internal/store"
)

func testManager(cfg config.Config) *Manager {
	return NewManager(store.NewMemoryStore(), game.NewEngine(), cfg, zap.NewNop())
}

func TestCreateRoomCodeFormat(t *testing.T) {
	m := testManager(config.Config{RoomTTL: time.Hour})

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		r, playerID := m.CreateRoom("Alice", "")
		assert.Len(t, r.Code, codeLength)
		for _, ch := range r.Code {
			assert.True(t, strings.ContainsRune(codeAlphabet, ch), "code %q holds %q", r.Code, ch)
		}
		assert.False(t, seen[r.Code], "join codes must be unique")
		seen[r.Code] = true
		assert.Equal(t, playerID, r.OwnerID)
	}
}

func TestWithRoomByCode(t *testing.T) {
	m := testManager(config.Config{RoomTTL: time.Hour})
	r, _ := m.CreateRoom("Alice", "")

	err := m.WithRoomByCode(r.Code, func(got *game.Room) error {
		assert.Equal(t, r.ID, got.ID)
		return nil
	})
	require.NoError(t, err)

	assert.ErrorIs(t, m.WithRoomByCode("NOPE42", func(*game.Room) error { return nil }), store.ErrRoomNotFound)
}

func TestListRooms(t *testing.T) {
	m := testManager(config.Config{RoomTTL: time.Hour})
	m.CreateRoom("Alice", "Alice's table")
	m.CreateRoom("Bob", "")

	rooms := m.ListRooms()
	require.Len(t, rooms, 2)
	for _, s := range rooms {
		assert.Equal(t, 1, s.PlayerCount)
		assert.Equal(t, game.PhaseWaiting, s.Phase)
		assert.Equal(t, 4, s.MaxPlayers)
	}
}

func TestCleanupStale(t *testing.T) {
	fresh := testManager(config.Config{RoomTTL: time.Hour})
	fresh.CreateRoom("Alice", "")
	assert.Zero(t, fresh.CleanupStale())
	assert.Len(t, fresh.ListRooms(), 1)

	stale := testManager(config.Config{RoomTTL: -time.Minute})
	stale.CreateRoom("Alice", "")
	assert.Equal(t, 1, stale.CleanupStale())
	assert.Empty(t, stale.ListRooms())
}

func TestCleanupCollectsEmptiedRooms(t *testing.T) {
	m := testManager(config.Config{RoomTTL: time.Hour})
	r, _ := m.CreateRoom("Alice", "")
	require.NoError(t, m.WithRoom(r.ID, func(r *game.Room) error {
		r.Players = nil
		return nil
	}))
	assert.Equal(t, 1, m.CleanupStale())
	assert.Empty(t, m.ListRooms())
}
