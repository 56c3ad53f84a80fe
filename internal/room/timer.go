package room

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"monopoly-be/internal/game"
)

// TurnTimers enforces the per-turn clock. One timer per room, rearmed on
// every turn change; a fired timer that no longer matches the live turn is
// a no-op.
type TurnTimers struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	mgr      *Manager
	onChange func(roomID string)
}

func NewTurnTimers(mgr *Manager) *TurnTimers {
	return &TurnTimers{
		timers: map[string]*time.Timer{},
		mgr:    mgr,
	}
}

// SetOnChange registers the broadcast hook invoked after a timeout
// mutates a room.
func (t *TurnTimers) SetOnChange(fn func(roomID string)) {
	t.onChange = fn
}

// Arm starts (or restarts) the room's turn timer for the current turn.
// Call it with the room lock held.
func (t *TurnTimers) Arm(r *game.Room) {
	if r.GameState.Phase != game.PhasePlaying {
		t.Stop(r.ID)
		return
	}
	roomID := r.ID
	playerID := r.GameState.CurrentPlayerID
	turnStart := r.GameState.TurnStartTime
	d := time.Duration(r.Settings.TurnTimeLimit) * time.Second

	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.timers[roomID]; ok {
		old.Stop()
	}
	t.timers[roomID] = time.AfterFunc(d, func() {
		t.fire(roomID, playerID, turnStart)
	})
}

func (t *TurnTimers) Stop(roomID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.timers[roomID]; ok {
		old.Stop()
		delete(t.timers, roomID)
	}
}

// fire handles a timer expiry. The turn it was armed for may be long gone
// by the time the lock is acquired, so it re-checks before acting.
func (t *TurnTimers) fire(roomID, playerID string, turnStart time.Time) {
	changed := false
	err := t.mgr.WithRoom(roomID, func(r *game.Room) error {
		g := &r.GameState
		if g.Phase != game.PhasePlaying || g.CurrentPlayerID != playerID || !g.TurnStartTime.Equal(turnStart) {
			return nil
		}
		changed = t.mgr.Engine().HandleTurnTimeout(r)
		if g.Phase == game.PhasePlaying {
			t.Arm(r)
		} else {
			t.Stop(roomID)
		}
		return nil
	})
	if err != nil {
		t.mgr.log.Warn("turn timeout on missing room", zap.String("roomId", roomID))
		return
	}
	if changed && t.onChange != nil {
		t.onChange(roomID)
	}
}
