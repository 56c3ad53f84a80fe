package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Hour, cfg.RoomTTL)
	assert.Equal(t, 30*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, 30*time.Second, cfg.DisconnectGrace)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("ROOM_TTL_MINUTES", "5")
	t.Setenv("DISCONNECT_GRACE_SECONDS", "2")
	t.Setenv("GIN_DEBUG", "true")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Minute, cfg.RoomTTL)
	assert.Equal(t, 2*time.Second, cfg.DisconnectGrace)
	assert.True(t, cfg.Debug)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("ROOM_TTL_MINUTES", "not-a-number")
	t.Setenv("GIN_DEBUG", "maybe")

	cfg := Load()
	assert.Equal(t, 2*time.Hour, cfg.RoomTTL)
	assert.False(t, cfg.Debug)
}
