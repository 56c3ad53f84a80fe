package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	// Room directory housekeeping
	RoomTTL         time.Duration
	CleanupInterval time.Duration

	// How long a disconnected player keeps their lobby seat
	DisconnectGrace time.Duration

	Debug bool
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:        getenvStr("HTTP_ADDR", ":8080"),
		RoomTTL:         time.Duration(getenvInt("ROOM_TTL_MINUTES", 120)) * time.Minute,
		CleanupInterval: time.Duration(getenvInt("CLEANUP_INTERVAL_MINUTES", 30)) * time.Minute,
		DisconnectGrace: time.Duration(getenvInt("DISCONNECT_GRACE_SECONDS", 30)) * time.Second,
		Debug:           getenvBool("GIN_DEBUG", false),
	}
}
