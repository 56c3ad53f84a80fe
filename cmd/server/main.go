package main

import (
	"context"

	"go.uber.org/zap"

	httpapi "monopoly-be/internal/api/http"
	"monopoly-be/internal/api/ws"
	"monopoly-be/internal/config"
	"monopoly-be/internal/game"
	"monopoly-be/internal/room"
	"monopoly-be/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	mem := store.NewMemoryStore()
	engine := game.NewEngine()
	mgr := room.NewManager(mem, engine, cfg, logger)
	timers := room.NewTurnTimers(mgr)
	hub := ws.NewHub(mgr, timers, cfg, logger)
	r := httpapi.NewRouter(mgr, hub, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mgr.RunJanitor(ctx)

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
