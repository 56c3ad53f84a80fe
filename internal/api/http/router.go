package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"monopoly-be/internal/api/ws"
	"monopoly-be/internal/config"
	"monopoly-be/internal/room"
)

func NewRouter(mgr *room.Manager, hub *ws.Hub, cfg config.Config) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.Default())

	// All gameplay runs over the websocket; HTTP is lobby reads and
	// health only.
	r.GET("/ws", hub.HandleWS)

	api := r.Group("/api")
	{
		api.GET("/health", HealthHandler())
		api.GET("/board", BoardHandler())
		api.GET("/rooms", ListRoomsHandler(mgr))
		api.GET("/rooms/:code", RoomByCodeHandler(mgr))
	}

	return r
}
