package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"monopoly-be/internal/game"
	"monopoly-be/internal/room"
)

// HealthHandler answers liveness probes
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// BoardHandler serves the static board layout
// @Summary Board tile table
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/board [get]
func BoardHandler() gin.HandlerFunc {
	tiles := BoardTiles()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tiles": tiles})
	}
}

// ListRoomsHandler lists every open room for the lobby screen
// @Summary List rooms
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms [get]
func ListRoomsHandler(mgr *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": mgr.ListRooms()})
	}
}

// RoomByCodeHandler resolves a join code before the client opens its
// websocket, so a bad code fails fast
// @Summary Look up a room by join code
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{code} [get]
func RoomByCodeHandler(mgr *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(c.Param("code"))
		var summary *room.RoomSummary
		err := mgr.WithRoomByCode(code, func(r *game.Room) error {
			summary = &room.RoomSummary{
				ID:          r.ID,
				Code:        r.Code,
				Name:        r.Name,
				PlayerCount: len(r.Players),
				MaxPlayers:  r.Settings.MaxPlayers,
				Phase:       r.GameState.Phase,
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": summary})
	}
}
