package http

import (
	"net/http"

	"word-duel/internal/room"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports server liveness
// @Summary Health check
// @Description Returns server status and the number of active rooms
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func HealthHandler(rm *room.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"message":     "Word Duel Server",
			"activeRooms": rm.ActiveRooms(),
		})
	}
}
