package http

import (
	"word-duel/internal/api/ws"
	"word-duel/internal/room"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRouter(rm *room.Registry, hub *ws.Hub) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// WebSocket for the duel event surface
	r.GET("/ws", hub.HandleWS)

	r.GET("/api/health", HealthHandler(rm))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
