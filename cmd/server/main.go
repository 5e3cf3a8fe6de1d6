package main

import (
	"context"
	"net/http"
	"os"

	httpapi "word-duel/internal/api/http"
	"word-duel/internal/api/ws"
	"word-duel/internal/config"
	"word-duel/internal/room"
	"word-duel/internal/store"

	// swagger packages
	_ "word-duel/docs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Word Duel API
// @version 1.0
// @description WebSocket word-duel room server (Go + Gin)
// @contact.name Backend Team
// @BasePath /
func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	mem := store.NewMemoryStore()
	rm := room.NewRegistry(mem, cfg, clockwork.NewRealClock())
	hub := ws.NewHub(rm)
	rm.SetBroadcaster(hub)
	r := httpapi.SetupRouter(rm, hub)

	// Optional: Add root redirect to swagger
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rm.RunSweeper(ctx)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
