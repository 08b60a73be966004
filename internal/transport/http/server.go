package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sketchwire/sketchwire-server/internal/auth"
	"github.com/sketchwire/sketchwire-server/internal/config"
	"github.com/sketchwire/sketchwire-server/internal/core"
)

// NewServer builds the HTTP server: the WebSocket push path plus the
// REST read path, both backed by the same event log.
func NewServer(hub *core.Hub, authService *auth.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, authService, cfg, logger)))

	eventHandlers := NewEventHandlers(hub.Log(), hub.Registry(), logger)
	authHandlers := NewAuthHandlers(authService, logger)

	api := router.Group("/api")
	{
		api.POST("/auth/guest", authHandlers.GuestLogin)
		api.GET("/rooms/:roomId/events", eventHandlers.ListEvents)
		api.DELETE("/rooms/:roomId/events", eventHandlers.ClearEvents)
		api.GET("/rooms/:roomId/presence", eventHandlers.ListPresence)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
