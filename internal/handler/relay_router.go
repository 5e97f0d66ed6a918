package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventcrm/internal/handler/api"
	"eventcrm/internal/handler/middleware"
	"eventcrm/internal/pkg/config"
)

// NewRelayRouter wires the relay worker's two routes. The health endpoint is
// deliberately outside the secret gate so load balancers can probe it.
func NewRelayRouter(engine *gin.Engine, cfg config.RelayOnlyConfig, relayHandler *api.RelayHandler) {
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))

	engine.GET("/health", relayHandler.Health)

	apiGroup := engine.Group("/api")
	apiGroup.Use(middleware.RelaySecret(cfg.Relay.Secret))
	{
		apiGroup.POST("/send-email", relayHandler.SendEmail)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Not found",
		})
	})
}
