package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stacklens/stacklens/internal/config"
	"github.com/stacklens/stacklens/internal/httpserver"
	"github.com/stacklens/stacklens/internal/logger"
	"github.com/stacklens/stacklens/internal/telemetry"
)

// NewServer builds the HTTP server: standard middleware, health routes
// with a corpus check, the Prometheus exposition endpoint, and the
// analysis API routes.
func NewServer(handler *Handler, cfg *config.Config, metrics *telemetry.Metrics, log logger.Logger) *httpserver.Server {
	return httpserver.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithRateLimit(cfg.Service.RateLimitRPS).
		WithCorpusHealthCheck(handler.store.Len).
		WithRoutes(func(router *gin.Engine) {
			router.GET("/metrics", gin.WrapH(metrics.Handler()))
			SetupRoutes(router, handler)
		}).
		Build()
}
