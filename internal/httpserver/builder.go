package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stacklens/stacklens/internal/logger"
)

// ServerBuilder provides a fluent API for building HTTP servers.
type ServerBuilder struct {
	config       *Config
	logger       logger.Logger
	setupRoutes  func(*gin.Engine)
	healthChecks map[string]HealthChecker
}

// NewServerBuilder creates a new server builder with the given configuration.
func NewServerBuilder(serviceName string, port int) *ServerBuilder {
	return &ServerBuilder{
		config:       NewConfig(serviceName, port),
		healthChecks: make(map[string]HealthChecker),
	}
}

// WithConfig sets a custom configuration.
func (b *ServerBuilder) WithConfig(cfg *Config) *ServerBuilder {
	b.config = cfg
	return b
}

// WithLogger sets the logger.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.logger = log
	return b
}

// WithDebug enables or disables debug mode.
func (b *ServerBuilder) WithDebug(debug bool) *ServerBuilder {
	b.config.Debug = debug
	return b
}

// WithVersion sets the service version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.config.ServiceVersion = version
	return b
}

// WithCORS configures CORS settings.
func (b *ServerBuilder) WithCORS(cfg CORSConfig) *ServerBuilder {
	b.config.CORS = cfg
	return b
}

// WithCORSOrigins sets allowed CORS origins.
func (b *ServerBuilder) WithCORSOrigins(origins []string) *ServerBuilder {
	b.config.CORS.AllowedOrigins = origins
	return b
}

// WithTimeouts sets all timeout values for the HTTP server.
func (b *ServerBuilder) WithTimeouts(read, write, idle time.Duration) *ServerBuilder {
	b.config.ReadTimeout = read
	b.config.WriteTimeout = write
	b.config.IdleTimeout = idle
	return b
}

// WithRateLimit caps the sustained request rate. Zero disables the cap.
func (b *ServerBuilder) WithRateLimit(rps int) *ServerBuilder {
	b.config.RateLimit.RPS = rps
	return b
}

// WithHealthCheck adds a named health check.
func (b *ServerBuilder) WithHealthCheck(name string, checker HealthChecker) *ServerBuilder {
	b.healthChecks[name] = checker
	return b
}

// WithCorpusHealthCheck adds a corpus health check.
func (b *ServerBuilder) WithCorpusHealthCheck(sizeFunc func() int) *ServerBuilder {
	b.healthChecks["corpus"] = CorpusHealthChecker(sizeFunc)
	return b
}

// WithRoutes sets the route setup function.
func (b *ServerBuilder) WithRoutes(setupRoutes func(*gin.Engine)) *ServerBuilder {
	b.setupRoutes = setupRoutes
	return b
}

// Build creates the server with all configured options.
func (b *ServerBuilder) Build() *Server {
	// Ensure we have a logger
	if b.logger == nil {
		b.logger = logger.Must(logger.Config{
			Level:       "info",
			Development: b.config.Debug,
		})
	}

	// Create wrapper that adds health routes
	wrappedSetup := func(router *gin.Engine) {
		// Register health routes with checks if any
		if len(b.healthChecks) > 0 {
			RegisterHealthRoutesWithChecks(router, HealthOptions{
				ServiceName:    b.config.ServiceName,
				ServiceVersion: b.config.ServiceVersion,
				Checks:         b.healthChecks,
			})
		} else {
			RegisterHealthRoutes(router, b.config.ServiceName, b.config.ServiceVersion)
		}

		// Call service-specific route setup
		if b.setupRoutes != nil {
			b.setupRoutes(router)
		}
	}

	return NewServer(b.config, b.logger, wrappedSetup)
}

// PublicGroup creates a router group without authentication.
// Use this for public routes like health checks or public APIs.
func PublicGroup(router *gin.Engine, path string) *gin.RouterGroup {
	return router.Group(path)
}
