package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds the request rate limit settings. A zero RPS
// disables the limiter.
type RateLimitConfig struct {
	// RPS is the sustained number of requests allowed per second.
	RPS int

	// Burst is the maximum burst size. Zero means Burst equals RPS.
	Burst int
}

// RateLimitMiddleware rejects requests above the configured rate with
// 429. The limit is global, not per client: the analysis routes scan the
// whole corpus per request, so the limiter protects the process rather
// than fairness between callers.
func RateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.RPS
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
