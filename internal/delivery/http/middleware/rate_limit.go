package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prateekh777/professional-website/internal/delivery/http/response"
	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/apperror"
	"github.com/prateekh777/professional-website/pkg/logger"
	"github.com/prateekh777/professional-website/pkg/metrics"
	"github.com/prateekh777/professional-website/pkg/security"
)

// RateLimitConfig names a limiter and how callers are keyed.
type RateLimitConfig struct {
	// Name labels metrics and logs
	Name string
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Clock defaults to time.Now
	Clock func() time.Time
}

// GlobalRateLimitConfig keys the API-wide limiter by client IP.
func GlobalRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Name: "global",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware rejects callers over the limiter's window with 429.
// A failing limiter admits the request.
func RateLimitMiddleware(limiter domain.RateLimiter, cfg RateLimitConfig, sec *security.SecurityLogger) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return func(c *gin.Context) {
		now := cfg.Clock()
		decision, err := limiter.Allow(c.Request.Context(), cfg.KeyFunc(c), now)
		if err != nil {
			logger.Log.Error("Rate limiter unavailable", "limiter", cfg.Name, "error", err)
			c.Next()
			return
		}

		for k, v := range decision.Headers() {
			c.Header(k, v)
		}

		if !decision.Allowed {
			metrics.RateLimitRejections.WithLabelValues(cfg.Name).Inc()
			sec.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(), response.RequestID(c), c.Request.URL.Path)
			_ = c.Error(apperror.RateLimitExceeded("Too many requests. Please try again later.", decision.RetryAfter(now)))
			c.Abort()
			return
		}

		c.Next()
	}
}
