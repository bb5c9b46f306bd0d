package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the portfolio frontend to call the API.
//
// SECURITY: origins are matched exactly:
// - FRONTEND_URL and its www/apex twin are always allowed
// - localhost dev servers are allowed outside production only
func CORSMiddleware(frontendURL string, production bool) gin.HandlerFunc {
	allowed := map[string]bool{}
	if frontendURL != "" {
		allowed[frontendURL] = true
		if twin := wwwTwin(frontendURL); twin != "" {
			allowed[twin] = true
		}
	}
	if !production {
		for _, o := range []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5000",
			"http://localhost:5173",
		} {
			allowed[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Empty origin (same-origin or server-to-server) is allowed
		isAllowed := origin == "" || allowed[origin]

		if isAllowed && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			c.Header("Access-Control-Expose-Headers", "Retry-After, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset, X-Request-ID")
			c.Header("Access-Control-Max-Age", "86400")
		}

		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			if isAllowed {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}

// wwwTwin maps https://example.com to https://www.example.com and back.
func wwwTwin(origin string) string {
	scheme, host, ok := strings.Cut(origin, "://")
	if !ok || host == "" || strings.HasPrefix(host, "localhost") {
		return ""
	}
	if rest, found := strings.CutPrefix(host, "www."); found {
		return scheme + "://" + rest
	}
	return scheme + "://www." + host
}
