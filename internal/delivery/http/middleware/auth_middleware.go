package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prateekh777/professional-website/internal/delivery/http/response"
	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/auth"
	"github.com/prateekh777/professional-website/pkg/logger"
	"github.com/prateekh777/professional-website/pkg/security"
)

// AdminAuth requires a bearer token carrying role "admin".
func AdminAuth(tokens *auth.TokenService, sec *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		deny := func(code int, message, reason string) {
			sec.LogUnauthorizedAccess(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(), response.RequestID(c), c.Request.URL.Path, reason)
			response.Error(c, code, message, nil)
			c.Abort()
		}

		if !tokens.Configured() {
			logger.Log.Warn("Admin request rejected: ADMIN_JWT_SECRET is not set", "path", c.Request.URL.Path)
			deny(http.StatusServiceUnavailable, "Admin API is not configured", "not_configured")
			return
		}

		tokenString, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			deny(http.StatusUnauthorized, "Authorization header required", "missing_token")
			return
		}

		claims, err := tokens.ParseAdmin(strings.TrimSpace(tokenString))
		if errors.Is(err, auth.ErrForbidden) {
			deny(http.StatusForbidden, "Admin access required", "forbidden_role")
			return
		}
		if err != nil {
			deny(http.StatusUnauthorized, "Invalid token", "invalid_token")
			return
		}

		c.Set(string(domain.KeyAdminSubject), claims.Subject)
		c.Set(string(domain.KeyAdminRole), claims.Role)

		c.Next()
	}
}
