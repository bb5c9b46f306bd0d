package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prateekh777/professional-website/internal/delivery/http/response"
	"github.com/prateekh777/professional-website/pkg/apperror"
	"github.com/prateekh777/professional-website/pkg/logger"
)

const msgUnexpected = "An unexpected error occurred. Please try again later."

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		reqID := response.RequestID(c)

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// SECURITY: never expose internal error details to clients
			logger.Log.Error("Internal Server Error", "error", err, "path", c.FullPath(), "request_id", reqID)
			response.Error(c, http.StatusInternalServerError, msgUnexpected, nil)
			return
		}

		for k, v := range appErr.Headers {
			c.Header(k, v)
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("Request failed", "kind", appErr.Kind, "status", appErr.Code, "error", appErr.Error(), "path", c.FullPath(), "request_id", reqID)
		} else {
			logger.Log.Info("Request rejected", "kind", appErr.Kind, "status", appErr.Code, "error", appErr.Error(), "path", c.FullPath(), "request_id", reqID)
		}

		// Wrapped causes stay in the log; only Message and Details reach the client.
		response.Error(c, appErr.Code, appErr.Message, appErr.Details)
	}
}
