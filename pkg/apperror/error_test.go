package apperror

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindsMapToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
		kind Kind
	}{
		{"validation", Validation("Validation error", nil), http.StatusBadRequest, KindValidation},
		{"abuse", AbuseCheckFailed("captcha", nil), http.StatusBadRequest, KindAbuseCheckFailed},
		{"rate limit", RateLimitExceeded("slow down", time.Minute), http.StatusTooManyRequests, KindRateLimitExceeded},
		{"unavailable", ServiceUnavailable("down", nil), http.StatusInternalServerError, KindServiceUnavailable},
		{"dispatch", DispatchFailed("failed", nil), http.StatusInternalServerError, KindDispatchFailed},
		{"not found", NotFound("missing"), http.StatusNotFound, KindNotFound},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.kind, tt.err.Kind)
		})
	}
}

func TestRateLimitExceeded_RetryAfter(t *testing.T) {
	assert.Equal(t, "90", RateLimitExceeded("x", 90*time.Second).Headers["Retry-After"])
	assert.Equal(t, "1", RateLimitExceeded("x", 200*time.Millisecond).Headers["Retry-After"])
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("provider returned 401")
	err := DispatchFailed("Failed to send message", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "provider returned 401")

	var appErr *AppError
	assert.True(t, errors.As(error(err), &appErr))
}
