package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prateekh777/professional-website/internal/usecase"
)

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("dial tcp: refused") }

	tests := []struct {
		name     string
		deps     usecase.HealthDeps
		status   string
		services map[string]string
	}{
		{
			name:   "nothing configured",
			deps:   usecase.HealthDeps{Environment: "development", EmailTransport: "none"},
			status: usecase.StatusOK,
			services: map[string]string{
				"database": "not_configured", "redis": "not_configured", "email": "not_configured", "storage": "not_configured",
			},
		},
		{
			name:   "all up",
			deps:   usecase.HealthDeps{Database: ok, Redis: ok, EmailConfigured: true, EmailTransport: "sendgrid", StorageConfigured: true},
			status: usecase.StatusOK,
			services: map[string]string{
				"database": "ok", "redis": "ok", "email": "ok", "storage": "ok",
			},
		},
		{
			name:   "database down, smtp fallback",
			deps:   usecase.HealthDeps{Database: broken, EmailTransport: "smtp"},
			status: usecase.StatusDegraded,
			services: map[string]string{
				"database": "error", "redis": "not_configured", "email": "fallback", "storage": "not_configured",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.NewHealthUsecase(tt.deps).Check(context.Background())
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.services, got.Services)
			assert.Equal(t, tt.status == usecase.StatusOK, got.Healthy())
			assert.False(t, got.Timestamp.IsZero())
		})
	}
}
