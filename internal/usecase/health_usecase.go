package usecase

import (
	"context"
	"time"
)

const (
	StatusOK            = "ok"
	StatusDegraded      = "degraded"
	StatusError         = "error"
	StatusNotConfigured = "not_configured"
	StatusFallback      = "fallback"
)

type HealthStatus struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Environment string            `json:"environment"`
	Services    map[string]string `json:"services"`
}

// Healthy is false when any dependency reported an error.
func (h HealthStatus) Healthy() bool {
	return h.Status == StatusOK
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

// PingFunc probes a dependency. A nil PingFunc means the dependency is not configured.
type PingFunc func(ctx context.Context) error

type HealthDeps struct {
	Environment string
	Database    PingFunc
	Redis       PingFunc
	// EmailTransport is the transport name the dispatcher will use ("none" when skipped).
	EmailTransport    string
	EmailConfigured   bool
	StorageConfigured bool
	Timeout           time.Duration
}

type healthUsecase struct {
	deps HealthDeps
}

func NewHealthUsecase(deps HealthDeps) HealthUsecase {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	return &healthUsecase{deps: deps}
}

func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, u.deps.Timeout)
	defer cancel()

	services := map[string]string{
		"database": ping(ctx, u.deps.Database),
		"redis":    ping(ctx, u.deps.Redis),
		"email":    u.emailStatus(),
		"storage":  StatusNotConfigured,
	}
	if u.deps.StorageConfigured {
		services["storage"] = StatusOK
	}

	status := StatusOK
	for _, s := range services {
		if s == StatusError {
			status = StatusDegraded
			break
		}
	}

	return HealthStatus{
		Status:      status,
		Timestamp:   time.Now().UTC(),
		Environment: u.deps.Environment,
		Services:    services,
	}
}

func (u *healthUsecase) emailStatus() string {
	switch {
	case u.deps.EmailConfigured:
		return StatusOK
	case u.deps.EmailTransport != "" && u.deps.EmailTransport != "none":
		return StatusFallback
	default:
		return StatusNotConfigured
	}
}

func ping(ctx context.Context, fn PingFunc) string {
	if fn == nil {
		return StatusNotConfigured
	}
	if err := fn(ctx); err != nil {
		return StatusError
	}
	return StatusOK
}
