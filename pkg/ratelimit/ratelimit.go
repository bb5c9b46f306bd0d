// Package ratelimit implements a fixed-window admission counter keyed by
// caller identity, backed by Redis when available and an in-memory store otherwise.
package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prateekh777/professional-website/pkg/logger"
)

const (
	DefaultLimit  = 5
	DefaultWindow = time.Hour
)

// Decision is the result of one admission attempt.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// Count is the number of admitted requests in the current window.
	Count   int
	ResetAt time.Time
}

// RetryAfter is how long the caller should wait before the window resets.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.ResetAt.IsZero() || !d.ResetAt.After(now) {
		return 0
	}
	return d.ResetAt.Sub(now)
}

// Headers renders d as X-RateLimit-* response headers.
func (d Decision) Headers() map[string]string {
	h := map[string]string{
		"X-RateLimit-Limit":     strconv.Itoa(d.Limit),
		"X-RateLimit-Remaining": strconv.Itoa(d.Remaining),
	}
	if !d.ResetAt.IsZero() {
		h["X-RateLimit-Reset"] = strconv.FormatInt(d.ResetAt.Unix(), 10)
	}
	return h
}

// Store atomically checks and updates the window for a key.
// A rejected attempt must not change the count.
type Store interface {
	Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Decision, error)
}

type Config struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
}

// Limiter applies one Config over a primary store with an optional fallback.
type Limiter struct {
	cfg      Config
	primary  Store
	fallback Store
}

func New(cfg Config, primary, fallback Store) *Limiter {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if primary == nil {
		primary = fallback
		fallback = nil
	}
	return &Limiter{cfg: cfg, primary: primary, fallback: fallback}
}

var ErrNoStore = errors.New("ratelimit: no store configured")

// Allow records one attempt for identity. The primary store's errors are
// retried against the fallback before being returned.
func (l *Limiter) Allow(ctx context.Context, identity string, now time.Time) (Decision, error) {
	if l.primary == nil {
		return Decision{}, ErrNoStore
	}
	key := l.cfg.KeyPrefix + identity

	d, err := l.primary.Take(ctx, key, l.cfg.Limit, l.cfg.Window, now)
	if err == nil || l.fallback == nil {
		return d, err
	}

	logger.Log.Warn("Rate limit store unavailable, using fallback", "error", err)
	return l.fallback.Take(ctx, key, l.cfg.Limit, l.cfg.Window, now)
}

func (l *Limiter) Limit() int { return l.cfg.Limit }

func (l *Limiter) Window() time.Duration { return l.cfg.Window }
