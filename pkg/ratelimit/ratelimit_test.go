package ratelimit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newMemoryLimiter(t *testing.T, limit int, window time.Duration) *Limiter {
	t.Helper()
	store, err := NewMemoryStore(100)
	require.NoError(t, err)
	return New(Config{Limit: limit, Window: window, KeyPrefix: "contact:"}, store, nil)
}

func TestMemory_AdmitsUpToLimit(t *testing.T) {
	l := newMemoryLimiter(t, 5, time.Hour)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		d, err := l.Allow(ctx, "203.0.113.7", t0.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.True(t, d.Allowed, "attempt %d", i)
		assert.Equal(t, i, d.Count)
		assert.Equal(t, 5-i, d.Remaining)
	}

	d, err := l.Allow(ctx, "203.0.113.7", t0.Add(6*time.Minute))
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 5, d.Count, "rejection must not increment")
	assert.Equal(t, 0, d.Remaining)
	// window opened by the first attempt at t0+1m
	assert.Equal(t, 55*time.Minute, d.RetryAfter(t0.Add(6*time.Minute)))
}

func TestMemory_ResetsAfterWindow(t *testing.T) {
	l := newMemoryLimiter(t, 5, time.Hour)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := l.Allow(ctx, "ip", t0)
		require.NoError(t, err)
	}

	// exactly one window later is still inside it
	d, err := l.Allow(ctx, "ip", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	d, err = l.Allow(ctx, "ip", t0.Add(time.Hour+time.Second))
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Count)
	assert.Equal(t, t0.Add(2*time.Hour+time.Second), d.ResetAt)
}

func TestMemory_IdentitiesAreIndependent(t *testing.T) {
	l := newMemoryLimiter(t, 1, time.Hour)
	ctx := context.Background()

	d, _ := l.Allow(ctx, "a", t0)
	assert.True(t, d.Allowed)
	d, _ = l.Allow(ctx, "a", t0)
	assert.False(t, d.Allowed)
	d, _ = l.Allow(ctx, "b", t0)
	assert.True(t, d.Allowed)
}

func TestMemory_ConcurrentAttemptsNeverExceedLimit(t *testing.T) {
	l := newMemoryLimiter(t, 5, time.Hour)
	ctx := context.Background()

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := l.Allow(ctx, "burst", t0)
			if err == nil && d.Allowed {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), admitted.Load())
}

func TestMemory_BoundedKeys(t *testing.T) {
	store, err := NewMemoryStore(3)
	require.NoError(t, err)

	for _, k := range []string{"a", "b", "c", "d", "e"} {
		_, err := store.Take(context.Background(), k, 5, time.Hour, t0)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.Len())
}

func TestMemory_HitKeepsIdentityResident(t *testing.T) {
	store, err := NewMemoryStore(2)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Take(ctx, "a", 5, time.Hour, t0)
	require.NoError(t, err)
	_, err = store.Take(ctx, "b", 5, time.Hour, t0)
	require.NoError(t, err)
	// touching a makes b the eviction candidate
	_, err = store.Take(ctx, "a", 5, time.Hour, t0)
	require.NoError(t, err)
	_, err = store.Take(ctx, "c", 5, time.Hour, t0)
	require.NoError(t, err)

	d, err := store.Take(ctx, "a", 5, time.Hour, t0)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Count, "a kept its window")

	d, err = store.Take(ctx, "b", 5, time.Hour, t0)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Count, "b was evicted and starts over")
}

func TestNew_Defaults(t *testing.T) {
	store, _ := NewMemoryStore(0)
	l := New(Config{}, store, nil)
	assert.Equal(t, DefaultLimit, l.Limit())
	assert.Equal(t, DefaultWindow, l.Window())
}

func TestAllow_NoStore(t *testing.T) {
	_, err := New(Config{}, nil, nil).Allow(context.Background(), "x", t0)
	assert.ErrorIs(t, err, ErrNoStore)
}

type failingStore struct{}

func (failingStore) Take(context.Context, string, int, time.Duration, time.Time) (Decision, error) {
	return Decision{}, errors.New("connection refused")
}

func TestAllow_FallsBackWhenPrimaryFails(t *testing.T) {
	mem, _ := NewMemoryStore(10)
	l := New(Config{Limit: 2, Window: time.Hour}, failingStore{}, mem)

	d, err := l.Allow(context.Background(), "ip", t0)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Count)
}

func newRedisLimiter(t *testing.T, limit int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(Config{Limit: limit, Window: window, KeyPrefix: "contact:"}, NewRedisStore(client), nil), mr
}

func TestRedis_AdmitsUpToLimit(t *testing.T) {
	l, mr := newRedisLimiter(t, 5, time.Hour)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		d, err := l.Allow(ctx, "203.0.113.7", t0)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, i, d.Count)
	}

	d, err := l.Allow(ctx, "203.0.113.7", t0)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 5, d.Count)

	got, err := mr.Get("contact:203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "5", got)
	assert.Equal(t, time.Hour, mr.TTL("contact:203.0.113.7"))
}

func TestRedis_ResetsAfterWindow(t *testing.T) {
	l, mr := newRedisLimiter(t, 2, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.Allow(ctx, "ip", t0)
		require.NoError(t, err)
	}

	mr.FastForward(time.Hour + time.Second)

	d, err := l.Allow(ctx, "ip", t0.Add(time.Hour+time.Second))
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Count)
}

func TestRedis_FallbackOnOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mem, _ := NewMemoryStore(10)
	l := New(Config{Limit: 1, Window: time.Hour}, NewRedisStore(client), mem)

	mr.Close()

	d, err := l.Allow(context.Background(), "ip", t0)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, mem.Len())
}

func TestDecision_Headers(t *testing.T) {
	d := Decision{Limit: 5, Remaining: 2, ResetAt: t0.Add(time.Hour)}
	h := d.Headers()

	assert.Equal(t, "5", h["X-RateLimit-Limit"])
	assert.Equal(t, "2", h["X-RateLimit-Remaining"])
	assert.Equal(t, "1740834000", h["X-RateLimit-Reset"])

	_, ok := Decision{Limit: 5}.Headers()["X-RateLimit-Reset"]
	assert.False(t, ok)
}
