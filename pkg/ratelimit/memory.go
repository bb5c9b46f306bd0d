package ratelimit

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMaxKeys = 10000

type window struct {
	mu    sync.Mutex
	start time.Time
	count int
}

// MemoryStore keeps windows in a bounded LRU so unique callers cannot grow it without limit.
// Evicting a key forgets its window, which only ever admits more.
type MemoryStore struct {
	entries *lru.Cache[string, *window]
}

func NewMemoryStore(maxKeys int) (*MemoryStore, error) {
	if maxKeys <= 0 {
		maxKeys = defaultMaxKeys
	}
	cache, err := lru.New[string, *window](maxKeys)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{entries: cache}, nil
}

func (s *MemoryStore) Take(_ context.Context, key string, limit int, win time.Duration, now time.Time) (Decision, error) {
	w, ok := s.entries.Get(key)
	if !ok {
		// A racing caller may have added the key since the miss; keep theirs.
		// Eviction between here and the lock below can hand a caller a fresh
		// window for a known identity, which only ever admits more.
		fresh := &window{}
		if prev, found, _ := s.entries.PeekOrAdd(key, fresh); found {
			w = prev
		} else {
			w = fresh
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.count == 0 || now.Sub(w.start) > win {
		w.start = now
		w.count = 1
		return decision(true, limit, w.count, w.start.Add(win)), nil
	}

	if w.count < limit {
		w.count++
		return decision(true, limit, w.count, w.start.Add(win)), nil
	}

	return decision(false, limit, w.count, w.start.Add(win)), nil
}

// Len is the number of tracked identities.
func (s *MemoryStore) Len() int {
	return s.entries.Len()
}

func decision(allowed bool, limit, count int, resetAt time.Time) Decision {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		Count:     count,
		ResetAt:   resetAt,
	}
}
