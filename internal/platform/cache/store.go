package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process read-through cache with a fixed TTL. Concurrent
// misses for one key share a single load. Purge drops every entry and
// discards the result of any load that started before it.
type Store[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	generation uint64
	ttl        time.Duration
	now        func() time.Time
	flight     singleflight.Group
}

// NewStore returns a store whose entries live for ttl. A ttl <= 0 keeps
// entries until the next Purge.
func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[V]) Peek(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, _, ok := s.lookupLocked(key)
	return v, ok
}

func (s *Store[V]) lookupLocked(key string) (V, uint64, bool) {
	var zero V
	e, ok := s.entries[key]
	if !ok {
		return zero, s.generation, false
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		delete(s.entries, key)
		return zero, s.generation, false
	}
	return e.value, s.generation, true
}

// Load returns the cached value for key, calling loader on a miss.
// Loader errors are returned to every waiter and never cached.
func (s *Store[V]) Load(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}

	s.mu.Lock()
	value, generation, ok := s.lookupLocked(key)
	s.mu.Unlock()
	if ok {
		return value, nil
	}

	flightKey := strconv.FormatUint(generation, 10) + "/" + key
	v, err, _ := s.flight.Do(flightKey, func() (any, error) {
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.store(key, generation, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(V), nil
}

func (s *Store[V]) store(key string, generation uint64, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return
	}
	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}
	s.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
}

func (s *Store[V]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	clear(s.entries)
}

func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
