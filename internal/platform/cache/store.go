// Package cache holds the in-process and Redis stores behind the warehouse
// read cache.
package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var errNoLoader = errors.New("cache loader is required")

type item struct {
	value    any
	deadline time.Time
}

func (i item) live(now time.Time) bool {
	return i.deadline.IsZero() || now.Before(i.deadline)
}

// Store is an in-process TTL map. Loads for the same key that overlap share
// one loader call.
type Store struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu    sync.RWMutex
	items map[string]item
}

func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, now: time.Now, items: map[string]item{}}
}

// TTL is the lifetime used by Set and GetOrLoad.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns a live value. Expired entries are dropped on read.
func (s *Store) Get(_ context.Context, key string) (any, bool) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if it.live(s.now()) {
		return it.value, true
	}

	s.mu.Lock()
	if cur, ok := s.items[key]; ok && cur.deadline.Equal(it.deadline) {
		delete(s.items, key)
	}
	s.mu.Unlock()
	return nil, false
}

func (s *Store) Set(_ context.Context, key string, value any) {
	s.put(key, value, s.ttl)
}

// put stores value for ttl; ttl <= 0 keeps it until deleted.
func (s *Store) put(key string, value any, ttl time.Duration) {
	if key == "" {
		return
	}
	it := item{value: value}
	if ttl > 0 {
		it.deadline = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
}

// DeletePrefix removes every key under prefix and reports how many went.
func (s *Store) DeletePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
			n++
		}
	}
	return n
}

func (s *Store) Flush(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	clear(s.items)
	return n
}

func (s *Store) GetOrLoad(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	return s.GetOrLoadTTL(ctx, key, s.ttl, load)
}

// GetOrLoadTTL serves key from the map or calls load, storing the result for
// ttl. Errors are returned to every waiting caller and never stored. An
// empty key bypasses the cache.
//
// The shared load is detached from any single caller's cancellation; each
// caller stops waiting when its own ctx ends while the load carries on for
// the rest. Deadlines on the load belong to load itself.
func (s *Store) GetOrLoadTTL(ctx context.Context, key string, ttl time.Duration, load func(context.Context) (any, error)) (any, error) {
	if load == nil {
		return nil, errNoLoader
	}
	if key == "" {
		return load(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		if v, ok := s.Get(loadCtx, key); ok {
			return v, nil
		}
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		s.put(key, v, ttl)
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
