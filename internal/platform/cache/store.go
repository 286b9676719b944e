package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var errNilLoader = errors.New("cache: nil loader")

type item struct {
	value    any
	deadline time.Time // zero never expires
}

func (it item) expired(now time.Time) bool {
	return !it.deadline.IsZero() && !now.Before(it.deadline)
}

// Store keeps repository reads in process memory. Every delete bumps
// the store epoch, so a load that started before an invalidation never
// repopulates the key it raced with.
type Store struct {
	mu    sync.RWMutex
	items map[string]item
	epoch uint64

	ttl   time.Duration
	loads singleflight.Group
	now   func() time.Time
}

// NewStore returns an empty store. ttl <= 0 disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		items: make(map[string]item),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	n := len(s.items)
	s.mu.RUnlock()
	return n
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if it.expired(s.now()) {
		s.evict(key, it.deadline)
		return nil, false
	}
	return it.value, true
}

// evict drops key unless another writer replaced it in the meantime.
func (s *Store) evict(key string, deadline time.Time) {
	s.mu.Lock()
	if cur, ok := s.items[key]; ok && cur.deadline.Equal(deadline) {
		delete(s.items, key)
	}
	s.mu.Unlock()
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	s.mu.Lock()
	s.items[key] = s.newItem(value)
	s.mu.Unlock()
}

func (s *Store) newItem(value any) item {
	it := item{value: value}
	if s.ttl > 0 {
		it.deadline = s.now().Add(s.ttl)
	}
	return it
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.epoch++
	s.mu.Unlock()
}

// DeletePrefix drops every key under prefix. An empty prefix clears the store.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	s.mu.Lock()
	if prefix == "" {
		clear(s.items)
	} else {
		for key := range s.items {
			if strings.HasPrefix(key, prefix) {
				delete(s.items, key)
			}
		}
	}
	s.epoch++
	s.mu.Unlock()
}

// GetOrLoad serves key from memory or calls load, sharing one call between
// concurrent misses. Errors are returned to every waiter and never stored.
// An empty key bypasses the store.
func (s *Store) GetOrLoad(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if load == nil {
		return nil, errNilLoader
	}
	if key == "" {
		return load(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	// Callers that arrive after an invalidation start a fresh load instead of
	// joining one that may have read stale rows.
	flightKey := strconv.FormatUint(epoch, 10) + "|" + key
	v, err, _ := s.loads.Do(flightKey, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.epoch == epoch {
			s.items[key] = s.newItem(loaded)
		}
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
