// Package cache implements the keyed resource cache backing list reads.
// Each entry maps a query identity to its last-fetched result; consumers
// never write entries directly, they only invalidate, which forces the next
// read to re-fetch.
package cache

import (
	"sync"
	"time"
)

// Loader fetches the value for a cache key from the backing store.
type Loader func() (interface{}, error)

type entry struct {
	mu       sync.Mutex
	value    interface{}
	err      error
	loadedAt time.Time
	valid    bool
}

// Store is a keyed, invalidatable resource cache. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func (s *Store) entryFor(key string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	return e
}

// GetOrLoad returns the cached value for key, calling loader when the entry
// is missing or has been invalidated. Concurrent readers of the same key
// serialize on the entry so the loader runs at most once per refresh. Load
// failures are returned to the caller but never cached: the next read
// re-fetches.
func (s *Store) GetOrLoad(key string, loader Loader) (interface{}, error) {
	e := s.entryFor(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.valid {
		return e.value, nil
	}
	value, err := loader()
	if err != nil {
		e.err = err
		return nil, err
	}
	e.value = value
	e.err = nil
	e.loadedAt = time.Now()
	e.valid = true
	return value, nil
}

// Peek returns the last known value and whether the entry is still fresh,
// without loading. The error is the last load failure, if any.
func (s *Store) Peek(key string) (interface{}, bool, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value, e.valid, e.err
}

// Invalidate marks a cache entry stale, forcing the next read to re-fetch.
// Invalidating a missing key is a no-op, so redundant invalidations from a
// local mutation and a realtime notification commute.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	e, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Lock()
	e.valid = false
	e.mu.Unlock()
}

// InvalidateAll marks every entry stale.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.Unlock()
	for _, e := range entries {
		e.mu.Lock()
		e.valid = false
		e.mu.Unlock()
	}
}

// Keys returns the known cache keys, for diagnostics.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}
