package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is an in-memory request-result cache with lazy expiry.
// It is safe for concurrent use by multiple goroutines.
//
// Entries are never actively evicted: staleness is detected on lookup and a
// stale entry stays in place until the next Put overwrites it. The whole
// cache lives and dies with the owning tool instance.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]entry
	expiry  time.Duration
	group   singleflight.Group
}

type entry struct {
	result   any
	storedAt time.Time
}

var ErrInvalidExpiry = errors.New("cache: expiry must be positive")

// FetchFunc is the external collaborator invoked on a cache miss. Its
// errors pass through to the caller and are never cached.
type FetchFunc func(ctx context.Context, req Request) (any, error)

// New creates an empty store with the given freshness window.
func New(expiry time.Duration) (*Store, error) {
	if expiry <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidExpiry, expiry)
	}
	return &Store{entries: make(map[Key]entry), expiry: expiry}, nil
}

// Get returns the result stored under key iff an entry exists and is still
// fresh at now. A stale entry reports a miss but is not deleted.
func (s *Store) Get(key Key, now time.Time) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || now.Sub(e.storedAt) >= s.expiry {
		return nil, false
	}
	return e.result, true
}

// Put stores result under key with storedAt = now, overwriting any
// previous entry for that key.
func (s *Store) Put(key Key, result any, now time.Time) {
	s.mu.Lock()
	s.entries[key] = entry{result: result, storedAt: now}
	s.mu.Unlock()
}

// Len reports the number of entries, fresh or stale.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Expiry returns the configured freshness window.
func (s *Store) Expiry() time.Duration { return s.expiry }

// FetchOrGet canonicalizes req and returns the cached result when fresh;
// otherwise it invokes fetch, stores the outcome and returns it. Concurrent
// callers with the same canonical key share a single in-flight fetch, so
// identical requests hit upstream at most once per window.
func (s *Store) FetchOrGet(ctx context.Context, req Request, now time.Time, fetch FetchFunc) (any, error) {
	key, err := Canonicalize(req)
	if err != nil {
		return nil, err
	}
	if v, ok := s.Get(key, now); ok {
		return v, nil
	}
	v, err, _ := s.group.Do(string(key), func() (any, error) {
		// A concurrent fetch may have completed while we queued.
		if v, ok := s.Get(key, now); ok {
			return v, nil
		}
		res, fetchErr := fetch(ctx, req)
		if fetchErr != nil {
			return nil, fetchErr
		}
		s.Put(key, res, now)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
