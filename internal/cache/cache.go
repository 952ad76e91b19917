// Package cache provides an in-memory key/value store with TTL semantics.
//
// # Usage
//
//	store := cache.NewStore()
//	val, err := cache.Remember(store, key, time.Hour, producer)
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// Store is the narrow cache interface consumed by API clients.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

type entry struct {
	value     any
	expiresAt time.Time
}

// MemoryStore is a map-backed Store safe for concurrent use.
// Expired entries are dropped lazily on Get and in bulk by Prune.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *MemoryStore) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

// Prune removes all expired entries and returns how many were dropped.
func (s *MemoryStore) Prune() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of entries currently held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Remember returns the cached value for key if present, otherwise invokes
// producer, stores its result for ttl and returns it. Producer failures
// propagate uncached so a failed lookup is never served as a false negative.
//
// Concurrent callers missing on the same key may each invoke producer; the
// last write wins. That duplicate work is accepted in exchange for never
// blocking readers on a slow producer.
func Remember(s Store, key string, ttl time.Duration, producer func() (any, error)) (any, error) {
	if value, ok := s.Get(key); ok {
		return value, nil
	}

	value, err := producer()
	if err != nil {
		return nil, err
	}

	s.Set(key, value, ttl)
	return value, nil
}

// Fingerprint derives a deterministic cache key from semantic inputs.
// Identical logical queries collide regardless of call-site formatting.
func Fingerprint(prefix string, parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return prefix + ":" + hex.EncodeToString(h[:])
}
