// Package memory provides the in-memory expiring key-value store.
package memory

import (
	"sync"
	"time"

	"github.com/yndnr/redislite/internal/core/domain"
)

// Clock returns the current time.
type Clock func() time.Time

// Store is a concurrent map from byte-string keys to values with optional
// absolute expiration.
type Store struct {
	mu   sync.Mutex
	data map[string]domain.Value
	now  Clock
}

// Option configures the Store.
type Option func(*Store)

// WithClock replaces the wall clock used to compute and evaluate expiry.
func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.now = c
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]domain.Value),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns a copy of the value stored under key.
//
// It reports false when the key is absent or its expiration is at or before
// the current time. An expired entry is not removed.
func (s *Store) Get(key []byte) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[string(key)]
	if !ok {
		return nil, false
	}
	if v.IsExpired(s.now()) {
		return nil, false
	}

	return v.Clone().Data, true
}

type setOptions struct {
	ttl    time.Duration
	hasTTL bool
}

// SetOption configures a single Set call.
type SetOption func(*setOptions)

// WithTTL makes the entry expire ttl after the write.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) {
		o.ttl = ttl
		o.hasTTL = true
	}
}

// Set stores a copy of data under key, replacing any existing entry.
func (s *Store) Set(key, data []byte, opts ...SetOption) {
	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := domain.NewValue(data)
	if o.hasTTL {
		v.ExpiresAt = s.now().Add(o.ttl)
	}
	s.data[string(key)] = v
}

// Replace swaps the whole content of the store for entries.
// It is used once at startup to install a decoded snapshot.
func (s *Store) Replace(entries map[string]domain.Value) {
	fresh := make(map[string]domain.Value, len(entries))
	for k, v := range entries {
		fresh[k] = v.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fresh
}

// Resident returns the raw entry for key, including expired ones.
func (s *Store) Resident(key []byte) (domain.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[string(key)]
	if !ok {
		return domain.Value{}, false
	}
	return v.Clone(), true
}

// Len returns the number of resident entries, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// RemoveExpired deletes every entry expired at the current time and returns
// how many were removed. Only the opt-in Sweeper calls it.
func (s *Store) RemoveExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, v := range s.data {
		if v.IsExpired(now) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}
