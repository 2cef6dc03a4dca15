// Package sessions provides an in-memory TTL store for admin session tokens.
// The process owns all non-durable dispatch state, so tokens live in memory
// too; expired entries are purged lazily on access and periodically by the
// session sweep job.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds issued admin tokens with their expiry.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
	now     func() time.Time
}

// NewStore creates a token store issuing tokens valid for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Issue creates and registers a fresh token.
func (s *Store) Issue() string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = s.now().Add(s.ttl)
	return token
}

// Valid reports whether the token exists and has not expired.
// Expired tokens are removed on lookup.
func (s *Store) Valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.entries[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.entries, token)
		return false
	}
	return true
}

// Revoke removes a token regardless of its expiry.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
}

// Sweep removes all expired tokens and returns how many were purged.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for token, expiry := range s.entries {
		if now.After(expiry) {
			delete(s.entries, token)
			purged++
		}
	}
	return purged
}
