// Package session is the application-level current-user store. It replaces
// ambient global mutation with two defined entry points: Set after a
// successful /auth/me fetch and Reset on logout.
package session

import (
	"sync"
	"time"

	"genhub/services/web-frontend/internal/domain/user"
)

type cached struct {
	user      *user.User
	fetchedAt time.Time
}

// Store caches the current user per browser session id.
type Store struct {
	mu   sync.RWMutex
	ttl  time.Duration
	byID map[string]cached
}

// NewStore builds a Store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{ttl: ttl, byID: make(map[string]cached)}
}

// Set records the user fetched for a session.
func (s *Store) Set(sessionID string, u *user.User) {
	if sessionID == "" || u == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[sessionID] = cached{user: u, fetchedAt: time.Now()}
}

// Get returns the cached user for a session, or nil when absent or stale.
func (s *Store) Get(sessionID string) *user.User {
	s.mu.RLock()
	entry, ok := s.byID[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Since(entry.fetchedAt) > s.ttl {
		s.Reset(sessionID)
		return nil
	}
	return entry.user
}

// Reset forgets the session's user. Called on logout.
func (s *Store) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, sessionID)
}

// SweepExpired drops stale entries and returns how many were removed.
func (s *Store) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.byID {
		if time.Since(entry.fetchedAt) > s.ttl {
			delete(s.byID, id)
			removed++
		}
	}
	return removed
}
