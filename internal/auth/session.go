// Package auth maintains the FMC session: one set of access/refresh tokens
// plus the domain identifier, renewed before expiry and revoked on logout.
package auth

import (
	"sync"
	"time"
)

// Session holds the credentials issued by a successful login or refresh.
// A session is either absent (nil) or active; it is owned by the Manager
// and replaced wholesale on every transition.
type Session struct {
	AccessToken  string
	RefreshToken string
	DomainUUID   string
	ExpiresAt    time.Time
}

// Active reports whether the session carries a usable token.
func (s *Session) Active() bool {
	if s == nil || s.AccessToken == "" {
		return false
	}

	return time.Now().Before(s.ExpiresAt)
}

// ExpiringSoon reports whether the session expires within margin.
func (s *Session) ExpiringSoon(margin time.Duration) bool {
	if s == nil {
		return true
	}

	return !time.Now().Add(margin).Before(s.ExpiresAt)
}

// SessionStore provides thread-safe session storage.
type SessionStore struct {
	mu      sync.RWMutex
	session *Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Get returns the current session, or nil when absent.
func (s *SessionStore) Get() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session
}

// Set stores a session.
func (s *SessionStore) Set(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
}

// Clear removes the current session.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
}
