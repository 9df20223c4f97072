// Package memory provides in-process adapters for single-node and development deployments.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps visitor sessions in a map. Sessions are lost on restart.
// Expired records are dropped lazily on Get and in bulk by Sweep.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.StoredSession
	now      func() time.Time
}

// SessionStoreOptions configures a SessionStore.
type SessionStoreOptions struct {
	Now func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SessionStore{
		sessions: make(map[string]domainauth.StoredSession),
		now:      opts.Now,
	}
}

// Save stores or replaces sess.
func (s *SessionStore) Save(_ context.Context, sess domainauth.StoredSession) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if sess.Expired(s.now()) {
		return errors.New("session is expired")
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return nil
}

// Get returns ports.ErrSessionNotFound for unknown or expired ids.
func (s *SessionStore) Get(_ context.Context, id string) (domainauth.StoredSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domainauth.StoredSession{}, ports.ErrSessionNotFound
	}
	if sess.Expired(s.now()) {
		s.mu.Lock()
		if cur, ok := s.sessions[id]; ok && cur.Expired(s.now()) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return domainauth.StoredSession{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session. Unknown ids are not an error.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Sweep drops every expired session and returns how many were removed.
func (s *SessionStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
