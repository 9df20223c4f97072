package redis

// Package redis provides Redis-based adapters for visitor sessions.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
)

// DefaultKeyPrefix namespaces session keys.
const DefaultKeyPrefix = "session:"

// ErrNotFound is returned when a session is not found or has expired.
var ErrNotFound = ports.ErrSessionNotFound

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps visitor sessions (session id to bearer token) in Redis.
// Key TTL follows StoredSession.ExpiresAt so the backend token and the
// server-side record expire together.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// SessionStoreOptions configures a SessionStore.
type SessionStoreOptions struct {
	Prefix string
	Now    func() time.Time
}

// NewSessionStore creates a Redis session store with the default key prefix.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithOptions(client, SessionStoreOptions{})
}

// NewSessionStoreWithOptions creates a Redis session store.
func NewSessionStoreWithOptions(client redis.UniversalClient, opts SessionStoreOptions) *SessionStore {
	if opts.Prefix == "" {
		opts.Prefix = DefaultKeyPrefix
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SessionStore{client: client, prefix: opts.Prefix, now: opts.Now}
}

func (s *SessionStore) key(id string) string { return s.prefix + id }

// Save stores sess until its ExpiresAt. Already expired sessions are rejected.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.StoredSession) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get loads a session, returning ErrNotFound for unknown or expired ids.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.StoredSession, error) {
	if id == "" {
		return domainauth.StoredSession{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domainauth.StoredSession{}, ErrNotFound
	}
	if err != nil {
		return domainauth.StoredSession{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.StoredSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.StoredSession{}, fmt.Errorf("unmarshal session: %w", err)
	}

	if sess.Expired(s.now()) {
		if err := s.Delete(ctx, id); err != nil {
			return domainauth.StoredSession{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return domainauth.StoredSession{}, ErrNotFound
	}
	return sess, nil
}

// Delete removes a session. Unknown ids are not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
