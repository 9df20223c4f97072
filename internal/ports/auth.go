package ports

// Package ports defines interfaces (hexagonal ports) for session and backend behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
)

var (
	// ErrNoToken is returned by TokenStore.Load when nothing is stored.
	ErrNoToken = errors.New("no stored token")
	// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired ids.
	ErrSessionNotFound = errors.New("session not found")
)

// LoginResponse is the payload of a successful POST /auth/login.
type LoginResponse struct {
	AccessToken string                 `json:"access_token"`
	TokenType   string                 `json:"token_type"`
	User        domainauth.UserProfile `json:"user"`
}

// IdentityAPI is the slice of the backend the session manager depends on.
type IdentityAPI interface {
	// Login exchanges credentials for a bearer token and profile.
	Login(ctx context.Context, username, password string) (LoginResponse, error)

	// Me returns the profile of the currently attached token.
	Me(ctx context.Context) (domainauth.UserProfile, error)
}

// TokenStore persists the bearer token between process starts (the browser
// cookie session in the server, a credentials file in the CLI).
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SessionStore persists server-side visitor sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.StoredSession) error
	Get(ctx context.Context, id string) (domainauth.StoredSession, error)
	Delete(ctx context.Context, id string) error
}
