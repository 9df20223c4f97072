package auth

// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"net/http"
	"sync"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	apperrors "github.com/mcsa-hvr/circuit1021/internal/errors"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityAPI  = (*FakeIdentityAPI)(nil)
	_ ports.TokenStore   = (*MemoryTokenStore)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
)

// FakeIdentityAPI simulates the backend identity endpoints with deterministic defaults.
// Calls are counted so tests can assert that no network call happened.
type FakeIdentityAPI struct {
	LoginFunc func(ctx context.Context, username, password string) (ports.LoginResponse, error)
	MeFunc    func(ctx context.Context) (domainauth.UserProfile, error)

	// Deterministic values for the default behavior.
	Token       string
	Password    string
	DefaultUser domainauth.UserProfile

	mu         sync.Mutex
	loginCalls int
	meCalls    int
}

// NewFakeIdentityAPI creates a FakeIdentityAPI accepting password "good".
func NewFakeIdentityAPI() *FakeIdentityAPI {
	return &FakeIdentityAPI{
		Token:    "token-1",
		Password: "good",
		DefaultUser: domainauth.UserProfile{
			ID:       "user-1",
			Username: "steward",
			FullName: "Circuit Steward",
			Role:     domainauth.RoleCircuitSteward,
		},
	}
}

func (f *FakeIdentityAPI) Login(ctx context.Context, username, password string) (ports.LoginResponse, error) {
	f.mu.Lock()
	f.loginCalls++
	f.mu.Unlock()
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, username, password)
	}
	if password != f.Password {
		return ports.LoginResponse{}, ErrInvalidCredentials
	}
	return ports.LoginResponse{AccessToken: f.Token, TokenType: "bearer", User: f.DefaultUser}, nil
}

func (f *FakeIdentityAPI) Me(ctx context.Context) (domainauth.UserProfile, error) {
	f.mu.Lock()
	f.meCalls++
	f.mu.Unlock()
	if f.MeFunc != nil {
		return f.MeFunc(ctx)
	}
	return f.DefaultUser, nil
}

// Calls returns the number of Login and Me calls seen so far.
func (f *FakeIdentityAPI) Calls() (login, me int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls, f.meCalls
}

// MemoryTokenStore keeps a single token in memory.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string

	// SaveErr, when set, is returned by Save.
	SaveErr error
}

// NewMemoryTokenStore returns a store preloaded with token (may be empty).
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ports.ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryTokenStore) Save(_ context.Context, token string) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Token returns the stored token without the ErrNoToken convention.
func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.StoredSession
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.StoredSession),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.StoredSession) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.StoredSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if id == "" || !ok {
		return domainauth.StoredSession{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound is returned by mocks when an entity is not present.
var ErrNotFound = ports.ErrSessionNotFound

// ErrInvalidCredentials is returned by FakeIdentityAPI for a wrong password,
// shaped like the backend's 401 response.
var ErrInvalidCredentials error = apperrors.FromStatus(http.StatusUnauthorized, "Invalid credentials")
