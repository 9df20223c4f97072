package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	apperrors "github.com/mcsa-hvr/circuit1021/internal/errors"
	"github.com/mcsa-hvr/circuit1021/internal/observability/metrics"
	"github.com/mcsa-hvr/circuit1021/internal/observability/statsd"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
)

// Transition triggers, used in logs and the session.transition metric.
const (
	triggerResolve = "resolve"
	triggerLogin   = "login"
	triggerLogout  = "logout"
)

// SessionObservability groups the optional logging and metrics sinks.
type SessionObservability struct {
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	API         ports.IdentityAPI // Required
	Tokens      ports.TokenStore  // Required
	Credentials *Credentials      // Required; shared with the API client
	Obs         SessionObservability
}

// SessionManager owns the authentication lifecycle of one visitor (browser
// session) or one process (CLI). It starts in StateResolving, and every
// mutation goes through its methods; readers get snapshots.
type SessionManager struct {
	api     ports.IdentityAPI
	tokens  ports.TokenStore
	creds   *Credentials
	logger  *slog.Logger
	metrics statsd.Sink

	// op serializes Resolve, Login and Logout; mu guards the fields below.
	op      sync.Mutex
	mu      sync.RWMutex
	token   string
	user    *domainauth.UserProfile
	loading bool
}

// NewSessionManager constructs a SessionManager in StateResolving.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	if opts.API == nil {
		panic("API is required")
	}
	if opts.Tokens == nil {
		panic("Tokens is required")
	}
	if opts.Credentials == nil {
		panic("Credentials is required")
	}
	logger := opts.Obs.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		api:     opts.API,
		tokens:  opts.Tokens,
		creds:   opts.Credentials,
		logger:  logger.With("component", "session_manager"),
		metrics: opts.Obs.Metrics,
		loading: true,
	}
}

// Snapshot returns a consistent copy of the session.
func (m *SessionManager) Snapshot() domainauth.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := domainauth.Session{Token: m.token, Loading: m.loading}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	return s
}

// State returns the current lifecycle state.
func (m *SessionManager) State() domainauth.State { return m.Snapshot().State() }

// User returns a copy of the profile, or nil when not authenticated.
func (m *SessionManager) User() *domainauth.UserProfile { return m.Snapshot().User }

// Loading reports whether the initial resolution is in progress.
func (m *SessionManager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Authenticated reports whether a token and profile are held.
func (m *SessionManager) Authenticated() bool {
	return m.State() == domainauth.StateAuthenticated
}

func (m *SessionManager) set(token string, user *domainauth.UserProfile) {
	m.mu.Lock()
	m.token = token
	m.user = user
	m.loading = false
	m.mu.Unlock()
}

func (m *SessionManager) setLoading() {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()
}

// Resolve checks the stored token against GET /auth/me.
//
// With no stored token the session becomes anonymous without a network call.
// When the identity check fails the stored token is cleared and the
// credentials detached. A check abandoned because ctx ended only detaches the
// credentials; the stored token is kept for the next attempt.
func (m *SessionManager) Resolve(ctx context.Context) domainauth.Session {
	m.op.Lock()
	defer m.op.Unlock()

	from := m.State()
	m.setLoading()

	token, err := m.tokens.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNoToken) {
			m.logger.WarnContext(ctx, "load stored token", "error", err)
		}
		m.creds.Clear()
		m.set("", nil)
		m.transition(ctx, from, triggerResolve, metrics.ResultNoop, nil)
		return m.Snapshot()
	}

	m.creds.Set(token)
	user, err := m.api.Me(ctx)
	if err != nil {
		m.creds.Clear()
		m.set("", nil)
		if ctx.Err() == nil {
			if clearErr := m.tokens.Clear(ctx); clearErr != nil {
				m.logger.WarnContext(ctx, "clear rejected token", "error", clearErr)
			}
		}
		m.transition(ctx, from, triggerResolve, metrics.ResultError, err)
		return m.Snapshot()
	}

	m.set(token, &user)
	m.transition(ctx, from, triggerResolve, metrics.ResultSuccess, nil)
	return m.Snapshot()
}

// Login exchanges credentials for a token. On success the token is stored
// and attached and the profile recorded. On failure the session is left as
// it was and the result carries the backend detail, or "Login failed".
func (m *SessionManager) Login(ctx context.Context, username, password string) domainauth.LoginResult {
	m.op.Lock()
	defer m.op.Unlock()

	from := m.State()
	resp, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.transition(ctx, from, triggerLogin, metrics.ResultError, err)
		return domainauth.LoginFailed(apperrors.UpstreamDetail(err))
	}

	if err := m.tokens.Save(ctx, resp.AccessToken); err != nil {
		m.logger.ErrorContext(ctx, "store token after login", "error", err)
		m.transition(ctx, from, triggerLogin, metrics.ResultError, err)
		return domainauth.LoginFailed("")
	}

	user := resp.User
	m.creds.Set(resp.AccessToken)
	m.set(resp.AccessToken, &user)
	m.transition(ctx, from, triggerLogin, metrics.ResultSuccess, nil)
	return domainauth.LoginResult{Success: true}
}

// Logout clears the stored token, detaches the credentials and drops the
// profile. It makes no network call. The session is anonymous afterwards even
// when clearing the store fails; that error is returned.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.op.Lock()
	defer m.op.Unlock()

	from := m.State()
	err := m.tokens.Clear(ctx)
	m.creds.Clear()
	m.set("", nil)

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	m.transition(ctx, from, triggerLogout, result, err)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear stored token")
	}
	return nil
}

func (m *SessionManager) transition(ctx context.Context, from domainauth.State, trigger, result string, err error) {
	to := m.State()
	attrs := []any{"from", from.String(), "to", to.String(), "trigger", trigger, "result", result}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	m.logger.DebugContext(ctx, "session transition", attrs...)
	metrics.EmitSessionTransition(m.metrics, metrics.SessionMetric{
		From:    from.String(),
		To:      to.String(),
		Trigger: trigger,
		Result:  result,
		Err:     err,
	})
}
