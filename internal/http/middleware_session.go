package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

// DefaultSessionTTL bounds how long a stored visitor token is kept.
const DefaultSessionTTL = 24 * time.Hour

// SessionMiddlewareOptions groups dependencies for Sessions.
type SessionMiddlewareOptions struct {
	Store      ports.SessionStore         // Required
	Workspaces *service.WorkspaceFactory  // Required
	Cookies    *securecookie.SecureCookie // Required
	TTL        time.Duration
	// CookieDomain is optional; empty keeps the cookie host-only.
	CookieDomain string
	Logger       *slog.Logger
	Now          func() time.Time
}

// Sessions opens a Workspace for every request. The signed session_id cookie
// points at a server-side record holding the backend token; the workspace
// resolves it (validating against /auth/me) before the handler runs.
func Sessions(opts SessionMiddlewareOptions) func(http.Handler) http.Handler {
	if opts.Store == nil || opts.Workspaces == nil || opts.Cookies == nil {
		panic("session middleware requires Store, Workspaces and Cookies")
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultSessionTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokens := &visitorTokens{
				opts: &opts,
				w:    w,
				r:    r,
				id:   decodeSessionID(opts.Cookies, r, opts.Logger),
			}
			ws := opts.Workspaces.Open(tokens)
			ws.Session.Resolve(r.Context())
			next.ServeHTTP(w, r.WithContext(service.NewContext(r.Context(), ws)))
		})
	}
}

func decodeSessionID(codec *securecookie.SecureCookie, r *http.Request, logger *slog.Logger) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	var id string
	if err := codec.Decode(SessionCookieName, c.Value, &id); err != nil {
		// Rotated keys or a tampered cookie; the visitor signs in again.
		logger.Debug("discarding undecodable session cookie", "error", err)
		return ""
	}
	return id
}

// visitorTokens adapts one browser session to ports.TokenStore. Saving a
// token always issues a fresh session id so a pre-login id is never reused.
type visitorTokens struct {
	opts *SessionMiddlewareOptions
	w    http.ResponseWriter
	r    *http.Request
	id   string
}

func (t *visitorTokens) Load(ctx context.Context) (string, error) {
	if t.id == "" {
		return "", ports.ErrNoToken
	}
	stored, err := t.opts.Store.Get(ctx, t.id)
	if errors.Is(err, ports.ErrSessionNotFound) {
		return "", ports.ErrNoToken
	}
	if err != nil {
		return "", err
	}
	if stored.Expired(t.opts.Now()) || strings.TrimSpace(stored.Token) == "" {
		return "", ports.ErrNoToken
	}
	return stored.Token, nil
}

func (t *visitorTokens) Save(ctx context.Context, token string) error {
	if t.id != "" {
		if err := t.opts.Store.Delete(ctx, t.id); err != nil {
			t.opts.Logger.WarnContext(ctx, "dropping previous session failed", "error", err)
		}
	}
	id := uuid.NewString()
	err := t.opts.Store.Save(ctx, domainauth.StoredSession{
		ID:        id,
		Token:     token,
		ExpiresAt: t.opts.Now().Add(t.opts.TTL),
	})
	if err != nil {
		return err
	}
	encoded, err := t.opts.Cookies.Encode(SessionCookieName, id)
	if err != nil {
		return err
	}
	t.id = id
	http.SetCookie(t.w, t.cookie(encoded, int(t.opts.TTL/time.Second)))
	return nil
}

func (t *visitorTokens) Clear(ctx context.Context) error {
	var err error
	if t.id != "" {
		err = t.opts.Store.Delete(ctx, t.id)
		t.id = ""
	}
	http.SetCookie(t.w, t.cookie("", -1))
	return err
}

func (t *visitorTokens) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   t.opts.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(t.r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
