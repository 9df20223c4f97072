package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"

	"github.com/mcsa-hvr/circuit1021/internal/adapters/circuitapi"
	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	apimocks "github.com/mcsa-hvr/circuit1021/internal/mocks"
	mocks "github.com/mcsa-hvr/circuit1021/internal/mocks/auth"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
	"github.com/mcsa-hvr/circuit1021/internal/service"
	"github.com/mcsa-hvr/circuit1021/internal/testutil/fakeapi"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// requireTemplateRenderer parses the real templates from the repository.
func requireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     quietLogger(),
	})
	require.NoError(t, err)
	return tr
}

func newTestUIHandlers(t *testing.T) *UIHandlers {
	t.Helper()
	return &UIHandlers{T: requireTemplateRenderer(t), Logger: quietLogger()}
}

var testUser = domainauth.UserProfile{
	ID:       "user-1",
	Username: "steward",
	FullName: "Circuit Steward",
	Role:     domainauth.RoleCircuitSteward,
}

// mockWorkspace returns a workspace over a gomock API. When signedIn is true
// the session is resolved against a stubbed /auth/me first.
func mockWorkspace(t *testing.T, signedIn bool) (*service.Workspace, *apimocks.MockCircuitAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := apimocks.NewMockCircuitAPI(ctrl)
	factory := service.NewWorkspaceFactory(service.WorkspaceFactoryOptions{
		NewAPI: func(oauth2.TokenSource) ports.CircuitAPI { return api },
		Obs:    service.SessionObservability{Logger: quietLogger()},
	})

	token := ""
	if signedIn {
		token = "token-1"
		api.EXPECT().Me(gomock.Any()).Return(testUser, nil)
	}
	ws := factory.Open(mocks.NewMemoryTokenStore(token))
	ws.Session.Resolve(context.Background())
	return ws, api
}

// withWorkspace attaches ws to the request the way Sessions does.
func withWorkspace(r *http.Request, ws *service.Workspace) *http.Request {
	return r.WithContext(service.NewContext(r.Context(), ws))
}

func htmxRequest(r *http.Request, target string) *http.Request {
	r.Header.Set("Hx-Request", "true")
	if target != "" {
		r.Header.Set("Hx-Target", target)
	}
	return r
}

func formRequest(method, target string, form url.Values) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// testApp is the full router over a fake backend, driven by a cookie-keeping client.
type testApp struct {
	Backend  *fakeapi.Server
	Sessions *mocks.MemorySessionStore
	Server   *httptest.Server
	Client   *http.Client
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	backend := fakeapi.New(t)
	base, err := circuitapi.New(circuitapi.Config{BaseURL: backend.BaseURL(), Logger: quietLogger()})
	require.NoError(t, err)

	sessions := mocks.NewMemorySessionStore()
	router, err := NewRouter(RouterServices{
		Sessions: sessions,
		Workspaces: service.NewWorkspaceFactory(service.WorkspaceFactoryOptions{
			NewAPI: func(src oauth2.TokenSource) ports.CircuitAPI { return base.WithCredentials(src) },
			Obs:    service.SessionObservability{Logger: quietLogger()},
		}),
		Cookies:    securecookie.New(securecookie.GenerateRandomKey(32), nil),
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     quietLogger(),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testApp{Backend: backend, Sessions: sessions, Server: srv, Client: client}
}

func (a *testApp) csrfToken(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(a.Server.URL)
	require.NoError(t, err)
	for _, c := range a.Client.Jar.Cookies(u) {
		if c.Name == CSRFCookieName {
			return c.Value
		}
	}
	return ""
}

type appRequest struct {
	Method string
	Path   string
	Form   url.Values
	HTMX   bool
	Target string
	// NoCSRF leaves the token out of the form.
	NoCSRF bool
}

// do sends req and returns the response with its body read.
func (a *testApp) do(t *testing.T, req appRequest) (*http.Response, string) {
	t.Helper()
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	var body io.Reader
	if req.Form != nil {
		if !req.NoCSRF {
			req.Form.Set(CSRFFormField, a.csrfToken(t))
		}
		body = strings.NewReader(req.Form.Encode())
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r, err := http.NewRequestWithContext(ctx, req.Method, a.Server.URL+req.Path, body)
	require.NoError(t, err)
	r.Header.Set("Accept", "text/html")
	if req.Form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if req.HTMX {
		r.Header.Set("Hx-Request", "true")
		if req.Target != "" {
			r.Header.Set("Hx-Target", req.Target)
		}
	}
	resp, err := a.Client.Do(r)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

// signIn loads the login page for a CSRF cookie and posts the admin credentials.
func (a *testApp) signIn(t *testing.T) {
	t.Helper()
	a.do(t, appRequest{Path: "/login"})
	resp, _ := a.do(t, appRequest{
		Method: http.MethodPost,
		Path:   "/login",
		Form:   url.Values{"username": {fakeapi.AdminUsername}, "password": {fakeapi.AdminPassword}},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}
