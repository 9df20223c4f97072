package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/securecookie"

	circuit1021 "github.com/mcsa-hvr/circuit1021"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions   ports.SessionStore         // Required
	Workspaces *service.WorkspaceFactory  // Required
	Cookies    *securecookie.SecureCookie // Required
	SessionTTL time.Duration
	// CookieDomain scopes the session and CSRF cookies; empty means host-only.
	CookieDomain string
	// Health checks reported by /readyz.
	Checks map[string]HealthCheck
	IsDev  bool // templates and static files are read from disk
	// TemplateFS overrides the template source (tests).
	TemplateFS fs.FS
	Logger     *slog.Logger
	Now        func() time.Time
}

// NewRouter builds the dashboard router. Everything except static assets and
// probes runs behind the session and CSRF middleware.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS := services.TemplateFS
	if templateFS == nil {
		templateFS = templateSource(services.IsDev, logger)
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: templateFS, Logger: logger, Now: services.Now})
	if err != nil {
		return nil, err
	}
	ui := &UIHandlers{T: tr, IsDev: services.IsDev, Logger: logger, Now: services.Now}
	health := &HealthHandlers{Checks: services.Checks}

	mux := http.NewServeMux()
	registerAuthRoutes(mux, ui)
	registerDashboardRoutes(mux, ui)

	sessions := Sessions(SessionMiddlewareOptions{
		Store:        services.Sessions,
		Workspaces:   services.Workspaces,
		Cookies:      services.Cookies,
		TTL:          services.SessionTTL,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
		Now:          services.Now,
	})
	csrf := CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})
	app := sessions(csrf(&notFoundHandler{mux: mux, ui: ui}))

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", health.Live)
	root.HandleFunc("HEAD /healthz", health.Live)
	root.HandleFunc("GET /readyz", health.Ready)
	root.Handle("GET /static/", staticHandler(services.IsDev, logger))
	root.Handle("/", app)

	return BrowserDetection()(root), nil
}

func registerAuthRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.AuthStatus)
	mux.HandleFunc("GET /auth/signed-out", h.SignedOut)
}

func registerDashboardRoutes(mux *http.ServeMux, h *UIHandlers) {
	auth := RequireAuthBrowser()
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, auth(fn))
	}

	handle("GET /{$}", h.Overview)
	handle("GET /overview", h.Overview)
	handle("GET /organizations", h.Organizations)

	handle("GET /members", h.Members)
	handle("GET /members/new", h.NewMember)
	handle("POST /members", h.CreateMember)

	handle("GET /finances", h.Finances)
	handle("GET /finances/new", h.NewFinance)
	handle("POST /finances", h.CreateFinance)
	handle("POST /finances/total", h.FinanceTotal)

	handle("GET /announcements", h.Announcements)
	handle("GET /announcements/new", h.NewAnnouncement)
	handle("POST /announcements", h.CreateAnnouncement)

	handle("GET /files", h.Files)
	handle("POST /files", h.UploadFile)
}

// templateSource picks disk templates in dev mode and the embedded copy otherwise.
func templateSource(isDev bool, logger *slog.Logger) fs.FS {
	if isDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(circuit1021.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		logger.Warn("embedded templates unavailable; reading from disk", "error", err)
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// staticHandler serves /static/* from disk in dev mode and from the embedded
// copy otherwise. Dev responses are never cached.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	const dir = "frontend/static"
	if isDev {
		return noCache(http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}
	sub, err := fs.Sub(circuit1021.StaticFS, dir)
	if err != nil {
		logger.Warn("embedded static assets unavailable; reading from disk", "error", err)
		return noCache(http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}
	files := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		next.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and renders the dashboard 404 page when
// no route matched.
type notFoundHandler struct {
	mux *http.ServeMux
	ui  *UIHandlers
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}
	// The mux answers 405 for a known path with the wrong method; keep that.
	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)
	if cw.status != http.StatusNotFound {
		cw.flushTo(w, h.ui.logger())
		return
	}
	h.ui.NotFound(w, r)
}

// captureWriter buffers the mux's fallback answer so a 404 can be replaced.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter, logger *slog.Logger) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		logger.Debug("failed to write captured response", "error", err)
	}
}
