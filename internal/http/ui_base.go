package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/http/ui/viewmodel"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

// UIHandlers serves browser-facing routes. Backend access goes through the
// visitor's Workspace, installed in the request context by Sessions.
type UIHandlers struct {
	T      *TemplateRenderer
	IsDev  bool // Development mode flag for enhanced error reporting
	Logger *slog.Logger
	Now    func() time.Time
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) now() time.Time {
	if h != nil && h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	SetHXTrigger(w, "showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Nav:         dashboardNav(),
	}

	sess := SessionFromContext(r.Context())
	if sess.State() == domainauth.StateAuthenticated {
		layout.IsAuthenticated = true
		layout.User = &viewmodel.User{
			FullName:  sess.User.FullName,
			Role:      string(sess.User.Role),
			RoleLabel: sess.User.Role.Label(),
		}
	}
	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Nav":             layout.Nav,
		"Errors":          map[string]string{},
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, ws *service.Workspace, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders. A
// request abandoned by the browser (a newer filter replaced it) renders nothing.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		ws, ok := WorkspaceFromContext(r.Context())
		if !ok {
			redirectToLogin(w, r)
			return
		}
		if err := spec.Fetch(r.Context(), ws, data); err != nil {
			if r.Context().Err() != nil {
				return
			}
			h.logger().WarnContext(r.Context(), "page fetch failed",
				"page", spec.Meta.CurrentPage, "error", err)
			markPageError(data, err)
		}
	}
	h.renderDashboardPage(w, r, data)
}

// renderDashboardPage renders a dashboard page with proper HTMX partial support.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	layout := layoutFromMap(data)

	// <title> lets htmx update document.title on partial swaps.
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(layout.Title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	header := `<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(layout.PageTitle) + `</h1>`
	if _, err := w.Write([]byte(header)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}

	if err := h.T.ExecuteTo(w, ContentTemplateFor(layout.CurrentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// renderFragment renders a single named template for an htmx target swap.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.T.RenderNamed(w, name, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "fragment "+name)
	}
}

// renderStandalone renders a page outside the dashboard chrome (login, signed out).
func (h *UIHandlers) renderStandalone(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "standalone render")
	}
}

func markPageError(data map[string]any, err error) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; ok {
		return
	}
	data["ErrorMessage"] = userMessage(err, "An unexpected error occurred. Please try again.")
}

func layoutFromMap(data map[string]any) viewmodel.Layout {
	layout := viewmodel.Layout{}
	if v, ok := data["Title"].(string); ok {
		layout.Title = v
	}
	if v, ok := data["PageTitle"].(string); ok {
		layout.PageTitle = v
	}
	if v, ok := data["CurrentPage"].(string); ok {
		layout.CurrentPage = v
	}
	return layout
}

// NotFound renders the 404 page for browsers and a JSON error otherwise.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"resource not found"}` + "\n"))
		return
	}
	data := basePageData(r, PageMeta{Title: "Not Found", PageTitle: "Page not found", CurrentPage: PageNotFound})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if IsAnonymous(r.Context()) {
		data["Standalone"] = true
		_ = h.T.ExecuteTo(w, "error-layout", data)
		return
	}
	if WantsPartial(r) {
		_ = h.T.ExecuteTo(w, ContentTemplateFor(PageNotFound), data)
		return
	}
	_ = h.T.ExecuteTo(w, "layout", data)
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		body := `<div class="template-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
