package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
)

const (
	msgMissingCredentials = "Please enter your username and password"
	msgSignedOutNotice    = "You have been signed out."
)

// loginPageData builds the data for the standalone sign-in view.
func loginPageData(r *http.Request, redirect, username, errMsg string) map[string]any {
	data := basePageData(r, PageMeta{Title: "Sign In", PageTitle: "Sign In", CurrentPage: PageLogin})
	data["Standalone"] = true
	data["RedirectURI"] = redirect
	data["Username"] = username
	if errMsg != "" {
		data["Error"] = true
		data["ErrorMessage"] = errMsg
	}
	return data
}

// LoginPage renders the sign-in form. Visitors who already hold a valid
// session go straight to redirect_uri.
// GET /login?redirect_uri=<optional>.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirect := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	if !IsAnonymous(r.Context()) {
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}
	h.renderStandalone(w, r, loginPageData(r, redirect, "", ""))
}

// Login exchanges the submitted credentials for a session. A failure keeps
// the typed username and shows the backend detail, or "Login failed".
// POST /login.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	ws, ok := WorkspaceFromContext(r.Context())
	if !ok {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	redirect := safeRedirectPath(r.PostFormValue("redirect_uri"))

	var errMsg string
	if username == "" || password == "" {
		errMsg = msgMissingCredentials
	} else {
		res := ws.Session.Login(r.Context(), username, password)
		if r.Context().Err() != nil {
			return
		}
		if res.Success {
			h.logger().InfoContext(r.Context(), "user signed in", "username", username)
			if IsHTMX(r) {
				HTMX(w).Redirect(redirect)
				return
			}
			http.Redirect(w, r, redirect, http.StatusSeeOther)
			return
		}
		errMsg = res.Error
	}

	data := loginPageData(r, redirect, username, errMsg)
	if IsHTMX(r) {
		h.renderFragment(w, r, "login-form", data)
		return
	}
	h.renderStandalone(w, r, data)
}

// Logout drops the visitor's session. It never calls the backend.
// POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if ws, ok := WorkspaceFromContext(r.Context()); ok {
		if err := ws.Session.Logout(r.Context()); err != nil {
			h.logger().WarnContext(r.Context(), "logout: clearing stored session failed", "error", err)
		}
	}

	switch {
	case IsHTMX(r):
		HTMX(w).Redirect(signedOutPath)
	case !IsBrowserRequest(r):
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
	default:
		http.Redirect(w, r, signedOutPath, http.StatusSeeOther)
	}
}

// SignedOut renders the signed-out notice with a link back to sign in.
// GET /auth/signed-out?redirect_uri=<optional>.
func (h *UIHandlers) SignedOut(w http.ResponseWriter, r *http.Request) {
	redirect := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	data := basePageData(r, PageMeta{Title: "Signed Out", PageTitle: "Signed Out", CurrentPage: PageSignedOut})
	data["Standalone"] = true
	data["RedirectURI"] = redirect
	data["Notice"] = msgSignedOutNotice
	h.renderStandalone(w, r, data)
}

type authStatusResponse struct {
	Authenticated bool                    `json:"authenticated"`
	User          *domainauth.UserProfile `json:"user,omitempty"`
}

// AuthStatus reports the visitor's session as JSON.
// GET /auth/status.
func (h *UIHandlers) AuthStatus(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	resp := authStatusResponse{Authenticated: sess.State() == domainauth.StateAuthenticated}
	if resp.Authenticated {
		resp.User = sess.User
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, resp)
}
