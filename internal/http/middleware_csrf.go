package httpx

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
)

const (
	// CSRFCookieName holds the double-submit token.
	CSRFCookieName = "csrf_token"
	// CSRFHeaderName is sent by htmx via hx-headers on the body element.
	CSRFHeaderName = "X-Csrf-Token"
	// CSRFFormField is the hidden input used by plain form posts.
	CSRFFormField = "csrf_token"

	csrfTokenBytes = 32
	csrfCookieAge  = 12 * 3600
)

var errCSRFRejected = errors.New("CSRF token validation failed")

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	CookieDomain string
}

// CSRFProtection guards state-changing requests with a double-submit cookie.
// The token must come back in the X-Csrf-Token header or the csrf_token form
// field. GET, HEAD, OPTIONS and TRACE are exempt.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookieValue(r, CSRFCookieName)
			if token == "" {
				key := securecookie.GenerateRandomKey(csrfTokenBytes)
				if key == nil {
					http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
					return
				}
				token = base64.RawURLEncoding.EncodeToString(key)
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					Domain:   cfg.CookieDomain,
					HttpOnly: false, // htmx reads it from the page, not the cookie jar
					Secure:   isSecureRequest(r),
					SameSite: http.SameSiteStrictMode,
					MaxAge:   csrfCookieAge,
				})
			}

			r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token))

			if requiresCSRFValidation(r.Method) && !csrfTokenMatches(r, token) {
				if IsBrowserRequest(r) {
					triggerToast(w, "Your form expired. Please reload the page and try again.", "error")
					http.Error(w, errCSRFRejected.Error(), http.StatusForbidden)
					return
				}
				WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "csrf_rejected", Err: errCSRFRejected})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresCSRFValidation(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// isSecureRequest accounts for TLS terminated at a proxy.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

func csrfTokenMatches(r *http.Request, cookieToken string) bool {
	if cookieToken == "" {
		return false
	}
	submitted := r.Header.Get(CSRFHeaderName)
	if submitted == "" {
		ct := r.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(ct, "multipart/form-data"):
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
				return false
			}
		case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
			if err := r.ParseForm(); err != nil {
				return false
			}
		default:
			return false
		}
		submitted = r.FormValue(CSRFFormField)
	}
	return submitted != "" && subtle.ConstantTimeCompare([]byte(submitted), []byte(cookieToken)) == 1
}

type csrfTokenKey struct{}

// GetCSRFToken returns the token for templates to embed in forms and hx-headers.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}
