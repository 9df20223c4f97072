package httpx

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSRFToken = "known-token"

func csrfHandler(seen *string) http.Handler {
	return CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = GetCSRFToken(r)
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func withCSRFCookie(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: testCSRFToken})
	return r
}

func TestCSRFProtection_IssuesTokenOnFirstVisit(t *testing.T) {
	var seen string
	rec := httptest.NewRecorder()
	csrfHandler(&seen).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CSRFCookieName, c.Name)
	assert.NotEmpty(t, c.Value)
	assert.Equal(t, c.Value, seen, "templates see the same token as the cookie")
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.False(t, c.HttpOnly)
	assert.False(t, c.Secure)
}

func TestCSRFProtection_SecureBehindProxy(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	csrfHandler(nil).ServeHTTP(rec, r)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.True(t, rec.Result().Cookies()[0].Secure)
}

func TestCSRFProtection_ReusesExistingCookie(t *testing.T) {
	var seen string
	rec := httptest.NewRecorder()
	csrfHandler(&seen).ServeHTTP(rec, withCSRFCookie(httptest.NewRequest(http.MethodGet, "/members", nil)))
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, testCSRFToken, seen)
}

func TestCSRFProtection_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  func() *http.Request
		want int
	}{
		{
			name: "header token",
			req: func() *http.Request {
				r := withCSRFCookie(httptest.NewRequest(http.MethodPost, "/logout", nil))
				r.Header.Set(CSRFHeaderName, testCSRFToken)
				return r
			},
			want: http.StatusOK,
		},
		{
			name: "form token",
			req: func() *http.Request {
				return withCSRFCookie(formRequest(http.MethodPost, "/members", url.Values{CSRFFormField: {testCSRFToken}}))
			},
			want: http.StatusOK,
		},
		{
			name: "multipart token",
			req: func() *http.Request {
				var buf bytes.Buffer
				mw := multipart.NewWriter(&buf)
				require.NoError(t, mw.WriteField(CSRFFormField, testCSRFToken))
				require.NoError(t, mw.Close())
				r := httptest.NewRequest(http.MethodPost, "/files", &buf)
				r.Header.Set("Content-Type", mw.FormDataContentType())
				return withCSRFCookie(r)
			},
			want: http.StatusOK,
		},
		{
			name: "wrong token",
			req: func() *http.Request {
				return withCSRFCookie(formRequest(http.MethodPost, "/members", url.Values{CSRFFormField: {"other"}}))
			},
			want: http.StatusForbidden,
		},
		{
			name: "no cookie",
			req: func() *http.Request {
				return formRequest(http.MethodPost, "/members", url.Values{CSRFFormField: {testCSRFToken}})
			},
			want: http.StatusForbidden,
		},
		{
			name: "json body without header",
			req: func() *http.Request {
				r := withCSRFCookie(httptest.NewRequest(http.MethodPost, "/members", strings.NewReader(`{}`)))
				r.Header.Set("Content-Type", "application/json")
				return r
			},
			want: http.StatusForbidden,
		},
		{
			name: "safe method",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodHead, "/members", nil)
			},
			want: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			csrfHandler(nil).ServeHTTP(rec, tt.req())
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCSRFProtection_RejectionShape(t *testing.T) {
	t.Run("browser gets a toast", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := htmxRequest(withCSRFCookie(httptest.NewRequest(http.MethodPost, "/members", nil)), "")
		csrfHandler(nil).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), "showToast")
	})
	t.Run("api client gets json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := withCSRFCookie(httptest.NewRequest(http.MethodPost, "/members", nil))
		r.Header.Set("Accept", "application/json")
		csrfHandler(nil).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "csrf_rejected")
	})
}
