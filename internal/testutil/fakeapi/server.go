// Package fakeapi runs an in-memory stand-in for the circuit REST backend on an
// httptest server. It mirrors the backend's routes, bearer checks and FastAPI
// style error bodies closely enough for client, service and handler tests.
package fakeapi

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
)

// Default credentials seeded into every server, matching the backend's startup admin.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

type account struct {
	password string
	profile  domainauth.UserProfile
}

// Server is a fake backend. All exported methods are safe for concurrent use.
type Server struct {
	ts  *httptest.Server
	now func() time.Time

	mu            sync.Mutex
	seq           int
	users         map[string]account // username
	tokens        map[string]string  // token -> username
	members       []model.Member
	finances      []model.FinancialEntry
	announcements []model.Announcement
	files         []model.FileRecord
	hits          map[string]int
	authHeaders   []string
	delay         time.Duration
}

// TB is the subset of testing.TB the server needs.
type TB interface {
	Helper()
	Cleanup(func())
}

// New starts a fake backend that is closed when the test ends.
func New(t TB) *Server {
	t.Helper()
	s := &Server{
		now:    func() time.Time { return time.Now().UTC() },
		users:  map[string]account{},
		tokens: map[string]string{},
		hits:   map[string]int{},
	}
	s.AddUser(AdminUsername, AdminPassword, domainauth.UserProfile{
		FullName: "System Administrator",
		Role:     domainauth.RoleAdmin,
	})
	s.ts = httptest.NewServer(s.routes())
	t.Cleanup(s.ts.Close)
	return s
}

// BaseURL is the API base, including the /api prefix.
func (s *Server) BaseURL() string { return s.ts.URL + "/api" }

// Client returns an HTTP client wired to the test server.
func (s *Server) Client() *http.Client { return s.ts.Client() }

// AddUser registers an account; ID and Username are filled in when empty.
func (s *Server) AddUser(username, password string, profile domainauth.UserProfile) domainauth.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID == "" {
		profile.ID = s.nextID("user")
	}
	profile.Username = username
	s.users[username] = account{password: password, profile: profile}
	return profile
}

// IssueToken returns a valid bearer token for username without a login call.
func (s *Server) IssueToken(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueToken(username)
}

// RevokeTokens invalidates every issued token, as if they expired.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]string{}
}

// SetDelay makes every handler wait d (or until the request is canceled).
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Hits returns how many times "METHOD /path" was requested.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// TotalHits returns the number of requests served.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

// AuthHeaders returns the Authorization header of every request, in order.
func (s *Server) AuthHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authHeaders...)
}

// Members returns a copy of the stored members.
func (s *Server) Members() []model.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Member(nil), s.members...)
}

// Finances returns a copy of the stored financial entries.
func (s *Server) Finances() []model.FinancialEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.FinancialEntry(nil), s.finances...)
}

func (s *Server) nextID(kind string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", kind, s.seq)
}

func (s *Server) issueToken(username string) string {
	token := fmt.Sprintf("token-%s-%d", username, len(s.tokens)+1)
	s.tokens[token] = username
	return token
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("GET /api/auth/me", s.authed(s.handleMe))
	mux.HandleFunc("GET /api/stats/dashboard", s.authed(s.handleStats))
	mux.HandleFunc("GET /api/members", s.authed(s.handleListMembers))
	mux.HandleFunc("POST /api/members", s.authed(s.handleCreateMember))
	mux.HandleFunc("GET /api/finances", s.authed(s.handleListFinances))
	mux.HandleFunc("POST /api/finances", s.authed(s.handleCreateFinance))
	mux.HandleFunc("GET /api/announcements", s.authed(s.handleListAnnouncements))
	mux.HandleFunc("POST /api/announcements", s.authed(s.handleCreateAnnouncement))
	mux.HandleFunc("POST /api/upload", s.authed(s.handleUpload))
	mux.HandleFunc("GET /api/files/{category}", s.authed(s.handleListFiles))
	return s.record(mux)
}

// record counts requests, keeps Authorization headers and applies the configured delay.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api")]++
		s.authHeaders = append(s.authHeaders, r.Header.Get("Authorization"))
		delay := s.delay
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, user domainauth.UserProfile)

// authed enforces the bearer token the way the backend's HTTPBearer dependency does:
// no header is 403 "Not authenticated", an unknown token is 401 "Invalid token".
func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeDetail(w, http.StatusForbidden, "Not authenticated")
			return
		}
		s.mu.Lock()
		username, known := s.tokens[token]
		acct := s.users[username]
		s.mu.Unlock()
		if !known {
			writeDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		h(w, r, acct.profile)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

type fieldIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// writeMissing answers 422 with a FastAPI validation error list.
func writeMissing(w http.ResponseWriter, fields ...string) {
	issues := make([]fieldIssue, 0, len(fields))
	for _, f := range fields {
		issues = append(issues, fieldIssue{Loc: []string{"body", f}, Msg: "field required", Type: "value_error.missing"})
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": issues})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err == nil {
		err = json.Unmarshal(body, v)
	}
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []fieldIssue{{Loc: []string{"body"}, Msg: "value is not a valid dict", Type: "type_error.dict"}},
		})
		return false
	}
	return true
}

func missing(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			out = append(out, pairs[i])
		}
	}
	return out
}

func sortByTimeDesc[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return at(items[i]).After(at(items[j])) })
}
