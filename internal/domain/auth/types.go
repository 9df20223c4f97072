// Package auth contains domain-level types for the visitor session lifecycle.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"strings"
	"time"
)

// State is the position of a visitor in the session lifecycle.
type State int

const (
	// StateResolving is the initial state while a stored token is being checked.
	StateResolving State = iota
	// StateAnonymous means no valid token is held.
	StateAnonymous
	// StateAuthenticated means a token and the matching profile are held.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Role is the backend-assigned role of a user.
// Keep string form; the backend owns the values.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleRev            Role = "rev"
	RoleCircuitSteward Role = "circuit_steward"
	RoleSocietySteward Role = "society_steward"
	RoleSecretary      Role = "secretary"
	RoleClassLeader    Role = "class_leader"
)

// Roles returns every role the backend knows about, in display order.
func Roles() []Role {
	return []Role{
		RoleAdmin,
		RoleRev,
		RoleCircuitSteward,
		RoleSocietySteward,
		RoleSecretary,
		RoleClassLeader,
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}
	return false
}

// Label is the display form of the role: the first underscore becomes a space.
func (r Role) Label() string {
	return strings.Replace(string(r), "_", " ", 1)
}

// UserProfile is the identity payload returned by the backend.
// Only FullName and Role are interpreted, for display.
type UserProfile struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"full_name"`
	Role         Role    `json:"role"`
	Society      *string `json:"society,omitempty"`
	Organization *string `json:"organization,omitempty"`
}

// Session is a read-only snapshot of the session manager.
// Token and User are both set or both empty.
type Session struct {
	Token   string
	User    *UserProfile
	Loading bool
}

// State derives the lifecycle state from the snapshot.
func (s Session) State() State {
	switch {
	case s.Loading:
		return StateResolving
	case s.Token != "" && s.User != nil:
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}

// LoginResult is the outcome of a login attempt. Error is set only when Success is false.
type LoginResult struct {
	Success bool
	Error   string
}

// DefaultLoginError is shown when the backend rejects a login without a detail message.
const DefaultLoginError = "Login failed"

// LoginFailed builds a failed result, falling back to DefaultLoginError.
func LoginFailed(detail string) LoginResult {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = DefaultLoginError
	}
	return LoginResult{Error: detail}
}

// StoredSession is the server-side record that keeps a visitor's token.
// ID is the opaque identifier carried in the visitor's cookie.
type StoredSession struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the record is past its expiry at now.
func (s StoredSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
