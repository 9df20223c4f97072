package model

import (
	"errors"
	"strings"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
)

const minPasswordLen = 6

// RegisterUserRequest is the body of POST /auth/register.
type RegisterUserRequest struct {
	Username     string          `json:"username"`
	Password     string          `json:"password"`
	FullName     string          `json:"full_name"`
	Role         domainauth.Role `json:"role"`
	Society      *Society        `json:"society,omitempty"`
	Organization *Organization   `json:"organization,omitempty"`
}

// Validate validates RegisterUserRequest.
func (r *RegisterUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Username == "" {
		return errors.New("username is required")
	}
	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	if r.FullName == "" {
		return errors.New("full_name is required")
	}
	if !r.Role.Valid() {
		return errors.New("invalid role")
	}
	if r.Society != nil && !r.Society.Valid() {
		return errors.New("invalid society")
	}
	if r.Organization != nil && !r.Organization.Valid() {
		return errors.New("invalid organization")
	}
	return nil
}

// RegisterResult is the response of POST /auth/register.
type RegisterResult struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}
