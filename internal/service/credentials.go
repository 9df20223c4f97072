package service

import (
	"sync"

	"golang.org/x/oauth2"
)

var _ oauth2.TokenSource = (*Credentials)(nil)

// Credentials holds the bearer token attached to outgoing backend requests.
// One instance is shared by a SessionManager (the only writer) and the API
// client built for the same session (a reader, through oauth2.TokenSource).
type Credentials struct {
	mu    sync.RWMutex
	token string
}

// Token implements oauth2.TokenSource. With no token attached it returns an
// empty, invalid token so the transport sends no Authorization header.
func (c *Credentials) Token() (*oauth2.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == "" {
		return &oauth2.Token{}, nil
	}
	return &oauth2.Token{AccessToken: c.token, TokenType: "Bearer"}, nil
}

// Set attaches token.
func (c *Credentials) Set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Clear detaches the token.
func (c *Credentials) Clear() { c.Set("") }

// Present reports whether a token is attached.
func (c *Credentials) Present() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}
