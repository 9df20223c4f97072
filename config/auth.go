package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects where visitor sessions are kept.
type SessionStoreKind string

const (
	// SessionStoreMemory keeps sessions in process; they are lost on restart.
	SessionStoreMemory SessionStoreKind = "memory"
	// SessionStoreRedis keeps sessions in Redis so several replicas can share them.
	SessionStoreRedis SessionStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStore: %q (valid options: memory, redis)", v)
	}
}

const (
	minSessionTTL        = time.Minute
	defaultSweepInterval = 5 * time.Minute
)

// SessionConfig groups visitor session settings.
type SessionConfig struct {
	Store SessionStoreKind `env:"SESSION_STORE" envDefault:"memory"`
	TTL   time.Duration    `env:"SESSION_TTL"   envDefault:"24h"`

	// HashKey and BlockKey sign and encrypt the session cookie. When empty a
	// random key is generated per process and sessions do not survive restarts.
	HashKey  string `env:"SESSION_HASH_KEY"`
	BlockKey string `env:"SESSION_BLOCK_KEY"`

	// SweepInterval controls how often the memory store drops expired sessions.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
}

// Sanitize applies guardrails to session configuration values.
func (c *SessionConfig) Sanitize() {
	if c.Store == "" {
		c.Store = SessionStoreMemory
	}
	if c.TTL < minSessionTTL {
		c.TTL = minSessionTTL
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = defaultSweepInterval
	}
	c.HashKey = strings.TrimSpace(c.HashKey)
	c.BlockKey = strings.TrimSpace(c.BlockKey)
}

// HasCookieKeys reports whether a stable hash key was configured.
func (c *SessionConfig) HasCookieKeys() bool {
	return c.HashKey != ""
}
