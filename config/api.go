package config

import (
	"strings"
	"time"
)

// DefaultAPIBaseURL is the backend address used by local development setups.
const DefaultAPIBaseURL = "http://localhost:8001/api"

// APIConfig locates the circuit backend REST API.
type APIConfig struct {
	// BaseURL includes the /api path prefix.
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8001/api"`
	Timeout time.Duration `env:"API_TIMEOUT"  envDefault:"10s"`
}

// Sanitize trims the base URL and restores defaults for blank or non-positive values.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}
