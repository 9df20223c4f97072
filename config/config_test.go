package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.HasCookieKeys())
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.Equal(t, "circuit1021:session:", cfg.Redis.KeyPrefix)
	assert.False(t, cfg.Observability.Metrics.IsEnabled())
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", " https://circuit.example.org/api/ ")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("APP_COOKIE_DOMAIN", "circuit.example.org")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("SESSION_TTL", "8h")
	t.Setenv("SESSION_HASH_KEY", "hash-key")
	t.Setenv("REDIS_URI", "redis://cache:6379/0")
	t.Setenv("REDIS_USE_SENTINEL", "true")
	t.Setenv("REDIS_SENTINEL_NODES", "s1:26379,s2:26379")
	t.Setenv("OBSERVABILITY_METRICS_ENABLED", "true")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "https://circuit.example.org/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "circuit.example.org", cfg.HTTP.CookieDomain)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 8*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.HasCookieKeys())
	assert.True(t, cfg.Redis.UseSentinel)
	assert.Equal(t, []string{"s1:26379", "s2:26379"}, cfg.Redis.SentinelNodes)
	assert.True(t, cfg.Observability.Metrics.IsEnabled())
}

func TestAppConfig_InvalidSessionStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "postgres")
	var cfg AppConfig
	err := env.Parse(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid options: memory, redis")
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	tests := []struct {
		nodeEnv string
		want    bool
	}{
		{"development", true},
		{"DEV", true},
		{"production", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.nodeEnv, func(t *testing.T) {
			t.Setenv("NODE_ENV", tt.nodeEnv)
			cfg := AppConfig{}
			cfg.Sanitize()
			assert.Equal(t, tt.want, cfg.IsDev)
		})
	}
}

func TestSessionConfig_Sanitize(t *testing.T) {
	c := SessionConfig{TTL: time.Second, HashKey: "  k  "}
	c.Sanitize()
	assert.Equal(t, SessionStoreMemory, c.Store)
	assert.Equal(t, time.Minute, c.TTL)
	assert.Equal(t, 5*time.Minute, c.SweepInterval)
	assert.Equal(t, "k", c.HashKey)
}

func TestAPIConfig_Sanitize(t *testing.T) {
	c := APIConfig{BaseURL: "   ", Timeout: -time.Second}
	c.Sanitize()
	assert.Equal(t, DefaultAPIBaseURL, c.BaseURL)
	assert.Equal(t, 10*time.Second, c.Timeout)
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	tests := []struct {
		level, want int
	}{
		{0, 1},
		{-3, 1},
		{6, 6},
		{12, 9},
	}
	for _, tt := range tests {
		h := HTTPConfig{CompressionLevel: tt.level}
		h.Sanitize()
		assert.Equal(t, tt.want, h.CompressionLevel)
		assert.Equal(t, ":8080", h.Addr)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	c := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "   "}
	c.Sanitize()
	assert.False(t, c.Enabled)
	assert.False(t, c.IsEnabled())
	assert.Equal(t, "circuit1021", c.Prefix)

	c = ObservabilityMetricsConfig{Enabled: true, StatsdAddress: " statsd:8125 ", Prefix: "hvr"}
	c.Sanitize()
	assert.True(t, c.IsEnabled())
	assert.Equal(t, "statsd:8125", c.StatsdAddress)
	assert.Equal(t, "hvr", c.Prefix)
}
