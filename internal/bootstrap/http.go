package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/mcsa-hvr/circuit1021/config"
	httpx "github.com/mcsa-hvr/circuit1021/internal/http"
)

const (
	readHeaderTimeout = 10 * time.Second
	// shutdownWaitTimeout is the maximum time to wait for in-flight requests.
	shutdownWaitTimeout = 15 * time.Second
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the dashboard server without starting it.
func NewHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	router, err := httpx.NewRouter(httpx.RouterServices{
		Sessions:     cfg.Services.Sessions,
		Workspaces:   cfg.Services.Workspaces,
		Cookies:      cfg.Services.Cookies,
		SessionTTL:   appCfg.Session.TTL,
		CookieDomain: appCfg.HTTP.CookieDomain,
		Checks:       cfg.Services.Checks,
		IsDev:        appCfg.IsDev,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	handler := buildHTTPHandler(httpHandlerConfig{Logger: logger, Router: router, HTTP: appCfg.HTTP})

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}, nil
}

type httpHandlerConfig struct {
	Logger *slog.Logger
	Router http.Handler
	HTTP   config.HTTPConfig
}

// buildHTTPHandler wraps the router as Recover -> Logging -> Compression -> Router
// so logging sees compressed sizes.
func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	h := cfg.Router
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel})(h)
	}

	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)
	return h
}

// ServeHTTP listens on the server address and serves until Shutdown. A clean
// shutdown returns nil.
func ServeHTTP(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", server.Addr, err)
	}
	logger.InfoContext(ctx, "starting HTTP server", "addr", ln.Addr().String())
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	logger.InfoContext(ctx, "shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownWaitTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.InfoContext(ctx, "HTTP server stopped")
	return nil
}
