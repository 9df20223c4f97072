package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/securecookie"
	"golang.org/x/sync/errgroup"

	"github.com/mcsa-hvr/circuit1021/config"
	httpx "github.com/mcsa-hvr/circuit1021/internal/http"
	"github.com/mcsa-hvr/circuit1021/internal/observability/statsd"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

// ServiceContainer holds everything the HTTP layer is built from.
type ServiceContainer struct {
	Sessions   ports.SessionStore
	Workspaces *service.WorkspaceFactory
	Cookies    *securecookie.SecureCookie
	Checks     map[string]httpx.HealthCheck
	Metrics    *statsd.Client
}

// ServiceDeps groups inputs to NewServices.
type ServiceDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// NewServices wires the session store, metrics sink, cookie codec and
// backend client. The returned cleanup releases them in reverse order.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, func() error, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, nil, errors.New("service deps require a config")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := buildMetrics(cfg.Observability, logger)

	sessions, err := BuildSessionStore(ctx, cfg, logger)
	if err != nil {
		return ServiceContainer{}, nil, errors.Join(err, metrics.Close())
	}

	workspaces, err := NewWorkspaceFactory(cfg.API, metrics, logger)
	if err != nil {
		return ServiceContainer{}, nil, errors.Join(err, sessions.Close(), metrics.Close())
	}

	checks := map[string]httpx.HealthCheck{}
	if sessions.Check != nil {
		checks["session_store"] = sessions.Check
	}

	container := ServiceContainer{
		Sessions:   sessions.Store,
		Workspaces: workspaces,
		Cookies:    NewCookieCodec(cfg.Session, logger),
		Checks:     checks,
		Metrics:    metrics,
	}
	cleanup := func() error {
		return errors.Join(sessions.Close(), metrics.Close())
	}
	return container, cleanup, nil
}

// buildMetrics returns a statsd client; a disabled or failed client drops
// every sample.
func buildMetrics(cfg config.ObservabilityConfig, logger *slog.Logger) *statsd.Client {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Metrics.IsEnabled(),
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		client, _ = statsd.NewClient(statsd.Config{Logger: logger})
	}
	return client
}

// Run builds the services and serves HTTP until SIGINT/SIGTERM or a server
// failure, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, cleanup, err := NewServices(ctx, &ServiceDeps{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			logger.Error("release services failed", "error", cerr)
		}
	}()

	server, err := NewHTTPServer(&HTTPServerConfig{Config: cfg, Services: services, Logger: logger})
	if err != nil {
		return err
	}
	return serveUntilDone(ctx, server, logger)
}

// serveUntilDone runs the server and shuts it down when ctx ends. A serve
// error cancels the group so shutdown still runs.
func serveUntilDone(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ServeHTTP(gctx, server, logger)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down services...")
		return ShutdownHTTPServer(context.WithoutCancel(gctx), server, logger)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("run http server: %w", err)
	}
	return nil
}
