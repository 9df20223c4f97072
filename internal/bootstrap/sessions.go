package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcsa-hvr/circuit1021/config"
	"github.com/mcsa-hvr/circuit1021/internal/adapters/memory"
	redisadapter "github.com/mcsa-hvr/circuit1021/internal/adapters/redis"
	httpx "github.com/mcsa-hvr/circuit1021/internal/http"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
)

// SessionBackend is the configured session store plus what it needs at
// readiness checks and shutdown.
type SessionBackend struct {
	Store ports.SessionStore
	// Check is nil for stores without an external dependency.
	Check httpx.HealthCheck
	Close func() error
}

// BuildSessionStore selects the memory or Redis store. The memory sweeper
// runs until ctx is canceled.
func BuildSessionStore(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (SessionBackend, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return SessionBackend{}, fmt.Errorf("connect redis: %w", err)
		}
		store := redisadapter.NewSessionStoreWithOptions(client, redisadapter.SessionStoreOptions{
			Prefix: cfg.Redis.KeyPrefix,
		})
		return SessionBackend{
			Store: store,
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			Close: client.Close,
		}, nil

	case config.SessionStoreMemory, "":
		store := memory.NewSessionStore(memory.SessionStoreOptions{})
		go store.RunSweeper(ctx, cfg.Session.SweepInterval)
		if logger != nil {
			logger.InfoContext(ctx, "using in-memory session store", "sweep_interval", cfg.Session.SweepInterval)
		}
		return SessionBackend{Store: store, Close: func() error { return nil }}, nil

	default:
		return SessionBackend{}, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
}
