package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mcsa-hvr/circuit1021/config"
	"github.com/mcsa-hvr/circuit1021/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logStartupInfo(ctx, logger, &cfg)
	return bootstrap.Run(ctx, &cfg, logger)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting circuit1021 dashboard",
		"api_base_url", cfg.API.BaseURL,
		"http_addr", cfg.HTTP.Addr,
		"session_store", cfg.Session.Store,
		"dev", cfg.IsDev,
		"metrics", cfg.Observability.Metrics.IsEnabled())
}
