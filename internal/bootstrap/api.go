package bootstrap

import (
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/mcsa-hvr/circuit1021/config"
	"github.com/mcsa-hvr/circuit1021/internal/adapters/circuitapi"
	"github.com/mcsa-hvr/circuit1021/internal/observability/statsd"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

// NewWorkspaceFactory builds the shared backend client and a factory that
// derives one credentialed client per visitor.
func NewWorkspaceFactory(cfg config.APIConfig, metrics statsd.Sink, logger *slog.Logger) (*service.WorkspaceFactory, error) {
	base, err := circuitapi.New(circuitapi.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	return service.NewWorkspaceFactory(service.WorkspaceFactoryOptions{
		NewAPI: func(src oauth2.TokenSource) ports.CircuitAPI { return base.WithCredentials(src) },
		Obs:    service.SessionObservability{Logger: logger, Metrics: metrics},
	}), nil
}
