//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobmatch/internal/config"
	"github.com/honeycarbs/jobmatch/internal/domain/job"
	"github.com/honeycarbs/jobmatch/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	wire.Build(
		// Providers
		provideHTTPClient,
		provideJobProviders,

		// Services
		provideJobConfig,
		job.NewAggregatorWithDeps,

		// Export
		provideSheetsExporter,
		newResources,
	)

	return &Resources{}, nil
}
