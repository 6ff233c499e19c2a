package server

import (
	"context"
	"net/http"

	"github.com/honeycarbs/jobmatch/internal/config"
	"github.com/honeycarbs/jobmatch/internal/domain/job"
	adzunaProvider "github.com/honeycarbs/jobmatch/internal/domain/job/providers/adzuna"
	joobleProvider "github.com/honeycarbs/jobmatch/internal/domain/job/providers/jooble"
	serpapiProvider "github.com/honeycarbs/jobmatch/internal/domain/job/providers/serpapi"
	"github.com/honeycarbs/jobmatch/internal/export"
	"github.com/honeycarbs/jobmatch/pkg/adzuna"
	"github.com/honeycarbs/jobmatch/pkg/jooble"
	"github.com/honeycarbs/jobmatch/pkg/logging"
	"github.com/honeycarbs/jobmatch/pkg/serpapi"
	"github.com/honeycarbs/jobmatch/pkg/sheets"
)

// Resources holds everything the transports are built on
type Resources struct {
	Aggregator *job.Aggregator
	Exporter   *export.SheetsExporter
}

func newResources(aggregator *job.Aggregator, exporter *export.SheetsExporter) *Resources {
	return &Resources{
		Aggregator: aggregator,
		Exporter:   exporter,
	}
}

// provideHTTPClient is shared by all provider clients; deadlines come from the request context
func provideHTTPClient() *http.Client {
	return &http.Client{
		Transport: http.DefaultTransport,
	}
}

// provideJobConfig extracts search bounds from main config
func provideJobConfig(cfg config.Config) job.Config {
	return cfg.Search.Job()
}

// provideJobProviders builds every provider that has credentials, in a fixed order.
// Providers without credentials are left out and reported once.
func provideJobProviders(cfg config.Config, httpClient *http.Client, logger *logging.Logger) ([]job.Provider, error) {
	var providers []job.Provider

	if cfg.AdzunaConfigured() {
		client, err := adzuna.NewClient(adzuna.Config{
			AppID:      cfg.Adzuna.AppID,
			AppKey:     cfg.Adzuna.AppKey,
			Country:    cfg.Adzuna.Country,
			BaseURL:    cfg.Adzuna.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, adzunaProvider.NewProvider(client, cfg.Adzuna.Country))
		logger.Info("Adzuna provider initialized", "country", cfg.Adzuna.Country)
	} else {
		logger.Info("Adzuna provider disabled, ADZUNA_APP_ID/ADZUNA_APP_KEY not set")
	}

	if cfg.JoobleConfigured() {
		client, err := jooble.NewClient(jooble.Config{
			APIKey:     cfg.Jooble.APIKey,
			BaseURL:    cfg.Jooble.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, joobleProvider.NewProvider(client))
		logger.Info("Jooble provider initialized", "base_url", cfg.Jooble.BaseURL)
	} else {
		logger.Info("Jooble provider disabled, JOOBLE_API_KEY not set")
	}

	if cfg.SerpAPIConfigured() {
		client, err := serpapi.NewClient(serpapi.Config{
			APIKey:     cfg.SerpAPI.APIKey,
			BaseURL:    cfg.SerpAPI.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, serpapiProvider.NewProvider(client))
		logger.Info("SerpAPI provider initialized")
	} else {
		logger.Info("SerpAPI provider disabled, SERPAPI_KEY not set")
	}

	if len(providers) == 0 {
		logger.Warn("no job providers configured, searches will return empty results")
	}
	return providers, nil
}

// provideSheetsExporter returns an exporter that is unconfigured when no credentials are set
func provideSheetsExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) *export.SheetsExporter {
	if cfg.Sheets.CredentialsPath == "" {
		return export.NewSheetsExporter(nil)
	}

	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		logger.Warn("failed to initialize Google Sheets client", "err", err)
		return export.NewSheetsExporter(nil)
	}

	logger.Info("Google Sheets client initialized")
	return export.NewSheetsExporter(client)
}
