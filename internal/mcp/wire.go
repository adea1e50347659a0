//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/jobscout-ai/agent/internal/config"
	"github.com/jobscout-ai/agent/internal/export"
	"github.com/jobscout-ai/agent/internal/session"
	"github.com/jobscout-ai/agent/internal/signal"
	"github.com/jobscout-ai/agent/pkg/jobsapi"
	"github.com/jobscout-ai/agent/pkg/logging"
	"github.com/jobscout-ai/agent/pkg/sheets"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	wire.Build(
		// Signal stores
		signal.NewTelemetryStore,
		provideScrapeStore,

		// Backend client
		provideClientConfig,
		jobsapi.NewClient,
		wire.Bind(new(jobsapi.TelemetrySink), new(*signal.TelemetryStore)),
		wire.Bind(new(jobsapi.ScrapeSink), new(*signal.ScrapeStore)),

		// Session
		provideController,

		// Export
		provideSheetsClient,
		provideExporter,

		newResources,
	)

	return &Resources{}, nil
}

// provideScrapeStore builds the self-expiring scrape store from config
func provideScrapeStore(cfg config.Config) *signal.ScrapeStore {
	return signal.NewScrapeStore(cfg.ScrapeTTL)
}

// provideClientConfig extracts backend client config from main config
func provideClientConfig(cfg config.Config, telemetry jobsapi.TelemetrySink, scrape jobsapi.ScrapeSink, logger *logging.Logger) jobsapi.Config {
	return jobsapi.Config{
		BaseURL:   cfg.Backend.BaseURL,
		Timeout:   cfg.Backend.Timeout,
		PageSize:  cfg.Backend.PageSize,
		Telemetry: telemetry,
		Scrape:    scrape,
		Logger:    logger.Named("jobsapi"),
	}
}

// provideController builds the session controller around the backend client
func provideController(cfg config.Config, client *jobsapi.Client, logger *logging.Logger) (*session.Controller, error) {
	return session.New(client,
		session.WithLogger(logger.Named("session")),
		session.WithFeedbackSender(client),
		session.WithDefaultCountry(cfg.DefaultCountry),
	)
}

// provideSheetsClient builds the sheets client when credentials are configured
func provideSheetsClient(ctx context.Context, cfg config.Config, logger *logging.Logger) *sheets.Client {
	if cfg.Sheets.CredentialsPath == "" {
		return nil
	}

	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		logger.Warn("failed to initialize sheets client, export disabled", "err", err)
		return nil
	}
	return client
}

// provideExporter builds the export service; a nil sheets client leaves it unconfigured
func provideExporter(client *sheets.Client, logger *logging.Logger) *export.Service {
	if client == nil {
		return export.NewService(nil, logger.Named("export"))
	}
	return export.NewService(client, logger.Named("export"))
}

// newResources creates Resources struct
func newResources(
	ctrl *session.Controller,
	client *jobsapi.Client,
	telemetry *signal.TelemetryStore,
	scrape *signal.ScrapeStore,
	exporter *export.Service,
) *Resources {
	return &Resources{
		Controller: ctrl,
		Uploader:   client,
		Telemetry:  telemetry,
		Scrape:     scrape,
		Exporter:   exporter,
	}
}
