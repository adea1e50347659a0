package mcp

import (
	"context"

	"github.com/jobscout-ai/agent/internal/config"
	"github.com/jobscout-ai/agent/internal/export"
	"github.com/jobscout-ai/agent/internal/session"
	"github.com/jobscout-ai/agent/internal/signal"
	"github.com/jobscout-ai/agent/pkg/jobsapi"
	"github.com/jobscout-ai/agent/pkg/logging"
	"github.com/jobscout-ai/agent/pkg/sheets"
)

// Resources holds everything the tool layer needs.
type Resources struct {
	Controller *session.Controller
	Uploader   *jobsapi.Client
	Telemetry  *signal.TelemetryStore
	Scrape     *signal.ScrapeStore
	Exporter   *export.Service
}

// BuildResources wires the session stack by hand. The wire injector in
// wire.go produces the same graph when regenerated.
func BuildResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	telemetry := signal.NewTelemetryStore()
	scrape := signal.NewScrapeStore(cfg.ScrapeTTL)

	client, err := jobsapi.NewClient(jobsapi.Config{
		BaseURL:   cfg.Backend.BaseURL,
		Timeout:   cfg.Backend.Timeout,
		PageSize:  cfg.Backend.PageSize,
		Telemetry: telemetry,
		Scrape:    scrape,
		Logger:    logger.Named("jobsapi"),
	})
	if err != nil {
		return nil, err
	}

	ctrl, err := session.New(client,
		session.WithLogger(logger.Named("session")),
		session.WithFeedbackSender(client),
		session.WithDefaultCountry(cfg.DefaultCountry),
	)
	if err != nil {
		return nil, err
	}

	exporter := export.NewService(nil, logger.Named("export"))
	if cfg.Sheets.CredentialsPath != "" {
		sheetsClient, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
		if err != nil {
			logger.Warn("failed to initialize sheets client, export disabled", "err", err)
		} else {
			exporter = export.NewService(sheetsClient, logger.Named("export"))
			logger.Info("sheets export initialized")
		}
	}

	return &Resources{
		Controller: ctrl,
		Uploader:   client,
		Telemetry:  telemetry,
		Scrape:     scrape,
		Exporter:   exporter,
	}, nil
}
