package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jobscout-ai/agent/internal/domain"
	"github.com/jobscout-ai/agent/internal/session"
	"github.com/jobscout-ai/agent/internal/signal"
)

// SessionStatus is the structured answer of the session_status tool.
type SessionStatus struct {
	Session   session.Snapshot         `json:"session"`
	Telemetry *domain.TelemetryMetrics `json:"telemetry,omitempty"`
	Scrape    *domain.ScrapeState      `json:"scrape,omitempty"`
}

// WithStatus registers the session_status tool, surfacing the session
// snapshot together with the latest published store values.
func WithStatus(ctrl *session.Controller, telemetry *signal.TelemetryStore, scrape *signal.ScrapeStore) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "session_status",
			Description: "Inspect the search session, backend performance metrics, and background-scrape activity",
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *struct{}) (*sdkmcp.CallToolResult, any, error) {
			_ = ctx
			_ = req
			_ = params

			status := SessionStatus{Session: ctrl.Snapshot()}

			msg := resultSummary(status.Session)
			if metrics, ok := telemetry.Latest(); ok {
				status.Telemetry = &metrics
				served := "fresh fetch"
				if metrics.CacheHit() {
					served = "cache hit"
				}
				msg += fmt.Sprintf("; last search %gms (%s)", metrics.TotalMillis(), served)
			}
			if state, ok := scrape.Latest(); ok {
				status.Scrape = &state
				if state.Scraping {
					msg += "; background scrape in progress"
				}
			}

			return textResult(msg), status, nil
		})
	}
}
