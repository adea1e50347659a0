package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jobscout-ai/agent/internal/domain"
	"github.com/jobscout-ai/agent/internal/session"
)

// ToggleFilterParams defines the arguments for the toggle_filter tool.
type ToggleFilterParams struct {
	Category string `json:"category" jsonschema:"Filter category: experience, ctc, skills, jobPortals, or country"`
	Value    string `json:"value" jsonschema:"Filter value to toggle; for country, the market to select"`
}

// WithFilters registers the toggle_filter tool. A toggle may trigger an
// automatic re-search; the returned snapshot reflects the final state.
func WithFilters(ctrl *session.Controller) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "toggle_filter",
			Description: "Toggle a filter value on or off; non-empty sessions re-search automatically",
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *ToggleFilterParams) (*sdkmcp.CallToolResult, any, error) {
			_ = req

			if params.Category == "" || params.Value == "" {
				return nil, nil, fmt.Errorf("category and value are required")
			}

			err := ctrl.ToggleFilter(ctx, domain.FilterCategory(params.Category), params.Value)
			snap := ctrl.Snapshot()
			if err != nil {
				if snap.Error != "" {
					// The toggle applied but the follow-up search failed.
					return textResult(snap.Error), snap, nil
				}
				return nil, nil, err
			}
			return textResult(resultSummary(snap)), snap, nil
		})
	}
}
