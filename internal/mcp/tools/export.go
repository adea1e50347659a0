package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jobscout-ai/agent/internal/export"
	"github.com/jobscout-ai/agent/internal/session"
)

// ExportResultsParams defines the arguments for the export_results tool.
type ExportResultsParams struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document id"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name, defaults to Jobs"`
}

// ExportResultsResult is the structured answer of export_results.
type ExportResultsResult struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Tab           string `json:"tab,omitempty"`
	RowsWritten   int    `json:"rows_written"`
}

// WithExport registers the export_results tool.
func WithExport(ctrl *session.Controller, exporter *export.Service) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "export_results",
			Description: "Write the current result set to a Google Sheets report",
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *ExportResultsParams) (*sdkmcp.CallToolResult, any, error) {
			_ = req

			if !exporter.Configured() {
				return nil, nil, fmt.Errorf("sheets export not configured (set GOOGLE_SHEETS_CREDENTIALS_PATH)")
			}

			snap := ctrl.Snapshot()
			written, err := exporter.ExportJobs(ctx, params.SpreadsheetID, params.Tab, snap.Jobs)
			if err != nil {
				return nil, nil, err
			}

			result := ExportResultsResult{
				SpreadsheetID: params.SpreadsheetID,
				Tab:           params.Tab,
				RowsWritten:   written,
			}
			return textResult(fmt.Sprintf("exported %d job(s)", written)), result, nil
		})
	}
}
