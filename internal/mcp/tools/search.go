package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jobscout-ai/agent/internal/domain"
	"github.com/jobscout-ai/agent/internal/session"
)

// SearchJobsParams defines the arguments for the search_jobs tool.
type SearchJobsParams struct {
	Query     string   `json:"query" jsonschema:"Free-text job search query; empty means a context-driven default search"`
	Locations []string `json:"locations,omitempty" jsonschema:"Selected location labels, e.g. Bangalore or Dubai"`
}

// PaginateParams defines the arguments for the paginate tool.
type PaginateParams struct {
	Page int `json:"page" jsonschema:"1-based page number to fetch with the current criteria"`
}

// WithSearch registers the search_jobs and paginate tools.
func WithSearch(ctrl *session.Controller) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "search_jobs",
			Description: "Run a job search with the given query and locations, resetting to page 1",
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *SearchJobsParams) (*sdkmcp.CallToolResult, any, error) {
			_ = req

			err := ctrl.SubmitSearch(ctx, params.Query, params.Locations, nil)
			snap := ctrl.Snapshot()
			if err != nil {
				return textResult(snap.Error), snap, nil
			}
			return textResult(resultSummary(snap)), snap, nil
		})

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "paginate",
			Description: "Fetch another page of the current search without changing any criteria",
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *PaginateParams) (*sdkmcp.CallToolResult, any, error) {
			_ = req

			if err := ctrl.Paginate(ctx, params.Page); err != nil {
				snap := ctrl.Snapshot()
				if snap.Error != "" {
					return textResult(snap.Error), snap, nil
				}
				return nil, nil, err
			}
			snap := ctrl.Snapshot()
			return textResult(resultSummary(snap)), snap, nil
		})
	}
}

func resultSummary(snap session.Snapshot) string {
	msg := fmt.Sprintf("%d jobs on page %d", len(snap.Jobs), snap.Page)
	if snap.HasMore {
		msg += " (more available)"
	}
	return msg
}

func findJob(snap session.Snapshot, id int64) (domain.Job, bool) {
	for _, job := range snap.Jobs {
		if job.ID == id {
			return job, true
		}
	}
	return domain.Job{}, false
}
