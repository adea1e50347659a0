package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jobscout-ai/agent/internal/domain"
	"github.com/jobscout-ai/agent/internal/session"
)

// SendFeedbackParams defines the arguments for the send_feedback tool.
type SendFeedbackParams struct {
	JobID  int64  `json:"job_id" jsonschema:"Listing id from the current result set"`
	Action string `json:"action" jsonschema:"Interaction kind: CLICK, APPLY, or DISMISS"`
}

// WithFeedback registers the send_feedback tool. The beacon is fire and
// forget: the tool reports success as long as the arguments are valid.
func WithFeedback(ctrl *session.Controller) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "send_feedback",
			Description: "Report a click, apply, or dismiss interaction for a listing",
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *SendFeedbackParams) (*sdkmcp.CallToolResult, any, error) {
			_ = req

			action := domain.FeedbackAction(params.Action)
			if !action.Valid() {
				return nil, nil, fmt.Errorf("unknown action %q, want CLICK, APPLY, or DISMISS", params.Action)
			}

			msg := fmt.Sprintf("recorded %s for job %d", action, params.JobID)
			if job, ok := findJob(ctrl.Snapshot(), params.JobID); ok {
				msg = fmt.Sprintf("recorded %s for %q at %s", action, job.Title, job.Company)
			}

			ctrl.SendFeedback(ctx, params.JobID, action)
			return textResult(msg), nil, nil
		})
	}
}
