package tools

import (
	"context"
	"encoding/base64"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jobscout-ai/agent/internal/session"
	"github.com/jobscout-ai/agent/pkg/jobsapi"
)

// Uploader submits a resume document to the backend. Satisfied by
// *jobsapi.Client.
type Uploader interface {
	UploadContext(ctx context.Context, data []byte, filename string) (jobsapi.ContextUpload, error)
}

// UploadResumeParams defines the arguments for the upload_resume tool.
type UploadResumeParams struct {
	Filename      string `json:"filename" jsonschema:"Original file name, e.g. resume.pdf"`
	ContentBase64 string `json:"content_base64" jsonschema:"Base64-encoded file bytes"`
}

// UploadResumeResult is the structured answer of upload_resume.
type UploadResumeResult struct {
	ContextID string `json:"context_id"`
	Filename  string `json:"filename"`
	Preview   string `json:"preview,omitempty"`
}

// WithContext registers the upload_resume and clear_context tools.
func WithContext(ctrl *session.Controller, uploader Uploader) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "upload_resume",
			Description: "Upload a resume to derive a search context; may trigger a recommended-jobs search",
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *UploadResumeParams) (*sdkmcp.CallToolResult, any, error) {
			_ = req

			data, err := base64.StdEncoding.DecodeString(params.ContentBase64)
			if err != nil {
				return nil, nil, fmt.Errorf("content_base64 is not valid base64: %w", err)
			}

			upload, err := uploader.UploadContext(ctx, data, params.Filename)
			if err != nil {
				// No partial context state is retained on a failed upload.
				return nil, nil, fmt.Errorf("failed to upload resume: %w", err)
			}

			if err := ctrl.SetContext(ctx, upload.ContextID); err != nil {
				return nil, nil, err
			}

			result := UploadResumeResult{
				ContextID: upload.ContextID,
				Filename:  upload.Filename,
				Preview:   upload.Preview,
			}
			return textResult(fmt.Sprintf("resume %s active as search context", upload.Filename)), result, nil
		})

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "clear_context",
			Description: "Drop the active resume context; the query and filters stay as they are",
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *struct{}) (*sdkmcp.CallToolResult, any, error) {
			_ = req
			_ = params

			if err := ctrl.SetContext(ctx, ""); err != nil {
				return nil, nil, err
			}
			return textResult("resume context cleared"), ctrl.Snapshot(), nil
		})
	}
}
