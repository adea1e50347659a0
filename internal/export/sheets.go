// Package export writes the current result set out as a shareable report.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jobscout-ai/agent/internal/domain"
	"github.com/jobscout-ai/agent/pkg/logging"
)

// RowWriter is the slice of the sheets client the exporter needs.
// Satisfied by *sheets.Client.
type RowWriter interface {
	Append(ctx context.Context, spreadsheetID, rng string, values [][]any) error
}

var header = []any{"Title", "Company", "Location", "Experience", "CTC", "Posted", "Apply Link", "Source", "Relevance"}

// Service maps job listings to spreadsheet rows.
type Service struct {
	writer RowWriter
	logger *logging.Logger
}

func NewService(writer RowWriter, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{writer: writer, logger: logger}
}

// Configured reports whether a sheets backend is available.
func (s *Service) Configured() bool {
	return s.writer != nil
}

// ExportJobs appends one row per job (plus a header) to the given tab and
// returns the number of job rows written.
func (s *Service) ExportJobs(ctx context.Context, spreadsheetID, tab string, jobs []domain.Job) (int, error) {
	if s.writer == nil {
		return 0, fmt.Errorf("export: sheets client not configured")
	}
	if spreadsheetID == "" {
		return 0, fmt.Errorf("export: spreadsheet id is required")
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	if tab == "" {
		tab = "Jobs"
	}

	values := make([][]any, 0, len(jobs)+1)
	values = append(values, header)
	for _, job := range jobs {
		values = append(values, jobRow(job))
	}

	if err := s.writer.Append(ctx, spreadsheetID, tab+"!A1", values); err != nil {
		return 0, fmt.Errorf("export: append rows: %w", err)
	}

	s.logger.Info("exported result set", "spreadsheet_id", spreadsheetID, "tab", tab, "rows", len(jobs))
	return len(jobs), nil
}

func jobRow(job domain.Job) []any {
	posted := ""
	if !job.PostedAt.IsZero() {
		posted = job.PostedAt.Format(time.DateOnly)
	}

	return []any{
		job.Title,
		job.Company,
		job.Location,
		formatRange(job.ExperienceMin, job.ExperienceMax, "Years"),
		formatRange(job.CTCMin, job.CTCMax, "LPA"),
		posted,
		job.ApplyLink,
		job.Source,
		fmt.Sprintf("%.2f", job.RelevanceScore),
	}
}

// formatRange renders backend-supplied ranges like "10-20 LPA"; the units
// are echoed, never computed.
func formatRange(min, max float64, unit string) string {
	if min == 0 && max == 0 {
		return ""
	}
	if max == 0 || min == max {
		return fmt.Sprintf("%g %s", min, unit)
	}
	return fmt.Sprintf("%g-%g %s", min, max, unit)
}
