package export

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout-ai/agent/internal/domain"
)

type fakeWriter struct {
	spreadsheetID string
	rng           string
	values        [][]any
	err           error
}

func (f *fakeWriter) Append(_ context.Context, spreadsheetID, rng string, values [][]any) error {
	f.spreadsheetID = spreadsheetID
	f.rng = rng
	f.values = values
	return f.err
}

func TestExportJobs(t *testing.T) {
	writer := &fakeWriter{}
	svc := NewService(writer, nil)

	jobs := []domain.Job{
		{
			Title:          "Data Engineer",
			Company:        "Acme",
			Location:       "Bangalore",
			ExperienceMin:  3,
			ExperienceMax:  6,
			CTCMin:         10,
			CTCMax:         20,
			PostedAt:       time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			ApplyLink:      "https://example.com/j/1",
			Source:         "LinkedIn",
			RelevanceScore: 0.87,
		},
		{Title: "ML Engineer", Company: "Globex"},
	}

	n, err := svc.ExportJobs(context.Background(), "sheet-1", "", jobs)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, "sheet-1", writer.spreadsheetID)
	assert.Equal(t, "Jobs!A1", writer.rng)
	require.Len(t, writer.values, 3, "header plus one row per job")

	first := writer.values[1]
	assert.Equal(t, "Data Engineer", first[0])
	assert.Equal(t, "3-6 Years", first[3])
	assert.Equal(t, "10-20 LPA", first[4])
	assert.Equal(t, "2026-02-10", first[5])

	second := writer.values[2]
	assert.Equal(t, "", second[3], "missing ranges render empty")
	assert.Equal(t, "", second[5])
}

func TestExportJobsEmptyResultSet(t *testing.T) {
	writer := &fakeWriter{}
	svc := NewService(writer, nil)

	n, err := svc.ExportJobs(context.Background(), "sheet-1", "Jobs", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Nil(t, writer.values, "no write for an empty result set")
}

func TestExportJobsUnconfigured(t *testing.T) {
	svc := NewService(nil, nil)
	assert.False(t, svc.Configured())

	_, err := svc.ExportJobs(context.Background(), "sheet-1", "Jobs", []domain.Job{{Title: "x"}})
	assert.Error(t, err)
}

func TestExportJobsWriterFailure(t *testing.T) {
	writer := &fakeWriter{err: fmt.Errorf("quota exceeded")}
	svc := NewService(writer, nil)

	_, err := svc.ExportJobs(context.Background(), "sheet-1", "Jobs", []domain.Job{{Title: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
