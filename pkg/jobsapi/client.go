// Package jobsapi talks to the job listing backend: the search endpoint,
// the resume-context upload endpoint, and the fire-and-forget feedback
// beacon. Response metadata headers are routed to the telemetry and scrape
// sinks as a side effect of every successful search.
package jobsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobscout-ai/agent/internal/domain"
	"github.com/jobscout-ai/agent/pkg/logging"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultPageSize = 40

	telemetryHeader = "X-Debug-Info"
	scrapeHeader    = "X-Background-Scrape"
	requestIDHeader = "X-Request-ID"
)

// NewClient instantiates a jobs backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("jobsapi: base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		timeout:    timeout,
		pageSize:   pageSize,
		telemetry:  cfg.Telemetry,
		scrape:     cfg.Scrape,
		logger:     logger,
	}, nil
}

// Search issues one search request. On success it also routes the telemetry
// and scrape headers to their sinks; a malformed telemetry header is logged
// and swallowed, never surfaced as a search error.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) (domain.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildSearchURL(query), nil)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("jobsapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("jobsapi: search request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.SearchResult{}, fmt.Errorf("jobsapi: search error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.routeMetadata(resp.Header)

	var records []jobRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return domain.SearchResult{}, fmt.Errorf("jobsapi: decode response: %w", err)
	}

	jobs := make([]domain.Job, 0, len(records))
	for _, rec := range records {
		jobs = append(jobs, mapRecord(rec))
	}

	return domain.SearchResult{
		Jobs:    jobs,
		HasMore: len(jobs) >= c.pageSize,
	}, nil
}

// UploadContext submits a resume document and returns the opaque context id
// the backend derives from it.
func (c *Client) UploadContext(ctx context.Context, data []byte, filename string) (ContextUpload, error) {
	if len(data) == 0 {
		return ContextUpload{}, fmt.Errorf("jobsapi: upload payload is empty")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return ContextUpload{}, fmt.Errorf("jobsapi: build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return ContextUpload{}, fmt.Errorf("jobsapi: write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return ContextUpload{}, fmt.Errorf("jobsapi: finalize upload form: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/context/upload", &buf)
	if err != nil {
		return ContextUpload{}, fmt.Errorf("jobsapi: build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ContextUpload{}, fmt.Errorf("jobsapi: upload request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return ContextUpload{}, fmt.Errorf("jobsapi: upload error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var upload ContextUpload
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return ContextUpload{}, fmt.Errorf("jobsapi: decode upload response: %w", err)
	}

	return upload, nil
}

// SendFeedback reports a user interaction. Best effort: failures are logged
// and swallowed, the caller is never blocked on the outcome.
func (c *Client) SendFeedback(ctx context.Context, jobID int64, action domain.FeedbackAction, contextID string) {
	if !action.Valid() {
		c.logger.Warn("dropping feedback with unknown action", "action", string(action), "job_id", jobID)
		return
	}

	payload, err := json.Marshal(feedbackRequest{
		JobID:      jobID,
		ActionType: string(action),
		ContextID:  contextID,
	})
	if err != nil {
		c.logger.Warn("failed to encode feedback", "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/feedback", bytes.NewReader(payload))
	if err != nil {
		c.logger.Warn("failed to build feedback request", "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("feedback request failed", "err", err, "job_id", jobID)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn("feedback rejected", "status", resp.StatusCode, "job_id", jobID)
	}
}

func (c *Client) buildSearchURL(query domain.SearchQuery) string {
	page := query.Page
	if page < 1 {
		page = 1
	}

	values := url.Values{}
	values.Set("query", query.Text)
	values.Set("country", query.Country)
	if query.ContextID != "" {
		values.Set("context_id", query.ContextID)
	}
	values.Set("page", strconv.Itoa(page))

	appendAll(values, "locations", query.Locations)
	appendAll(values, "experience", query.Filters.Experience)
	appendAll(values, "ctc", query.Filters.CTC)
	appendAll(values, "skills", query.Filters.Skills)
	appendAll(values, "jobPortals", query.Filters.JobPortals)

	return c.baseURL + "/jobs?" + values.Encode()
}

// appendAll adds one repeated parameter per value; an empty category is
// omitted entirely, never sent as an empty entry.
func appendAll(values url.Values, key string, entries []string) {
	for _, entry := range entries {
		values.Add(key, entry)
	}
}

func (c *Client) routeMetadata(header http.Header) {
	if raw := header.Get(telemetryHeader); raw != "" && c.telemetry != nil {
		var metrics domain.TelemetryMetrics
		if err := json.Unmarshal([]byte(raw), &metrics); err != nil {
			c.logger.Warn("failed to parse telemetry header", "err", err)
		} else {
			c.telemetry.Publish(metrics)
		}
	}

	if header.Get(scrapeHeader) == "true" && c.scrape != nil {
		c.scrape.Set(true)
	}
}

func mapRecord(rec jobRecord) domain.Job {
	job := domain.Job{
		ID:             rec.ID,
		Title:          rec.Title,
		Company:        rec.Company,
		Location:       rec.Location,
		ExperienceMin:  rec.ExperienceMin,
		ExperienceMax:  rec.ExperienceMax,
		CTCMin:         rec.CTCMin,
		CTCMax:         rec.CTCMax,
		ApplyLink:      rec.ApplyLink,
		Source:         rec.Source,
		LogoURL:        rec.LogoURL,
		Description:    rec.Description,
		RelevanceScore: rec.RelevanceScore,
		MatchBreakdown: rec.MatchBreakdown,
	}

	if rec.PostedAt != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
			if ts, err := time.Parse(layout, rec.PostedAt); err == nil {
				job.PostedAt = ts
				break
			}
		}
	}

	return job
}
