package jobsapi

import (
	"net/http"
	"time"

	"github.com/jobscout-ai/agent/internal/domain"
	"github.com/jobscout-ai/agent/pkg/logging"
)

// TelemetrySink receives the performance snapshot extracted from a search
// response. Satisfied by *signal.TelemetryStore.
type TelemetrySink interface {
	Publish(domain.TelemetryMetrics)
}

// ScrapeSink receives the background-scrape flag extracted from a search
// response. Satisfied by *signal.ScrapeStore.
type ScrapeSink interface {
	Set(active bool)
}

// Config defines jobs backend client settings.
type Config struct {
	BaseURL    string // e.g. http://localhost:8000/api
	HTTPClient *http.Client
	Timeout    time.Duration // per-call bound, default 30s
	PageSize   int           // full-page size used for the HasMore heuristic

	Telemetry TelemetrySink
	Scrape    ScrapeSink
	Logger    *logging.Logger
}

// Client is the stateless request/response adapter to the jobs backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	pageSize   int
	telemetry  TelemetrySink
	scrape     ScrapeSink
	logger     *logging.Logger
}

// ContextUpload is the backend's answer to a resume upload.
type ContextUpload struct {
	ContextID string `json:"context_id"`
	Filename  string `json:"filename"`
	Preview   string `json:"preview,omitempty"`
}

// jobRecord is the wire shape of one listing. PostedAt stays a string here
// because the backend's timestamp format is not guaranteed to carry a zone.
type jobRecord struct {
	ID             int64              `json:"id"`
	Title          string             `json:"title"`
	Company        string             `json:"company"`
	Location       string             `json:"location"`
	ExperienceMin  float64            `json:"experience_min"`
	ExperienceMax  float64            `json:"experience_max"`
	CTCMin         float64            `json:"ctc_min"`
	CTCMax         float64            `json:"ctc_max"`
	PostedAt       string             `json:"posted_at"`
	ApplyLink      string             `json:"apply_link"`
	Source         string             `json:"source"`
	LogoURL        string             `json:"logo_url"`
	Description    string             `json:"description"`
	RelevanceScore float64            `json:"relevance_score"`
	MatchBreakdown map[string]float64 `json:"match_breakdown"`
}

type feedbackRequest struct {
	JobID      int64  `json:"job_id"`
	ActionType string `json:"action_type"`
	ContextID  string `json:"context_id,omitempty"`
}
