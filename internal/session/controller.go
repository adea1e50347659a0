// Package session owns the authoritative search session: query text,
// locations, filters, country, resume context, pagination, and the current
// result set. The controller is the only component allowed to decide "issue
// a new request now".
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/jobscout-ai/agent/internal/domain"
	"github.com/jobscout-ai/agent/pkg/logging"
)

// User-facing messages, kept static by design: every transport failure looks
// the same to the user.
const (
	searchFailedMessage = "Failed to fetch jobs. Please try again."
	pageFailedMessage   = "Failed to fetch page"
)

// Searcher executes one backend search. Satisfied by *jobsapi.Client.
type Searcher interface {
	Search(ctx context.Context, query domain.SearchQuery) (domain.SearchResult, error)
}

// FeedbackSender forwards a user interaction to the feedback beacon.
type FeedbackSender interface {
	SendFeedback(ctx context.Context, jobID int64, action domain.FeedbackAction, contextID string)
}

// Selection is a full filter override for an explicit search, mirroring the
// sidebar state. An empty Country keeps the session's current value as the
// inference fallback.
type Selection struct {
	Filters domain.Filters
	Country string
}

// Snapshot is an immutable view of the session for the consuming surface.
type Snapshot struct {
	Text      string         `json:"text"`
	Locations []string       `json:"locations,omitempty"`
	Filters   domain.Filters `json:"filters"`
	Country   string         `json:"country"`
	ContextID string         `json:"context_id,omitempty"`
	Page      int            `json:"page"`
	Jobs      []domain.Job   `json:"jobs"`
	HasMore   bool           `json:"has_more"`
	Loading   bool           `json:"loading"`
	Error     string         `json:"error,omitempty"`
}

// Controller is the search session state machine. All fields live for the
// process lifetime; each outgoing request is tagged with a monotonically
// increasing sequence number and only the response of the most recently
// issued request is ever committed.
type Controller struct {
	searcher Searcher
	feedback FeedbackSender
	logger   *logging.Logger

	mu        sync.Mutex
	text      string
	locations []string
	filters   domain.Filters
	country   string
	contextID string
	page      int
	jobs      []domain.Job
	hasMore   bool
	loading   bool
	errMsg    string
	seq       uint64
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithFeedbackSender(sender FeedbackSender) Option {
	return func(c *Controller) {
		c.feedback = sender
	}
}

func WithDefaultCountry(country string) Option {
	return func(c *Controller) {
		c.country = country
	}
}

// New builds a session controller around the given searcher.
func New(searcher Searcher, opts ...Option) (*Controller, error) {
	if searcher == nil {
		return nil, fmt.Errorf("session: searcher is required")
	}

	c := &Controller{
		searcher: searcher,
		logger:   logging.NewNop(),
		country:  domain.CountryIndia,
		page:     1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SubmitSearch runs an explicit search: stores text and locations, resets to
// page 1, resolves the country from the locations, and issues one request.
// The optional selection replaces the live filters for this and subsequent
// searches.
func (c *Controller) SubmitSearch(ctx context.Context, text string, locations []string, override *Selection) error {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.page = 1
	c.text = text
	c.locations = cloneStrings(locations)

	previous := c.country
	if override != nil {
		c.filters = override.Filters.Clone()
		if override.Country != "" {
			previous = override.Country
		}
	}
	c.country = domain.ResolveCountry(c.locations, previous)

	seq, query := c.issueLocked(1)
	c.mu.Unlock()

	return c.execute(ctx, seq, query, searchFailedMessage)
}

// ToggleFilter mutates one filter selection and dispatches the change through
// the transition policy, which decides whether a search fires. The country
// pseudo-category is set directly, without location inference.
func (c *Controller) ToggleFilter(ctx context.Context, category domain.FilterCategory, value string) error {
	c.mu.Lock()

	if category == domain.FilterCountry {
		if value != domain.CountryIndia && value != domain.CountryUAE {
			c.mu.Unlock()
			return fmt.Errorf("session: unknown country %q", value)
		}
		c.country = value
	} else if !c.filters.Toggle(category, value) {
		c.mu.Unlock()
		return fmt.Errorf("session: unknown filter category %q", category)
	}

	return c.dispatchLocked(ctx, eventFilterChanged)
}

// SetContext stores (or, with an empty id, clears) the resume-context
// correlation. Text and filters are never touched. The transition policy
// decides whether a search fires, and fires it at most once.
func (c *Controller) SetContext(ctx context.Context, contextID string) error {
	c.mu.Lock()
	if contextID == c.contextID {
		c.mu.Unlock()
		return nil
	}
	c.contextID = contextID

	ev := eventContextArrived
	if contextID == "" {
		ev = eventContextCleared
	}
	return c.dispatchLocked(ctx, ev)
}

// Paginate fetches the requested page with every other session field exactly
// as it stands. Country inference never runs here.
func (c *Controller) Paginate(ctx context.Context, page int) error {
	if page < 1 {
		return fmt.Errorf("session: page must be positive, got %d", page)
	}

	c.mu.Lock()
	c.loading = true
	c.page = page
	seq, query := c.issueLocked(page)
	c.mu.Unlock()

	return c.execute(ctx, seq, query, pageFailedMessage)
}

// SendFeedback forwards an interaction to the beacon with the session's
// current context id. Best effort, nothing surfaces.
func (c *Controller) SendFeedback(ctx context.Context, jobID int64, action domain.FeedbackAction) {
	if c.feedback == nil {
		return
	}

	c.mu.Lock()
	contextID := c.contextID
	c.mu.Unlock()

	c.feedback.SendFeedback(ctx, jobID, action, contextID)
}

// Snapshot returns a defensive copy of the session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	jobs := make([]domain.Job, len(c.jobs))
	copy(jobs, c.jobs)

	return Snapshot{
		Text:      c.text,
		Locations: cloneStrings(c.locations),
		Filters:   c.filters.Clone(),
		Country:   c.country,
		ContextID: c.contextID,
		Page:      c.page,
		Jobs:      jobs,
		HasMore:   c.hasMore,
		Loading:   c.loading,
		Error:     c.errMsg,
	}
}

// dispatchLocked runs the transition policy for a mutation already applied
// under the lock, issuing at most one search. It releases the lock.
func (c *Controller) dispatchLocked(ctx context.Context, ev event) error {
	in := policyInput{
		vacuous:    c.text == "" && c.filters.Empty() && c.contextID == "",
		hasText:    c.text != "",
		hasResults: len(c.jobs) > 0,
	}

	switch decide(ev, in) {
	case actionRefresh:
		c.loading = true
		c.errMsg = ""
		c.page = 1
		c.country = domain.ResolveCountry(c.locations, c.country)
		seq, query := c.issueLocked(1)
		c.mu.Unlock()
		return c.execute(ctx, seq, query, searchFailedMessage)

	case actionRecommend:
		c.loading = true
		c.errMsg = ""
		c.page = 1
		seq := c.nextSeqLocked()
		query := domain.SearchQuery{
			Filters:   c.filters.Clone(),
			Country:   c.country,
			ContextID: c.contextID,
			Page:      1,
		}
		c.mu.Unlock()
		c.logger.Info("context arrived on empty session, fetching recommended jobs", "context_id", query.ContextID)
		return c.execute(ctx, seq, query, searchFailedMessage)

	default:
		c.mu.Unlock()
		return nil
	}
}

// issueLocked builds the request query from the live session fields and
// allocates its sequence number.
func (c *Controller) issueLocked(page int) (uint64, domain.SearchQuery) {
	return c.nextSeqLocked(), domain.SearchQuery{
		Text:      c.text,
		Locations: cloneStrings(c.locations),
		Filters:   c.filters.Clone(),
		Country:   c.country,
		ContextID: c.contextID,
		Page:      page,
	}
}

func (c *Controller) nextSeqLocked() uint64 {
	c.seq++
	return c.seq
}

// execute runs the request and commits its outcome only if no newer request
// was initiated in the meantime. Superseded responses, successful or not,
// are discarded silently.
func (c *Controller) execute(ctx context.Context, seq uint64, query domain.SearchQuery, failMsg string) error {
	result, err := c.searcher.Search(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug("discarding superseded search response", "seq", seq, "latest", c.seq)
		return nil
	}

	if err != nil {
		c.logger.Warn("search failed", "err", err, "page", query.Page)
		c.errMsg = failMsg
		c.loading = false
		return err
	}

	c.jobs = result.Jobs
	c.hasMore = result.HasMore
	c.errMsg = ""
	c.loading = false
	return nil
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
