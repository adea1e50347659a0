package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout-ai/agent/internal/domain"
)

type fakeSearcher struct {
	mu      sync.Mutex
	calls   []domain.SearchQuery
	respond func(domain.SearchQuery) (domain.SearchResult, error)
}

func (f *fakeSearcher) Search(_ context.Context, query domain.SearchQuery) (domain.SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	respond := f.respond
	f.mu.Unlock()

	if respond != nil {
		return respond(query)
	}
	return domain.SearchResult{}, nil
}

func (f *fakeSearcher) queries(t *testing.T) []domain.SearchQuery {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.SearchQuery, len(f.calls))
	copy(out, f.calls)
	return out
}

type fakeBeacon struct {
	jobID     int64
	action    domain.FeedbackAction
	contextID string
}

func (f *fakeBeacon) SendFeedback(_ context.Context, jobID int64, action domain.FeedbackAction, contextID string) {
	f.jobID = jobID
	f.action = action
	f.contextID = contextID
}

func newController(t *testing.T, searcher Searcher, opts ...Option) *Controller {
	t.Helper()
	c, err := New(searcher, opts...)
	require.NoError(t, err)
	return c
}

func jobsPage(n int) []domain.Job {
	jobs := make([]domain.Job, n)
	for i := range jobs {
		jobs[i] = domain.Job{ID: int64(i + 1), Title: fmt.Sprintf("job-%d", i+1), Company: "Acme"}
	}
	return jobs
}

func TestNewRequiresSearcher(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestSubmitSearchResetsPageAndResolvesCountry(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher)

	require.NoError(t, c.Paginate(context.Background(), 5))
	require.NoError(t, c.SubmitSearch(context.Background(), "ai engineer", []string{"Dubai"}, nil))

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.Page, "submit always starts from page 1")
	assert.Equal(t, "ai engineer", snap.Text)
	assert.Equal(t, domain.CountryUAE, snap.Country)
	assert.False(t, snap.Loading)

	queries := searcher.queries(t)
	require.Len(t, queries, 2)
	last := queries[1]
	assert.Equal(t, 1, last.Page)
	assert.Equal(t, domain.CountryUAE, last.Country)
	assert.Equal(t, []string{"Dubai"}, last.Locations)
}

func TestSubmitSearchAppliesFilterOverride(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher)

	override := &Selection{
		Filters: domain.Filters{Skills: []string{"Python"}},
		Country: domain.CountryUAE,
	}
	require.NoError(t, c.SubmitSearch(context.Background(), "etl", nil, override))

	queries := searcher.queries(t)
	require.Len(t, queries, 1)
	assert.Equal(t, []string{"Python"}, queries[0].Filters.Skills)
	// No location signal, so the override country stands.
	assert.Equal(t, domain.CountryUAE, queries[0].Country)
}

func TestPaginateLeavesCriteriaUntouched(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher)

	require.NoError(t, c.SubmitSearch(context.Background(), "engineer", []string{"Mumbai"}, nil))
	require.NoError(t, c.ToggleFilter(context.Background(), domain.FilterSkills, "SQL"))
	require.NoError(t, c.SetContext(context.Background(), "ctx-7"))

	before := c.Snapshot()
	require.NoError(t, c.Paginate(context.Background(), 4))
	after := c.Snapshot()

	assert.Equal(t, before.Text, after.Text)
	assert.Equal(t, before.Locations, after.Locations)
	assert.Equal(t, before.Filters, after.Filters)
	assert.Equal(t, before.Country, after.Country)
	assert.Equal(t, before.ContextID, after.ContextID)
	assert.Equal(t, 4, after.Page)

	queries := searcher.queries(t)
	last := queries[len(queries)-1]
	assert.Equal(t, 4, last.Page)
	assert.Equal(t, "engineer", last.Text)
	assert.Equal(t, []string{"SQL"}, last.Filters.Skills)
	assert.Equal(t, "ctx-7", last.ContextID)
}

func TestPaginateRejectsNonPositivePage(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher)

	assert.Error(t, c.Paginate(context.Background(), 0))
	assert.Empty(t, searcher.queries(t))
}

func TestToggleFilterFiresOneSearchPerToggle(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher)

	require.NoError(t, c.SubmitSearch(context.Background(), "engineer", nil, nil))
	require.NoError(t, c.ToggleFilter(context.Background(), domain.FilterSkills, "Python"))
	require.NoError(t, c.ToggleFilter(context.Background(), domain.FilterSkills, "Python"))

	queries := searcher.queries(t)
	require.Len(t, queries, 3, "submit plus one search per toggle")

	withSkill := queries[1]
	assert.Equal(t, []string{"Python"}, withSkill.Filters.Skills)
	assert.Equal(t, 1, withSkill.Page)

	withoutSkill := queries[2]
	assert.Empty(t, withoutSkill.Filters.Skills, "removed category must not be sent")
	assert.Equal(t, 1, withoutSkill.Page)
}

func TestToggleFilterOnVacuousSessionStaysQuiet(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher)

	// Adding then removing the only criterion: the second toggle leaves a
	// vacuous session and must not fire.
	require.NoError(t, c.ToggleFilter(context.Background(), domain.FilterSkills, "AI"))
	require.NoError(t, c.ToggleFilter(context.Background(), domain.FilterSkills, "AI"))

	assert.Len(t, searcher.queries(t), 1)
}

func TestToggleFilterCountrySetsDirectly(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher)

	require.NoError(t, c.SubmitSearch(context.Background(), "engineer", []string{"Pune"}, nil))
	require.NoError(t, c.ToggleFilter(context.Background(), domain.FilterCountry, domain.CountryUAE))

	snap := c.Snapshot()
	assert.Equal(t, domain.CountryUAE, snap.Country)

	assert.Error(t, c.ToggleFilter(context.Background(), domain.FilterCountry, "Atlantis"))
	assert.Error(t, c.ToggleFilter(context.Background(), "bogus", "x"))
}

func TestContextArrivalOnEmptySessionRecommends(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher)

	require.NoError(t, c.SetContext(context.Background(), "ctx-1"))

	queries := searcher.queries(t)
	require.Len(t, queries, 1, "exactly one recommended-jobs search")
	assert.Equal(t, "", queries[0].Text)
	assert.Empty(t, queries[0].Locations)
	assert.Equal(t, "ctx-1", queries[0].ContextID)
	assert.Equal(t, 1, queries[0].Page)
}

func TestContextArrivalWithQueryRefreshes(t *testing.T) {
	searcher := &fakeSearcher{
		respond: func(domain.SearchQuery) (domain.SearchResult, error) {
			return domain.SearchResult{Jobs: jobsPage(3)}, nil
		},
	}
	c := newController(t, searcher)

	require.NoError(t, c.SubmitSearch(context.Background(), "engineer", []string{"Chennai"}, nil))
	require.NoError(t, c.SetContext(context.Background(), "ctx-2"))

	queries := searcher.queries(t)
	require.Len(t, queries, 2)
	refreshed := queries[1]
	assert.Equal(t, "engineer", refreshed.Text, "context arrival keeps the query")
	assert.Equal(t, "ctx-2", refreshed.ContextID)
	assert.Equal(t, 1, refreshed.Page)
}

func TestSetContextSameValueIsNoop(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher)

	require.NoError(t, c.SetContext(context.Background(), "ctx-1"))
	require.NoError(t, c.SetContext(context.Background(), "ctx-1"))

	assert.Len(t, searcher.queries(t), 1)
}

func TestClearContextKeepsTextAndFilters(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher)

	require.NoError(t, c.SubmitSearch(context.Background(), "engineer", nil, nil))
	require.NoError(t, c.ToggleFilter(context.Background(), domain.FilterCTC, "20-30 LPA"))
	require.NoError(t, c.SetContext(context.Background(), "ctx-3"))
	require.NoError(t, c.SetContext(context.Background(), ""))

	snap := c.Snapshot()
	assert.Empty(t, snap.ContextID)
	assert.Equal(t, "engineer", snap.Text)
	assert.Equal(t, []string{"20-30 LPA"}, snap.Filters.CTC)

	queries := searcher.queries(t)
	last := queries[len(queries)-1]
	assert.Empty(t, last.ContextID, "cleared context must not be sent")
	assert.Equal(t, "engineer", last.Text)
}

func TestSearchFailureKeepsPreviousResults(t *testing.T) {
	fail := false
	searcher := &fakeSearcher{
		respond: func(domain.SearchQuery) (domain.SearchResult, error) {
			if fail {
				return domain.SearchResult{}, fmt.Errorf("connection refused")
			}
			return domain.SearchResult{Jobs: jobsPage(2), HasMore: true}, nil
		},
	}
	c := newController(t, searcher)

	require.NoError(t, c.SubmitSearch(context.Background(), "engineer", nil, nil))
	require.Len(t, c.Snapshot().Jobs, 2)

	fail = true
	err := c.Paginate(context.Background(), 2)
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, pageFailedMessage, snap.Error)
	assert.Len(t, snap.Jobs, 2, "previous result set stays rendered")
	assert.False(t, snap.Loading, "loading clears on every outcome")

	fail = false
	require.NoError(t, c.Paginate(context.Background(), 2))
	assert.Empty(t, c.Snapshot().Error, "recovery clears the message")
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	gateA := make(chan struct{})
	started := make(chan struct{})
	searcher := &fakeSearcher{}
	searcher.respond = func(q domain.SearchQuery) (domain.SearchResult, error) {
		if q.Text == "slow" {
			close(started)
			<-gateA
			return domain.SearchResult{Jobs: []domain.Job{{ID: 100, Title: "stale"}}}, nil
		}
		return domain.SearchResult{Jobs: []domain.Job{{ID: 200, Title: "fresh"}}}, nil
	}
	c := newController(t, searcher)

	done := make(chan error, 1)
	go func() {
		done <- c.SubmitSearch(context.Background(), "slow", nil, nil)
	}()
	<-started

	// B starts after A and finishes first.
	require.NoError(t, c.SubmitSearch(context.Background(), "fast", nil, nil))
	require.Equal(t, "fresh", c.Snapshot().Jobs[0].Title)

	// A's late response must be dropped on the floor.
	close(gateA)
	require.NoError(t, <-done)

	snap := c.Snapshot()
	require.Len(t, snap.Jobs, 1)
	assert.Equal(t, "fresh", snap.Jobs[0].Title)
	assert.False(t, snap.Loading)
}

func TestStaleFailureDoesNotSurface(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	searcher := &fakeSearcher{}
	searcher.respond = func(q domain.SearchQuery) (domain.SearchResult, error) {
		if q.Text == "doomed" {
			close(started)
			<-gate
			return domain.SearchResult{}, fmt.Errorf("timeout")
		}
		return domain.SearchResult{Jobs: jobsPage(1)}, nil
	}
	c := newController(t, searcher)

	done := make(chan error, 1)
	go func() {
		done <- c.SubmitSearch(context.Background(), "doomed", nil, nil)
	}()
	<-started

	require.NoError(t, c.SubmitSearch(context.Background(), "fine", nil, nil))

	close(gate)
	assert.NoError(t, <-done, "superseded failures are swallowed")
	assert.Empty(t, c.Snapshot().Error)
}

func TestLoadingVisibleWhileRequestInFlight(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	searcher := &fakeSearcher{
		respond: func(domain.SearchQuery) (domain.SearchResult, error) {
			close(started)
			<-gate
			return domain.SearchResult{}, nil
		},
	}
	c := newController(t, searcher)

	done := make(chan error, 1)
	go func() {
		done <- c.SubmitSearch(context.Background(), "engineer", nil, nil)
	}()
	<-started

	assert.True(t, c.Snapshot().Loading)
	close(gate)
	require.NoError(t, <-done)

	require.Eventually(t, func() bool {
		return !c.Snapshot().Loading
	}, time.Second, 5*time.Millisecond)
}

func TestSendFeedbackCarriesSessionContext(t *testing.T) {
	searcher := &fakeSearcher{}
	beacon := &fakeBeacon{}
	c := newController(t, searcher, WithFeedbackSender(beacon))

	require.NoError(t, c.SetContext(context.Background(), "ctx-9"))
	c.SendFeedback(context.Background(), 33, domain.ActionClick)

	assert.Equal(t, int64(33), beacon.jobID)
	assert.Equal(t, domain.ActionClick, beacon.action)
	assert.Equal(t, "ctx-9", beacon.contextID)
}

func TestDefaultCountryOption(t *testing.T) {
	searcher := &fakeSearcher{}
	c := newController(t, searcher, WithDefaultCountry(domain.CountryUAE))
	assert.Equal(t, domain.CountryUAE, c.Snapshot().Country)
}
