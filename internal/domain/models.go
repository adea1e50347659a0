package domain

import "time"

// Market regions understood by the backend.
const (
	CountryIndia = "India"
	CountryUAE   = "UAE"
)

// FeedbackAction is a user interaction kind reported to the feedback beacon.
type FeedbackAction string

const (
	ActionClick   FeedbackAction = "CLICK"
	ActionApply   FeedbackAction = "APPLY"
	ActionDismiss FeedbackAction = "DISMISS"
)

func (a FeedbackAction) Valid() bool {
	switch a {
	case ActionClick, ActionApply, ActionDismiss:
		return true
	}
	return false
}

// FilterCategory names a multi-select filter group. Country is a
// pseudo-category: single-valued and set directly, never toggled.
type FilterCategory string

const (
	FilterExperience FilterCategory = "experience"
	FilterCTC        FilterCategory = "ctc"
	FilterSkills     FilterCategory = "skills"
	FilterPortals    FilterCategory = "jobPortals"
	FilterCountry    FilterCategory = "country"
)

// Filters holds the multi-select filter groups of a search session.
// Each slice preserves insertion order for display; membership is what
// matters on the wire.
type Filters struct {
	Experience []string `json:"experience"`
	CTC        []string `json:"ctc"`
	Skills     []string `json:"skills"`
	JobPortals []string `json:"jobPortals"`
}

// Empty reports whether no filter value is selected in any group.
func (f Filters) Empty() bool {
	return len(f.Experience) == 0 && len(f.CTC) == 0 && len(f.Skills) == 0 && len(f.JobPortals) == 0
}

// Clone returns a deep copy so a session snapshot cannot alias live state.
func (f Filters) Clone() Filters {
	return Filters{
		Experience: cloneStrings(f.Experience),
		CTC:        cloneStrings(f.CTC),
		Skills:     cloneStrings(f.Skills),
		JobPortals: cloneStrings(f.JobPortals),
	}
}

// Toggle flips membership of value in the named group: present values are
// removed, absent ones appended. Returns false for an unknown category.
func (f *Filters) Toggle(category FilterCategory, value string) bool {
	var group *[]string
	switch category {
	case FilterExperience:
		group = &f.Experience
	case FilterCTC:
		group = &f.CTC
	case FilterSkills:
		group = &f.Skills
	case FilterPortals:
		group = &f.JobPortals
	default:
		return false
	}

	for i, v := range *group {
		if v == value {
			*group = append((*group)[:i], (*group)[i+1:]...)
			return true
		}
	}
	*group = append(*group, value)
	return true
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// SearchQuery is the value object serialized into one backend request.
// It is built fresh per request and never mutated afterwards.
type SearchQuery struct {
	Text      string
	Locations []string
	Filters   Filters
	Country   string
	ContextID string
	Page      int
}

// Job is one listing as returned by the backend.
type Job struct {
	ID             int64              `json:"id"`
	Title          string             `json:"title"`
	Company        string             `json:"company"`
	Location       string             `json:"location,omitempty"`
	ExperienceMin  float64            `json:"experience_min,omitempty"`
	ExperienceMax  float64            `json:"experience_max,omitempty"`
	CTCMin         float64            `json:"ctc_min,omitempty"`
	CTCMax         float64            `json:"ctc_max,omitempty"`
	PostedAt       time.Time          `json:"posted_at,omitempty"`
	ApplyLink      string             `json:"apply_link,omitempty"`
	Source         string             `json:"source,omitempty"`
	LogoURL        string             `json:"logo_url,omitempty"`
	Description    string             `json:"description,omitempty"`
	RelevanceScore float64            `json:"relevance_score,omitempty"`
	MatchBreakdown map[string]float64 `json:"match_breakdown,omitempty"`
}

// SearchResult is one page of listings. HasMore is a full-page heuristic;
// the backend reports no total count.
type SearchResult struct {
	Jobs    []Job
	HasMore bool
}

// TelemetryMetrics is the backend-reported performance snapshot. Only
// timing["total"] is guaranteed; everything else is backend-defined.
type TelemetryMetrics struct {
	Timing map[string]float64 `json:"timing"`
	Meta   map[string]any     `json:"meta"`
}

// TotalMillis returns the end-to-end request duration reported by the backend.
func (m TelemetryMetrics) TotalMillis() float64 {
	return m.Timing["total"]
}

// CacheHit reports whether the backend served the search from cache.
func (m TelemetryMetrics) CacheHit() bool {
	hit, _ := m.Meta["cache_hit"].(bool)
	return hit
}

// ScrapeState is the transient background-scrape indicator.
type ScrapeState struct {
	Scraping        bool
	LastTriggeredAt time.Time
}
