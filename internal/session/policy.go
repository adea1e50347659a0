package session

// The reactive auto-search rules are an explicit transition table instead of
// effect wiring: every session mutation dispatches exactly one event, and an
// event maps to at most one search action. That makes "fire at most once per
// transition, never on a vacuous session" checkable in isolation.

type event int

const (
	eventFilterChanged event = iota
	eventContextArrived
	eventContextCleared
)

type action int

const (
	actionNone action = iota
	// actionRefresh re-runs the search from page 1 with the current criteria.
	actionRefresh
	// actionRecommend issues a zero-criteria search (empty text, no
	// locations) so the uploaded context alone drives the results.
	actionRecommend
)

// policyInput is the post-mutation session state the table keys on.
type policyInput struct {
	// vacuous: no query text, no active filter, no context id.
	vacuous    bool
	hasText    bool
	hasResults bool
}

// decide maps one session transition to its search action. Context arrival
// takes precedence over the plain criteria-change rule: on a session with no
// query and no prior results it produces the recommended-jobs search, and in
// every other case the ordinary refresh (a session holding a context is never
// vacuous). Filter changes and context clearing refresh only when something
// remains to search on.
func decide(ev event, in policyInput) action {
	switch ev {
	case eventContextArrived:
		if !in.hasText && !in.hasResults {
			return actionRecommend
		}
		return actionRefresh
	case eventFilterChanged, eventContextCleared:
		if in.vacuous {
			return actionNone
		}
		return actionRefresh
	default:
		return actionNone
	}
}
