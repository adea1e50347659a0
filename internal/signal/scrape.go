package signal

import (
	"sync"
	"time"

	"github.com/jobscout-ai/agent/internal/domain"
)

// DefaultScrapeTTL is how long the background-scrape flag stays raised
// without being re-triggered.
const DefaultScrapeTTL = 30 * time.Second

// ScrapeStore tracks the backend's background-scrape indicator. Raising the
// flag arms a reversion timer that lowers it after the TTL unless re-armed;
// lowering it explicitly cancels any pending reversion.
type ScrapeStore struct {
	store *Store[domain.ScrapeState]
	ttl   time.Duration
	clock func() time.Time

	mu    sync.Mutex
	gen   int
	timer *time.Timer
	last  time.Time
}

// ScrapeOption configures a ScrapeStore.
type ScrapeOption func(*ScrapeStore)

// WithClock overrides the time source. Used in tests.
func WithClock(clock func() time.Time) ScrapeOption {
	return func(s *ScrapeStore) {
		s.clock = clock
	}
}

func NewScrapeStore(ttl time.Duration, opts ...ScrapeOption) *ScrapeStore {
	if ttl <= 0 {
		ttl = DefaultScrapeTTL
	}

	s := &ScrapeStore{
		store: NewStore[domain.ScrapeState](),
		ttl:   ttl,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set raises or lowers the scrape flag and notifies subscribers.
func (s *ScrapeStore) Set(active bool) {
	s.mu.Lock()

	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if active {
		s.last = s.clock()
		gen := s.gen
		s.timer = time.AfterFunc(s.ttl, func() {
			s.expire(gen)
		})
	}

	state := domain.ScrapeState{Scraping: active, LastTriggeredAt: s.last}
	s.mu.Unlock()

	s.store.Publish(state)
}

// expire lowers the flag when the reversion timer elapses. The generation
// check drops timers superseded by a later Set.
func (s *ScrapeStore) expire(gen int) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.timer = nil
	state := domain.ScrapeState{Scraping: false, LastTriggeredAt: s.last}
	s.mu.Unlock()

	s.store.Publish(state)
}

// Subscribe registers a listener; returns its unsubscribe function.
func (s *ScrapeStore) Subscribe(fn func(domain.ScrapeState)) func() {
	return s.store.Subscribe(fn)
}

// Latest returns the current state, if any has been published.
func (s *ScrapeStore) Latest() (domain.ScrapeState, bool) {
	return s.store.Latest()
}
