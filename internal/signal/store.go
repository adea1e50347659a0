// Package signal provides latest-wins publish/subscribe registers used to
// fan backend response metadata out to independent observers. Stores are
// plain injectable values, not package-level singletons, so tests and
// alternate surfaces can construct isolated instances.
package signal

import (
	"sync"

	"github.com/jobscout-ai/agent/internal/domain"
)

// Store holds at most one value of T and notifies subscribers synchronously,
// in subscription order, on every publish. Subscribers never see values
// published before they subscribed. Listeners run under the store lock and
// must not call back into the store.
type Store[T any] struct {
	mu     sync.Mutex
	value  T
	set    bool
	subs   []subscriber[T]
	nextID int
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{}
}

// Publish replaces the held value and notifies every current subscriber.
func (s *Store[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = v
	s.set = true
	for _, sub := range s.subs {
		sub.fn(v)
	}
}

// Subscribe registers fn and returns its unsubscribe function.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Latest returns the held value, if any value has been published yet.
func (s *Store[T]) Latest() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

// TelemetryStore distributes the most recent backend performance snapshot.
type TelemetryStore = Store[domain.TelemetryMetrics]

func NewTelemetryStore() *TelemetryStore {
	return NewStore[domain.TelemetryMetrics]()
}
