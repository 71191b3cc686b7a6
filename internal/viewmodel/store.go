// Package viewmodel holds the view model the presentation layer renders
// from and publishes search results into it in order.
package viewmodel

import (
	"context"
	"sync"
	"time"

	"github.com/jfmyers9/profiles/internal/artist"
)

// DefaultSettleDelay is how long a finished search waits before it is
// published.
const DefaultSettleDelay = 1500 * time.Millisecond

// Ticket identifies one search started with Begin
type Ticket struct {
	Query      string
	Generation uint64
}

// Store guards the current view model. Every search bumps the generation
// counter; only the holder of the latest ticket may publish.
type Store struct {
	mu          sync.Mutex
	current     artist.ViewModel
	generation  uint64
	settleDelay time.Duration
	subscribers map[int]chan artist.ViewModel
	nextSubID   int
}

// New creates a Store with the given settle delay. A zero delay publishes
// results immediately.
func New(settleDelay time.Duration) *Store {
	if settleDelay < 0 {
		settleDelay = 0
	}
	return &Store{
		settleDelay: settleDelay,
		subscribers: make(map[int]chan artist.ViewModel),
	}
}

// Begin starts a new search. The previous artist is discarded and a loading
// view for query is published.
func (s *Store) Begin(query string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.publish(artist.ViewModel{
		Query:      query,
		Generation: s.generation,
		Loading:    true,
	})

	return Ticket{Query: query, Generation: s.generation}
}

// Complete waits out the settle delay and then publishes result if ticket
// is still the latest. It returns false when the result was discarded,
// either because a newer search began or because ctx was cancelled first.
//
// A not-found result publishes the empty view. Auth and aggregation
// failures publish an error view with loading cleared.
func (s *Store) Complete(ctx context.Context, ticket Ticket, result artist.Result) bool {
	if s.settleDelay > 0 {
		timer := time.NewTimer(s.settleDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}

	if ctx.Err() != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket.Generation != s.generation {
		return false
	}

	vm := artist.ViewModel{
		Query:      ticket.Query,
		Generation: ticket.Generation,
	}

	switch {
	case result.OK():
		vm = result.View
		vm.Query = ticket.Query
		vm.Generation = ticket.Generation
		vm.Loading = false
		vm.Err = nil
	case result.Err.Kind == artist.KindNotFound:
		// Empty view
	default:
		vm.Err = result.Err
	}

	s.publish(vm)
	return true
}

// Current returns a snapshot of the published view model.
func (s *Store) Current() artist.ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Generation returns the latest generation handed out by Begin.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generation
}

// Subscribe returns a channel that receives every published view model and
// a function that unsubscribes and closes it. Slow subscribers only see the
// most recent view.
func (s *Store) Subscribe() (<-chan artist.ViewModel, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++

	ch := make(chan artist.ViewModel, 1)
	s.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			delete(s.subscribers, id)
			close(ch)
		})
	}

	return ch, cancel
}

// publish replaces the current view and notifies subscribers.
// Must be called with lock held
func (s *Store) publish(vm artist.ViewModel) {
	s.current = vm

	for _, ch := range s.subscribers {
		// Drop a stale pending view so the newest always fits
		select {
		case <-ch:
		default:
		}
		ch <- vm
	}
}
