// Package analysis runs schema-constrained LLM requests that turn a mission
// or a batch of space-weather bulletins into a typed report.
package analysis

import (
	"context"
	"sync"
)

// State is the lifecycle state of an analysis slot
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateReady      State = "ready"
)

// FailureMessage is shown when the last request produced no report
const FailureMessage = "Analysis failed. Please retry."

// Snapshot is a point-in-time view of a slot
type Snapshot[T any] struct {
	State      State  `json:"state"`
	Subject    string `json:"subject,omitempty"`
	Report     *T     `json:"report,omitempty"`
	Failure    string `json:"failure,omitempty"`
	Generation uint64 `json:"generation"`
}

// Slot holds the report currently on display. Each Run bumps the
// generation; a completion whose generation is no longer current is
// discarded, so the most recently issued request always wins.
type Slot[T any] struct {
	mu      sync.Mutex
	gen     uint64
	state   State
	subject string
	report  *T
	failure string
	cancel  context.CancelFunc
}

// Run clears the slot, calls fn and stores its result if the request is
// still current. fn runs under a context canceled only by Close or by a
// newer Run, never by ctx. The returned flag is false when the result was
// discarded as stale.
func (s *Slot[T]) Run(ctx context.Context, subject string, fn func(ctx context.Context) (*T, error)) (Snapshot[T], bool) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	my := s.gen
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.state = StateRequesting
	s.subject = subject
	s.report = nil
	s.failure = ""
	s.mu.Unlock()

	report, err := fn(runCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != my {
		cancel()
		return s.snapshotLocked(), false
	}
	cancel()
	s.cancel = nil
	if err != nil || report == nil {
		s.state = StateIdle
		s.failure = FailureMessage
		return s.snapshotLocked(), true
	}
	s.state = StateReady
	s.report = report
	return s.snapshotLocked(), true
}

// Snapshot returns the current state of the slot
func (s *Slot[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels any outstanding request and discards the report
func (s *Slot[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.state = StateIdle
	s.subject = ""
	s.report = nil
	s.failure = ""
}

func (s *Slot[T]) snapshotLocked() Snapshot[T] {
	state := s.state
	if state == "" {
		state = StateIdle
	}
	return Snapshot[T]{
		State:      state,
		Subject:    s.subject,
		Report:     s.report,
		Failure:    s.failure,
		Generation: s.gen,
	}
}
