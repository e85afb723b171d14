package audit

import (
	"context"
	"sync"
)

// Sink is an append-only destination for audit events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// InMemorySink collects events in memory for tests/dev.
type InMemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

func (s *InMemorySink) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of everything appended so far.
func (s *InMemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
