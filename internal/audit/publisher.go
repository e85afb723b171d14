package audit

import (
	"log/slog"
	"time"
)

// Publisher captures structured audit events and hands them to the worker via
// a buffered channel. Emit never blocks a request: when the buffer is full the
// event is dropped and logged, because audit must not add latency or failure
// modes to login paths.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

func (p *Publisher) Emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit buffer full, dropping event", "action", event.Action, "user_id", event.UserID)
	}
}

// Events exposes the inbox for the worker.
func (p *Publisher) Events() <-chan Event {
	return p.inbox
}
