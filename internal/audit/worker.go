package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the publisher and appends them to a sink.
// Sink failures are logged and skipped; the trail is best-effort by design.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.Error("audit append failed", "error", err, "action", event.Action)
			}
		}
	}
}
