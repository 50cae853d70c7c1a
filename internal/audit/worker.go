package audit

import (
	"context"
	"log/slog"

	"creditref/internal/platform/metrics"
)

// Worker consumes audit events from a channel and forwards them to a store,
// typically the Kafka sink. A failed event is logged and dropped so one bad
// broker round trip does not stall the queue.
type Worker struct {
	store   Store
	inbox   <-chan Event
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger, m *metrics.Metrics) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger, metrics: m}
}

// Run blocks until ctx is done or the inbox is closed. Events still queued
// when ctx ends are flushed with a fresh context first.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			return nil
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.forward(ctx, event)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.inbox:
			if !ok {
				return
			}
			w.forward(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) forward(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.metrics.IncrementAuditFailures()
		w.logger.ErrorContext(ctx, "audit worker failed to forward event",
			"error", err,
			"event_id", event.ID,
			"action", event.Action,
		)
	}
}
