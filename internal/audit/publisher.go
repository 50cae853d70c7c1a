package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"creditref/internal/platform/metrics"
)

// Store is anything that accepts audit events: the in-memory store, the
// queue feeding a Worker, or the Kafka sink.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and fills in
// the event identity so sinks never see a partial event.
type Publisher struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit stamps and appends event. Failures are logged and counted, then
// returned so callers can decide whether to fail.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		p.metrics.IncrementAuditFailures()
		p.logger.ErrorContext(ctx, "failed to publish audit event",
			"error", err,
			"action", event.Action,
			"draft_id", event.DraftID,
		)
		return err
	}
	return nil
}
