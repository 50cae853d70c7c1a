package service

import (
	"context"
	"errors"
	"log/slog"

	"creditref/internal/draft/models"
	"creditref/internal/platform/metrics"
	"creditref/internal/request"
	"creditref/internal/request/rules"
)

// recorder observes one build. Input values are never logged; they are
// personal data.
type recorder struct {
	ctx        context.Context
	logger     *slog.Logger
	metrics    *metrics.Metrics
	rejections []models.Rejection
}

func (r *recorder) FieldAccepted(kind request.PartialKind, field request.Field, _ rules.Value) {
	r.metrics.IncrementFieldOutcome(string(kind), string(field), "accepted")
}

func (r *recorder) FieldRejected(err *request.ValidationError, mode request.Mode) {
	if mode == request.ModeStrict {
		r.metrics.IncrementFieldOutcome(string(err.Kind), string(err.Field), "rejected")
		return
	}
	r.metrics.IncrementFieldOutcome(string(err.Kind), string(err.Field), "discarded")
	r.rejections = append(r.rejections, models.NewRejection(err))
	r.logger.DebugContext(r.ctx, "field input discarded",
		"kind", err.Kind,
		"field", err.Field,
		"reason", reasonClass(err.Reason),
	)
}

// reasonClass names the kind of rejection. Rule messages quote the input, so
// they are kept off the log.
func reasonClass(reason error) string {
	switch {
	case errors.Is(reason, rules.ErrArity):
		return "arity"
	case errors.Is(reason, rules.ErrInvalid):
		return "invalid"
	default:
		return "rejected"
	}
}
