package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks DraftStore,AuditPublisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"creditref/internal/audit"
	"creditref/internal/draft/models"
	"creditref/internal/platform/metrics"
	"creditref/internal/request"
	dErrors "creditref/pkg/domain-errors"
	"creditref/pkg/platform/sentinel"
	"creditref/pkg/requestcontext"
)

type DraftStore interface {
	Save(ctx context.Context, draft *models.Draft, ttl time.Duration) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Draft, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const defaultTTL = 24 * time.Hour

// Service builds request documents from client input and keeps them as drafts.
type Service struct {
	drafts         DraftStore
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	defaultMode    request.Mode
	ttl            time.Duration
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithDefaultMode sets the mode used when the input does not name one.
func WithDefaultMode(mode request.Mode) Option {
	return func(s *Service) {
		s.defaultMode = mode
	}
}

// WithTTL sets how long a draft is kept.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(drafts DraftStore, opts ...Option) *Service {
	s := &Service{
		drafts:      drafts,
		logger:      slog.Default(),
		tracer:      otel.Tracer("creditref/draft"),
		defaultMode: request.ModeStrict,
		ttl:         defaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build assembles a request from in, stores it and returns the draft.
//
// Fields are applied in name order per partial. In strict mode the first
// rejected field aborts the build with its *request.ValidationError; in
// permissive mode rejected inputs are dropped and listed on the draft.
func (s *Service) Build(ctx context.Context, in BuildInput) (*models.Draft, error) {
	ctx, span := s.tracer.Start(ctx, "draft.Build")
	defer span.End()

	mode := s.defaultMode
	if in.Mode != nil {
		mode = *in.Mode
	}
	span.SetAttributes(
		attribute.String("draft.mode", mode.String()),
		attribute.Int("draft.applicants", len(in.Applicants)),
	)
	if len(in.Applicants) == 0 {
		return nil, s.fail(span, dErrors.New(dErrors.CodeBadRequest, "at least one applicant is required"))
	}

	now := requestcontext.Now(ctx)
	rec := &recorder{ctx: ctx, logger: s.logger, metrics: s.metrics, rejections: []models.Rejection{}}
	req := request.New(
		request.WithMode(mode),
		request.WithObserver(rec),
		request.WithClock(func() time.Time { return now }),
	)

	for i, applicant := range in.Applicants {
		if err := s.buildApplicant(req, applicant); err != nil {
			if request.IsConstructionError(err) {
				err = dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("applicant %d", i))
			}
			return nil, s.fail(span, err)
		}
	}

	draft := &models.Draft{
		ID:         uuid.New(),
		Document:   req.Document(),
		Rejections: rec.rejections,
		CreatedBy:  requestcontext.Subject(ctx),
		CreatedAt:  now.UTC(),
	}
	span.SetAttributes(
		attribute.String("draft.id", draft.ID.String()),
		attribute.Int("draft.rejections", len(draft.Rejections)),
	)

	if err := s.drafts.Save(ctx, draft, s.ttl); err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save draft"))
	}

	s.metrics.IncrementDraftsBuilt(mode.String(), draft.Clean())
	s.logger.InfoContext(ctx, "draft built",
		"draft_id", draft.ID,
		"mode", mode.String(),
		"applicants", len(in.Applicants),
		"rejections", len(draft.Rejections),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitAudit(ctx, audit.ActionDraftBuilt, draft)
	return draft, nil
}

func (s *Service) buildApplicant(req *request.Request, in ApplicantInput) error {
	opts, err := in.options()
	if err != nil {
		return err
	}
	applicant, err := req.CreateApplicant(in.GivenName, in.FamilyName, opts...)
	if err != nil {
		return err
	}

	if in.ApplicationData != nil {
		data, err := req.CreateApplicationData(applicant)
		if err != nil {
			return err
		}
		if err := apply(data, in.ApplicationData); err != nil {
			return err
		}
	}
	for _, fields := range in.LocationDetails {
		address, err := req.CreateLocationDetails(applicant)
		if err != nil {
			return err
		}
		if err := apply(address, fields); err != nil {
			return err
		}
	}
	return nil
}

func apply(p request.Partial, fields FieldInput) error {
	for _, field := range slices.Sorted(maps.Keys(fields)) {
		args, err := fields.args(field)
		if err != nil {
			return err
		}
		if err := p.Apply(field, args...); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a stored draft.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	ctx, span := s.tracer.Start(ctx, "draft.Get", trace.WithAttributes(attribute.String("draft.id", id.String())))
	defer span.End()

	draft, err := s.drafts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "draft not found")
		}
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load draft"))
	}
	s.emitAudit(ctx, audit.ActionDraftFetched, draft)
	return draft, nil
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// emitAudit is fail-open: a draft is not personal data leaving the system, so
// losing its audit trail is logged and counted but does not fail the call.
func (s *Service) emitAudit(ctx context.Context, action string, draft *models.Draft) {
	if s.auditPublisher == nil {
		return
	}
	digest, err := audit.Digest(draft.Document)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to digest draft document", "error", err, "draft_id", draft.ID)
	}
	event := audit.Event{
		Action:         action,
		DraftID:        draft.ID.String(),
		RequestID:      requestcontext.RequestID(ctx),
		Subject:        requestcontext.Subject(ctx),
		ClientID:       requestcontext.ClientID(ctx),
		ClientIP:       requestcontext.ClientIP(ctx),
		Client:         audit.DescribeClient(requestcontext.UserAgent(ctx)),
		Mode:           draft.Document.Mode.String(),
		Rejections:     len(draft.Rejections),
		DocumentDigest: digest,
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit event dropped",
			"error", err,
			"action", action,
			"draft_id", draft.ID,
		)
	}
}
