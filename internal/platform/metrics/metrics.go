package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Field set outcomes by partial kind, field and outcome
	FieldOutcomes *prometheus.CounterVec

	// Drafts built by mode and whether any field was rejected
	DraftsBuilt *prometheus.CounterVec

	// Audit events that could not be delivered
	AuditFailures prometheus.Counter

	// HTTP latency by route pattern, method and status
	HTTPLatency *prometheus.HistogramVec

	// Rate limit decisions by outcome
	RateLimitDecisions *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FieldOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "creditref_field_sets_total",
			Help: "Field set calls by partial kind, field and outcome",
		}, []string{"kind", "field", "outcome"}), // outcome: "accepted", "rejected", "discarded"

		DraftsBuilt: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "creditref_drafts_built_total",
			Help: "Request drafts built by mode and rejection status",
		}, []string{"mode", "clean"}),

		AuditFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "creditref_audit_failures_total",
			Help: "Audit events that could not be published",
		}),

		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "creditref_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method", "status"}),

		RateLimitDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "creditref_ratelimit_decisions_total",
			Help: "Rate limit checks by outcome",
		}, []string{"outcome"}), // outcome: "allowed", "limited", "degraded", "error"
	}
}

// IncrementFieldOutcome records one set call.
func (m *Metrics) IncrementFieldOutcome(kind, field, outcome string) {
	if m != nil {
		m.FieldOutcomes.WithLabelValues(kind, field, outcome).Inc()
	}
}

func (m *Metrics) IncrementDraftsBuilt(mode string, clean bool) {
	if m != nil {
		label := "false"
		if clean {
			label = "true"
		}
		m.DraftsBuilt.WithLabelValues(mode, label).Inc()
	}
}

func (m *Metrics) IncrementAuditFailures() {
	if m != nil {
		m.AuditFailures.Inc()
	}
}

// ObserveHTTPLatency records the duration of one HTTP request.
func (m *Metrics) ObserveHTTPLatency(route, method, status string, d time.Duration) {
	if m != nil {
		m.HTTPLatency.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementRateLimitDecision(outcome string) {
	if m != nil {
		m.RateLimitDecisions.WithLabelValues(outcome).Inc()
	}
}
