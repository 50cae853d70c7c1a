package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementFieldOutcome("application_data", "dependants", "accepted")
	m.IncrementFieldOutcome("application_data", "dependants", "accepted")
	m.IncrementFieldOutcome("application_data", "dependants", "discarded")
	m.IncrementDraftsBuilt("strict", true)
	m.IncrementAuditFailures()
	m.IncrementRateLimitDecision("limited")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FieldOutcomes.WithLabelValues("application_data", "dependants", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FieldOutcomes.WithLabelValues("application_data", "dependants", "discarded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DraftsBuilt.WithLabelValues("strict", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitDecisions.WithLabelValues("limited")))
}

func TestHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveHTTPLatency("/v1/requests", "POST", "201", 20*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "creditref_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementFieldOutcome("k", "f", "accepted")
		m.IncrementDraftsBuilt("strict", false)
		m.IncrementAuditFailures()
		m.ObserveHTTPLatency("/", "GET", "200", time.Second)
		m.IncrementRateLimitDecision("allowed")
	})
}
