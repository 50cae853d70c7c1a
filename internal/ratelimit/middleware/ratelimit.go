package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"creditref/internal/platform/metrics"
	"creditref/internal/ratelimit/models"
	"creditref/internal/ratelimit/store/bucket"
	"creditref/pkg/platform/circuit"
	"creditref/pkg/platform/httputil"
	"creditref/pkg/requestcontext"
)

// BucketStore admits or rejects one request for a key.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

// Middleware limits authenticated callers per API client. When the primary
// store keeps failing, the circuit opens and an in-memory store takes over
// until the primary recovers; responses then carry X-RateLimit-Status: degraded.
type Middleware struct {
	primary  BucketStore
	fallback BucketStore
	breaker  *circuit.Breaker
	limit    models.Limit
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(m *Middleware) {
		m.breaker = b
	}
}

// WithFallback replaces the in-memory store used while the circuit is open.
func WithFallback(store BucketStore) Option {
	return func(m *Middleware) {
		m.fallback = store
	}
}

func New(primary BucketStore, limit models.Limit, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		primary:  primary,
		fallback: bucket.NewInMemoryBucketStore(),
		breaker:  circuit.New("ratelimit"),
		limit:    limit,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.limit.Requests <= 0 {
		m.disabled = true
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimitClient must run after authentication so the client is known.
func (m *Middleware) RateLimitClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		result, degraded, err := m.check(ctx, callerKey(ctx))
		if err != nil {
			// Fail open while the breaker is still counting failures.
			m.metrics.IncrementRateLimitDecision("error")
			m.logger.ErrorContext(ctx, "rate limit check failed",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if degraded {
			w.Header().Set("X-RateLimit-Status", "degraded")
			m.metrics.IncrementRateLimitDecision("degraded")
		}
		if !result.Allowed {
			m.metrics.IncrementRateLimitDecision("limited")
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"client_id", requestcontext.ClientID(ctx),
				"request_id", requestcontext.RequestID(ctx),
				"retry_after", result.RetryAfter,
			)
			writeRateLimitExceeded(w, result)
			return
		}
		m.metrics.IncrementRateLimitDecision("allowed")
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) check(ctx context.Context, key string) (*models.Result, bool, error) {
	result, err := m.primary.Allow(ctx, key, m.limit.Requests, m.limit.Window)
	if err != nil {
		useFallback, change := m.breaker.RecordFailure()
		if change.Opened {
			m.logger.WarnContext(ctx, "rate limit store unavailable, using in-memory fallback", "error", err)
		}
		if !useFallback {
			return nil, false, err
		}
		return m.fromFallback(ctx, key)
	}

	usePrimary, change := m.breaker.RecordSuccess()
	if change.Closed {
		m.logger.InfoContext(ctx, "rate limit store recovered")
	}
	if !usePrimary {
		return m.fromFallback(ctx, key)
	}
	return result, false, nil
}

func (m *Middleware) fromFallback(ctx context.Context, key string) (*models.Result, bool, error) {
	result, err := m.fallback.Allow(ctx, key, m.limit.Requests, m.limit.Window)
	if err != nil {
		return nil, true, err
	}
	return result, true, nil
}

func callerKey(ctx context.Context) string {
	if id := requestcontext.ClientID(ctx); id != "" {
		return models.ClientKey(id)
	}
	if sub := requestcontext.Subject(ctx); sub != "" {
		return models.SubjectKey(sub)
	}
	return models.IPKey(requestcontext.ClientIP(ctx))
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:            "rate_limit_exceeded",
		ErrorDescription: "Too many requests for this client. Please try again later.",
		RetryAfter:       result.RetryAfter,
	})
}
