package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"creditref/internal/audit"
	auditkafka "creditref/internal/audit/kafka"
	draftHandler "creditref/internal/draft/handler"
	draftService "creditref/internal/draft/service"
	draftStore "creditref/internal/draft/store"
	jwttoken "creditref/internal/jwt_token"
	"creditref/internal/platform/config"
	"creditref/internal/platform/httpserver"
	"creditref/internal/platform/logger"
	"creditref/internal/platform/metrics"
	"creditref/internal/platform/postgres"
	redisclient "creditref/internal/platform/redis"
	ratelimitMiddleware "creditref/internal/ratelimit/middleware"
	ratelimitModels "creditref/internal/ratelimit/models"
	"creditref/internal/ratelimit/store/bucket"
	httptransport "creditref/internal/transport/http"
)

const (
	shutdownTimeout = 10 * time.Second
	cleanupInterval = 10 * time.Minute
	auditQueueSize  = 1024
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	m := metrics.New(prometheus.DefaultRegisterer)
	g, ctx := errgroup.WithContext(ctx)
	checks := map[string]httptransport.HealthCheck{}

	var redisClient *redisclient.Client
	if cfg.Redis.URL != "" {
		client, err := redisclient.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		redisClient = client
		checks["redis"] = client.Health
		g.Go(func() error {
			<-ctx.Done()
			return client.Close()
		})
	}

	drafts, err := buildDraftStore(ctx, cfg, log, g, redisClient, checks)
	if err != nil {
		return err
	}

	auditStore, err := buildAuditStore(ctx, cfg, log, m, g)
	if err != nil {
		return err
	}

	svc := draftService.New(drafts,
		draftService.WithLogger(log),
		draftService.WithMetrics(m),
		draftService.WithDefaultMode(cfg.DefaultMode),
		draftService.WithTTL(cfg.DraftTTL),
		draftService.WithAuditPublisher(audit.NewPublisher(auditStore,
			audit.WithLogger(log),
			audit.WithMetrics(m),
		)),
	)

	limiter := ratelimitMiddleware.New(buildBucketStore(ctx, g, redisClient),
		ratelimitModels.Limit{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window},
		log,
		ratelimitMiddleware.WithMetrics(m),
	)

	signer := jwttoken.NewSigner(cfg.JWTSigningKey, jwttoken.WithLeeway(cfg.JWTLeeway))
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Logger:        log,
		Metrics:       m,
		Authenticator: signer,
		Modules:       []httptransport.Module{draftHandler.New(svc, log)},
		HealthChecks:  checks,
		RateLimit:     limiter.RateLimitClient,
	})

	api := httpserver.New(cfg.Addr, router)
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	serve(ctx, g, log, "api", api)
	serve(ctx, g, log, "metrics", metricsSrv)

	log.Info("creditref started",
		"addr", cfg.Addr,
		"metrics_addr", cfg.MetricsAddr,
		"env", cfg.Environment,
		"default_mode", cfg.DefaultMode.String(),
	)
	return g.Wait()
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, g *errgroup.Group, log *slog.Logger, name string, srv *http.Server) {
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down", "server", name)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// buildDraftStore picks Postgres, then Redis, then memory.
func buildDraftStore(ctx context.Context, cfg config.Server, log *slog.Logger, g *errgroup.Group, redisClient *redisclient.Client, checks map[string]httptransport.HealthCheck) (draftService.DraftStore, error) {
	if cfg.Postgres.URL != "" {
		pool, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		store := draftStore.NewPostgres(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		checks["postgres"] = pool.Ping
		g.Go(func() error {
			defer pool.Close()
			draftStore.RunCleanup(ctx, store, cleanupInterval, log)
			return nil
		})
		log.Info("draft store: postgres")
		return store, nil
	}

	if redisClient != nil {
		log.Info("draft store: redis")
		return draftStore.NewRedis(redisClient.Client), nil
	}

	log.Warn("draft store: memory; drafts are lost on restart")
	store := draftStore.NewInMemoryStore()
	g.Go(func() error {
		draftStore.RunCleanup(ctx, store, cleanupInterval, log)
		return nil
	})
	return store, nil
}

// buildBucketStore shares rate limit windows through Redis when it is
// configured.
func buildBucketStore(ctx context.Context, g *errgroup.Group, redisClient *redisclient.Client) ratelimitMiddleware.BucketStore {
	if redisClient != nil {
		return bucket.NewRedisBucketStore(redisClient.Client)
	}
	store := bucket.NewInMemoryBucketStore()
	g.Go(func() error {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				store.RemoveIdleAt(ctx, now)
			case <-ctx.Done():
				return nil
			}
		}
	})
	return store
}

// buildAuditStore forwards audit events to Kafka through a bounded queue when
// brokers are configured and keeps them in memory otherwise.
func buildAuditStore(ctx context.Context, cfg config.Server, log *slog.Logger, m *metrics.Metrics, g *errgroup.Group) (audit.Store, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn("audit sink: memory")
		return audit.NewMemoryStore(), nil
	}

	sink, err := auditkafka.NewSink(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	if err != nil {
		return nil, err
	}
	if err := sink.EnsureTopic(ctx, 3, 1); err != nil {
		sink.Close()
		return nil, err
	}

	queue := make(chan audit.Event, auditQueueSize)
	worker := audit.NewWorker(sink, queue, log, m)
	g.Go(func() error {
		defer sink.Close()
		return worker.Run(ctx)
	})
	log.Info("audit sink: kafka", "topic", cfg.Kafka.Topic)
	return audit.NewQueueStore(queue), nil
}
