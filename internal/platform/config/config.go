// Package config loads process configuration from the environment. A .env
// file in the working directory is read first if one exists; variables already
// set in the environment win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"creditref/internal/request"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	MetricsAddr   string
	Environment   string
	DefaultMode   request.Mode
	JWTSigningKey string
	JWTLeeway     time.Duration
	DraftTTL      time.Duration

	Redis     RedisConfig
	Postgres  PostgresConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
}

// RedisConfig configures the Redis draft store. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the Postgres draft store. An empty URL disables it.
type PostgresConfig struct {
	URL      string
	MaxConns int32
}

// KafkaConfig configures the audit sink. No brokers means audit events stay
// in memory.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RateLimitConfig bounds requests per client on the /v1 API. Zero requests
// disables limiting.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

const devSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	_ = godotenv.Load()

	mode, err := request.ParseMode(getEnv("CREDITREF_DEFAULT_MODE", "strict"))
	if err != nil {
		return Server{}, fmt.Errorf("CREDITREF_DEFAULT_MODE: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("DRAFT_TTL", "24h"))
	if err != nil {
		return Server{}, fmt.Errorf("DRAFT_TTL: %w", err)
	}
	if ttl <= 0 {
		return Server{}, fmt.Errorf("DRAFT_TTL must be positive, got %s", ttl)
	}

	limit, err := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", "120"))
	if err != nil || limit < 0 {
		return Server{}, fmt.Errorf("RATE_LIMIT_REQUESTS must be a non-negative integer")
	}
	window, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil || window <= 0 {
		return Server{}, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration")
	}

	leeway, err := time.ParseDuration(getEnv("JWT_LEEWAY", "30s"))
	if err != nil || leeway < 0 {
		return Server{}, fmt.Errorf("JWT_LEEWAY must be a non-negative duration")
	}

	env := getEnv("CREDITREF_ENV", "development")
	signingKey := getEnv("JWT_SIGNING_KEY", "")
	if signingKey == "" {
		if env == "production" {
			return Server{}, fmt.Errorf("JWT_SIGNING_KEY is required in production")
		}
		// Use a default for development - should be overridden in production
		signingKey = devSigningKey
	}

	return Server{
		Addr:          getEnv("CREDITREF_ADDR", ":8080"),
		MetricsAddr:   getEnv("CREDITREF_METRICS_ADDR", ":9090"),
		Environment:   env,
		DefaultMode:   mode,
		JWTSigningKey: signingKey,
		JWTLeeway:     leeway,
		DraftTTL:      ttl,
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", ""),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: PostgresConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: 10,
		},
		Kafka: KafkaConfig{
			Brokers: splitCSV(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("AUDIT_TOPIC", "creditref.audit"),
		},
		RateLimit: RateLimitConfig{
			Requests: limit,
			Window:   window,
		},
	}, nil
}

// getEnv treats an empty variable as unset.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitCSV(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
