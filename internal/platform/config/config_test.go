package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditref/internal/request"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"CREDITREF_ADDR", "CREDITREF_METRICS_ADDR", "CREDITREF_ENV", "CREDITREF_DEFAULT_MODE",
		"JWT_SIGNING_KEY", "DRAFT_TTL", "REDIS_URL", "DATABASE_URL", "KAFKA_BROKERS", "AUDIT_TOPIC",
		"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "JWT_LEEWAY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, request.ModeStrict, cfg.DefaultMode)
	assert.Equal(t, 24*time.Hour, cfg.DraftTTL)
	assert.Equal(t, devSigningKey, cfg.JWTSigningKey)
	assert.Equal(t, 30*time.Second, cfg.JWTLeeway)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "creditref.audit", cfg.Kafka.Topic)
	assert.Equal(t, RateLimitConfig{Requests: 120, Window: time.Minute}, cfg.RateLimit)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CREDITREF_ADDR", ":9000")
	t.Setenv("CREDITREF_DEFAULT_MODE", "silent")
	t.Setenv("DRAFT_TTL", "90m")
	t.Setenv("JWT_SIGNING_KEY", "s3cret")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("AUDIT_TOPIC", "audit")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")
	t.Setenv("RATE_LIMIT_WINDOW", "10s")
	t.Setenv("JWT_LEEWAY", "0s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, request.ModePermissive, cfg.DefaultMode)
	assert.Equal(t, 90*time.Minute, cfg.DraftTTL)
	assert.Equal(t, "s3cret", cfg.JWTSigningKey)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "audit", cfg.Kafka.Topic)
	assert.Equal(t, RateLimitConfig{Requests: 0, Window: 10 * time.Second}, cfg.RateLimit)
	assert.Zero(t, cfg.JWTLeeway)
}

func TestFromEnvErrors(t *testing.T) {
	cases := map[string][2]string{
		"bad mode":               {"CREDITREF_DEFAULT_MODE", "loud"},
		"bad ttl":                {"DRAFT_TTL", "tomorrow"},
		"negative ttl":           {"DRAFT_TTL", "-1h"},
		"production without key": {"CREDITREF_ENV", "production"},
		"bad rate limit":         {"RATE_LIMIT_REQUESTS", "lots"},
		"negative rate limit":    {"RATE_LIMIT_REQUESTS", "-5"},
		"zero window":            {"RATE_LIMIT_WINDOW", "0s"},
		"negative leeway":        {"JWT_LEEWAY", "-1s"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SIGNING_KEY", "")
			t.Setenv(kv[0], kv[1])

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
