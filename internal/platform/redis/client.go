package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"creditref/internal/platform/config"
)

// Client is the shared connection used by the draft store and the rate
// limiter.
type Client struct {
	*redis.Client
}

// New dials Redis and checks it answers. It returns a nil client and no error
// when cfg has no URL.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: rdb}, nil
}

// options overlays the configured pool settings on those parsed from the
// URL. Zero values keep the go-redis defaults.
func options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.MinIdleConns = cfg.MinIdleConns
	setPositive(&opts.PoolSize, cfg.PoolSize)
	setPositive(&opts.DialTimeout, cfg.DialTimeout)
	setPositive(&opts.ReadTimeout, cfg.ReadTimeout)
	setPositive(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func setPositive[T int | ~int64](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}

// Health satisfies the router's health check signature.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
