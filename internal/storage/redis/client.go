package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/model"
)

// Internal adapter interface to enable testing without a real Redis server.
type redisAPI interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// Wrapper to adapt *redis.Client to redisAPI.
type redisClientWrapper struct{ c *redis.Client }

func (w redisClientWrapper) Get(ctx context.Context, key string) (string, error) {
	return w.c.Get(ctx, key).Result()
}
func (w redisClientWrapper) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return w.c.Set(ctx, key, value, ttl).Err()
}
func (w redisClientWrapper) Ping(ctx context.Context) error {
	return w.c.Ping(ctx).Err()
}
func (w redisClientWrapper) Close() error {
	return w.c.Close()
}

var (
	_ model.GeocodeCache = (*Client)(nil)
	_ model.Pinger       = (*Client)(nil)
)

// Client is a geocode cache backed by Redis. Lookups that fail are reported
// as misses so that an unavailable cache never blocks geocoding.
type Client struct {
	api    redisAPI
	ttl    time.Duration
	prefix string
	log    *logger.Logger
}

// Connect parses url, opens a client and verifies the connection.
func Connect(ctx context.Context, url string, ttl time.Duration, log *logger.Logger) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return NewClient(ctx, redis.NewClient(opts), ttl, log)
}

// NewClient creates a cache using a real *redis.Client instance.
func NewClient(ctx context.Context, client *redis.Client, ttl time.Duration, log *logger.Logger) (*Client, error) {
	return NewClientWithAPI(ctx, redisClientWrapper{c: client}, ttl, log)
}

// NewClientWithAPI allows injecting a fake API (used in tests).
func NewClientWithAPI(ctx context.Context, api redisAPI, ttl time.Duration, log *logger.Logger) (*Client, error) {
	c := &Client{
		api:    api,
		ttl:    ttl,
		prefix: "georegions:",
		log:    log,
	}

	if err := c.Ping(ctx); err != nil {
		_ = api.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	return c, nil
}

// Get returns the cached value for key.
func (c *Client) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.api.Get(ctx, c.prefix+key)
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.log.Warn("GeocodeCache: get failed", "key", key, "error", err)
		return "", false
	}
	return value, true
}

// Set stores value under key for the configured TTL.
func (c *Client) Set(ctx context.Context, key, value string) {
	if err := c.api.Set(ctx, c.prefix+key, value, c.ttl); err != nil {
		c.log.Warn("GeocodeCache: set failed", "key", key, "error", err)
	}
}

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.api.Ping(ctx)
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.api.Close()
}
