package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ImAlagar/zohra-admin-core/pkg/config"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace   = "zohra"
	snapshotPrefix = "snapshot"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client wraps the redis connection used for the shared snapshot cache.
// Multiple admin instances observe the same refetch-on-mutation snapshot
// through it; it is never the source of truth.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// SnapshotCache is the surface the pricing store needs.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context, scope string) (string, bool, error)
	SetSnapshot(ctx context.Context, scope, payload string, ttl time.Duration) error
	DropSnapshot(ctx context.Context, scopes ...string) error
}

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// SnapshotKey returns the namespaced key for a cached snapshot scope.
func (c *Client) SnapshotKey(scope string) string {
	return c.buildKey(snapshotPrefix, scope)
}

// GetSnapshot returns the cached snapshot payload for scope. The second
// return value is false on a cache miss.
func (c *Client) GetSnapshot(ctx context.Context, scope string) (string, bool, error) {
	if c.store == nil {
		return "", false, errors.New("redis client not initialized")
	}
	payload, err := c.store.Get(ctx, c.SnapshotKey(scope)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

// SetSnapshot stores a serialized snapshot with the given TTL.
func (c *Client) SetSnapshot(ctx context.Context, scope, payload string, ttl time.Duration) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Set(ctx, c.SnapshotKey(scope), payload, ttl).Err()
}

// DropSnapshot removes the cached snapshots for the given scopes.
func (c *Client) DropSnapshot(ctx context.Context, scopes ...string) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	keys := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		keys = append(keys, c.SnapshotKey(scope))
	}
	if len(keys) == 0 {
		return nil
	}
	return c.store.Del(ctx, keys...).Err()
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func (c *Client) buildKey(parts ...string) string {
	cleaned := make([]string, 0, len(parts)+1)
	cleaned = append(cleaned, keyNamespace)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return strings.Join(cleaned, ":")
}
