package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// RedisCache stores each address/category result set as a JSON string under
// "events:<address>:<category>". Entries do not expire: raw explorer history
// for a closed block range never changes, and stale data is cleared by
// deleting the keys.
type RedisCache struct {
	cli    *redis.Client
	logger *zap.Logger
}

// NewRedisCache connects to redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr string, logger *zap.Logger) (*RedisCache, error) {
	cli := redis.NewClient(&redis.Options{Addr: addr})
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisCache{cli: cli, logger: logger}, nil
}

func redisKey(address string, cat model.Category) string {
	return fmt.Sprintf("events:%s:%s", address, cat)
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, address string, cat model.Category) ([]model.RawEvent, bool, error) {
	data, err := c.cli.Get(ctx, redisKey(address, cat)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache key: %w", err)
	}

	var events []model.RawEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, false, fmt.Errorf("failed to parse cached events: %w", err)
	}

	c.logger.Debug("Cache hit",
		zap.String("address", address),
		zap.String("category", string(cat)),
		zap.Int("count", len(events)))
	return events, true, nil
}

// Put implements Cache.
func (c *RedisCache) Put(ctx context.Context, address string, cat model.Category, events []model.RawEvent) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := c.cli.Set(ctx, redisKey(address, cat), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write cache key: %w", err)
	}
	return nil
}

// Close releases the redis connection.
func (c *RedisCache) Close() error { return c.cli.Close() }
