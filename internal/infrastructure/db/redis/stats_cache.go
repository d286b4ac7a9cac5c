package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const (
	defaultStatsTTL = 30 * time.Second
	statsKeyPrefix  = "stats:"
	scanBatch       = 100
)

// StatsCache keeps computed dashboard stats in Redis.
// Key format: stats:<days>
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache wraps client. A non-positive ttl falls back to defaultStatsTTL.
func NewStatsCache(client *redis.Client, ttl time.Duration) ports.StatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

func (c *StatsCache) Get(ctx context.Context, days int) (*domain.Stats, bool, error) {
	raw, err := c.client.Get(ctx, c.key(days)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("stats cache get: %w", err)
	}

	var s domain.Stats
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("stats cache decode: %w", err)
	}
	return &s, true, nil
}

func (c *StatsCache) Set(ctx context.Context, days int, s *domain.Stats) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(days), raw, c.ttl).Err()
}

// Invalidate removes every cached window.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, statsKeyPrefix+"*", scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("stats cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *StatsCache) key(days int) string {
	return fmt.Sprintf("%s%d", statsKeyPrefix, days)
}
