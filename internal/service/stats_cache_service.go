package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Cache keys for the two aggregated hospital-data views.
	StatsViewKey             = "stats:view"
	StatsViewWithLocationKey = "stats:view:loc"

	statsViewTTL      = 5 * time.Minute
	statsCacheTimeout = 2 * time.Second
)

// StatsCache caches serialized aggregated views of the derived statistics.
// The aggregation engine invalidates it on every rebuild and flag change, so
// readers never see a stale view for longer than one mutation.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	Invalidate(ctx context.Context)
}

type redisStatsCache struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisStatsCache(client *redis.Client, log *logrus.Logger) StatsCache {
	return &redisStatsCache{client: client, log: log}
}

func (c *redisStatsCache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, statsCacheTimeout)
	defer cancel()

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read stats cache: %+v", err)
		}
		return nil, false
	}
	return payload, true
}

func (c *redisStatsCache) Set(ctx context.Context, key string, payload []byte) {
	ctx, cancel := context.WithTimeout(ctx, statsCacheTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, payload, statsViewTTL).Err(); err != nil {
		c.log.Warnf("Failed to write stats cache: %+v", err)
	}
}

func (c *redisStatsCache) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, statsCacheTimeout)
	defer cancel()

	if err := c.client.Del(ctx, StatsViewKey, StatsViewWithLocationKey).Err(); err != nil {
		c.log.Warnf("Failed to invalidate stats cache: %+v", err)
	}
}

// NoopStatsCache satisfies StatsCache without a backing store. Used when
// redis is unavailable and in tests.
type NoopStatsCache struct{}

func (NoopStatsCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (NoopStatsCache) Set(ctx context.Context, key string, payload []byte) {
}
func (NoopStatsCache) Invalidate(ctx context.Context) {}
