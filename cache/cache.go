// Package cache holds pre-computed pool rankings so that the leaderboard
// page does not recompute sums on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/eldersantoss/palpiteiros/model"
)

// DefaultTTL bounds staleness between the periodic rebuilds. A pool's
// entries are also dropped eagerly whenever one of its match results
// changes.
const DefaultTTL = 10 * time.Minute

type RankingCache interface {
	// Get returns the cached leaderboard for the key, or found=false on a
	// miss.
	Get(ctx context.Context, key string) (entries []model.LeaderboardEntry, found bool, err error)
	Set(ctx context.Context, key string, entries []model.LeaderboardEntry, ttl time.Duration) error
	// DeletePool drops every cached period of the pool.
	DeletePool(ctx context.Context, poolUUID uuid.UUID) error
}

// Key identifies one (pool, period) leaderboard. Zero year/month/week mean
// all-time, annual and monthly respectively, matching the period resolver.
func Key(poolUUID uuid.UUID, year, month, week int) string {
	return fmt.Sprintf("ranking:%s:%d:%d:%d", poolUUID, year, month, week)
}

func New(ctx context.Context, addr string) (RankingCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis at %s: %w", addr, err)
	}
	return &redisCache{client: client}, nil
}

type redisCache struct {
	client *redis.Client
}

func (c *redisCache) Get(ctx context.Context, key string) ([]model.LeaderboardEntry, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading ranking cache: %w", err)
	}

	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt entry is treated as a miss so it gets rewritten.
		return nil, false, nil
	}
	return entries, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, entries []model.LeaderboardEntry, ttl time.Duration) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("error encoding ranking cache entry: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("error writing ranking cache: %w", err)
	}
	return nil
}

func (c *redisCache) DeletePool(ctx context.Context, poolUUID uuid.UUID) error {
	pattern := fmt.Sprintf("ranking:%s:*", poolUUID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("error deleting ranking cache entry: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning ranking cache: %w", err)
	}
	return nil
}

// NewNop returns a cache that never hits, for deployments without redis and
// for tests that want to exercise the uncached path.
func NewNop() RankingCache {
	return nopCache{}
}

type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string) ([]model.LeaderboardEntry, bool, error) {
	return nil, false, nil
}

func (nopCache) Set(ctx context.Context, key string, entries []model.LeaderboardEntry, ttl time.Duration) error {
	return nil
}

func (nopCache) DeletePool(ctx context.Context, poolUUID uuid.UUID) error {
	return nil
}
