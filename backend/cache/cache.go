// Package cache holds the short-lived leaderboard snapshot.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"iqscaler/backend/models"
)

type LeaderboardCache interface {
	Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error)
	Set(ctx context.Context, entries []models.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

const leaderboardKey = "iqscaler:leaderboard"

type RedisLeaderboard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLeaderboard(client *redis.Client, ttl time.Duration) *RedisLeaderboard {
	return &RedisLeaderboard{client: client, ttl: ttl}
}

func (c *RedisLeaderboard) Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error) {
	raw, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get leaderboard")
	}
	var out []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, errors.Wrap(err, "decode cached leaderboard")
	}
	return out, true, nil
}

func (c *RedisLeaderboard) Set(ctx context.Context, entries []models.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrap(c.client.Set(ctx, leaderboardKey, raw, c.ttl).Err(), "redis set leaderboard")
}

func (c *RedisLeaderboard) Invalidate(ctx context.Context) error {
	return errors.Wrap(c.client.Del(ctx, leaderboardKey).Err(), "redis del leaderboard")
}

// Nop never caches.
type Nop struct{}

func (Nop) Get(context.Context) ([]models.LeaderboardEntry, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, []models.LeaderboardEntry) error         { return nil }
func (Nop) Invalidate(context.Context) error                             { return nil }
