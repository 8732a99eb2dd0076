package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/pageza/mealfeed/backend/internal/feed"
	"github.com/redis/go-redis/v9"
)

const anonymousFeedKey = "feed:anonymous:v1"

// FeedCache stores the anonymous feed. Get reports a miss with ok == false.
type FeedCache interface {
	Get(ctx context.Context) (recipes []feed.ScoredRecipe, ok bool, err error)
	Set(ctx context.Context, recipes []feed.ScoredRecipe, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// RedisFeedCache keeps the anonymous feed as one JSON value in Redis.
type RedisFeedCache struct {
	client *redis.Client
}

func NewRedisFeedCache(client *redis.Client) *RedisFeedCache {
	return &RedisFeedCache{client: client}
}

func (c *RedisFeedCache) Get(ctx context.Context) ([]feed.ScoredRecipe, bool, error) {
	data, err := c.client.Get(ctx, anonymousFeedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read feed cache: %w", err)
	}

	var recipes []feed.ScoredRecipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, false, fmt.Errorf("failed to decode feed cache: %w", err)
	}
	return recipes, true, nil
}

func (c *RedisFeedCache) Set(ctx context.Context, recipes []feed.ScoredRecipe, ttl time.Duration) error {
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("failed to encode feed cache: %w", err)
	}
	if err := c.client.Set(ctx, anonymousFeedKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write feed cache: %w", err)
	}
	return nil
}

func (c *RedisFeedCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, anonymousFeedKey).Err()
}
