// Package cache keeps the popularity rankings in Redis so the
// merchandising endpoints do not hit the counters tables on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fitshop/fitshop-backend/config"
	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	KeyMostSearched  = "rankings:mais-pesquisados"
	KeyMostPurchased = "rankings:mais-comprados"
)

// ErrMiss is returned when a ranking is absent or expired.
var ErrMiss = errors.New("ranking cache miss")

type RankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and pings it before returning the cache.
func New(cfg *config.RedisConfig, ttl time.Duration) (*RankingCache, error) {
	logger.Info("Initializing ranking cache", map[string]interface{}{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
		"ttl":  ttl.String(),
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr(),
		})
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Ranking cache connection established successfully")
	return &RankingCache{client: client, ttl: ttl}, nil
}

// NewWithClient wraps an existing client (used by tests with miniredis).
func NewWithClient(client *redis.Client, ttl time.Duration) *RankingCache {
	return &RankingCache{client: client, ttl: ttl}
}

func (c *RankingCache) Close() error {
	return c.client.Close()
}

// Set stores a ranking under the given key with the configured TTL.
func (c *RankingCache) Set(ctx context.Context, key string, rankings []model.ProductRanking) error {
	payload, err := json.Marshal(rankings)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Error("Failed to store ranking in cache", err, map[string]interface{}{
			"key": key,
		})
		return err
	}

	logger.Debug("Ranking stored in cache", map[string]interface{}{
		"key":   key,
		"count": len(rankings),
	})
	return nil
}

// Get returns the cached ranking or ErrMiss.
func (c *RankingCache) Get(ctx context.Context, key string) ([]model.ProductRanking, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		logger.Error("Failed to read ranking from cache", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	var rankings []model.ProductRanking
	if err := json.Unmarshal(payload, &rankings); err != nil {
		// A corrupt entry behaves like a miss so the DB can repopulate it.
		logger.Warn("Corrupt ranking cache entry, treating as miss", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, ErrMiss
	}
	return rankings, nil
}
