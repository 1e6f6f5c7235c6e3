package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oggyb/mealplanner/internal/config"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// KeyForTopRecipes is the key of the cached leaderboard id list.
func (c *RedisCache) KeyForTopRecipes() string {
	return "recipes:top"
}

// KeyForRelated is the key of the cached recommender result for a recipe.
func (c *RedisCache) KeyForRelated(recipeID uint64) string {
	return fmt.Sprintf("recipes:related:%d", recipeID)
}

// SetIDs stores an ordered id list. An empty list is stored too, so a
// known-empty result is distinguishable from a miss.
func (c *RedisCache) SetIDs(ctx context.Context, key string, ids []uint64, ttl time.Duration) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return c.Client.Set(ctx, key, strings.Join(parts, ","), ttl).Err()
}

// GetIDs returns the ordered id list stored under key.
// The bool is false on a cache miss.
func (c *RedisCache) GetIDs(ctx context.Context, key string) ([]uint64, bool, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil // cache miss
	} else if err != nil {
		return nil, false, err
	}
	if val == "" {
		return []uint64{}, true, nil
	}

	parts := strings.Split(val, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("corrupt id list under %s: %w", key, err)
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}
