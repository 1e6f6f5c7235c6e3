package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/oggyb/mealplanner/internal/cache"
)

// Cached memoizes provider results in Redis. Only ids are cached; scores of
// cached results are dropped.
type Cached struct {
	next  Recommender
	cache *cache.RedisCache
	ttl   time.Duration
	log   *slog.Logger
}

func NewCached(next Recommender, c *cache.RedisCache, ttl time.Duration, log *slog.Logger) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl, log: log}
}

func (c *Cached) Recommendations(ctx context.Context, recipeID uint64) ([]Recommendation, error) {
	key := c.cache.KeyForRelated(recipeID)

	// try cache first
	if ids, ok, err := c.cache.GetIDs(ctx, key); err == nil && ok {
		recs := make([]Recommendation, len(ids))
		for i, id := range ids {
			recs[i] = Recommendation{ID: id}
		}
		return recs, nil
	} else if err != nil {
		c.log.Warn("related cache read failed", "recipe_id", recipeID, "err", err)
	}

	recs, err := c.next.Recommendations(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetIDs(ctx, key, IDs(recs), c.ttl); err != nil {
		c.log.Warn("related cache write failed", "recipe_id", recipeID, "err", err)
	}
	return recs, nil
}
