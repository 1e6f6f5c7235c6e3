package app

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/mealplanner/internal/cache"
	"github.com/oggyb/mealplanner/internal/config"
	"github.com/oggyb/mealplanner/internal/filter"
	"github.com/oggyb/mealplanner/internal/recommend"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	DB          *gorm.DB
	RedisCache  *cache.RedisCache
	Logger      *slog.Logger
	Recommender recommend.Recommender
	Limits      filter.Limits
	TopTTL      time.Duration
}

// New creates a new AppContext. Paging limits and the leaderboard TTL are
// taken from cfg; a nil recommender becomes recommend.Noop.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger, rec recommend.Recommender) *AppContext {
	if rec == nil {
		rec = recommend.Noop{}
	}
	return &AppContext{
		DB:          db,
		RedisCache:  rdb,
		Logger:      logger,
		Recommender: rec,
		Limits: filter.Limits{
			DefaultLimit: cfg.Paging.DefaultLimit,
			MaxLimit:     cfg.Paging.MaxLimit,
		},
		TopTTL: cfg.Cache.TopRecipesTTL,
	}
}
