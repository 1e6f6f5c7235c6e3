package testutil

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/cache"
	"github.com/oggyb/mealplanner/internal/config"
	"github.com/oggyb/mealplanner/internal/recommend"
)

// NewAppContext wires database, a miniredis-backed cache and rec into an
// AppContext with default paging limits. The miniredis server is returned
// so tests can inspect or fast-forward it.
func NewAppContext(t *testing.T, database *gorm.DB, rec recommend.Recommender) (*app.AppContext, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()
	cfg.Paging.DefaultLimit = 10
	cfg.Paging.MaxLimit = 100
	cfg.Cache.TopRecipesTTL = time.Minute

	return app.New(cfg, database, cache.NewRedisCache(cfg), Logger(), rec), mr
}
