package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("PAGE_DEFAULT_LIMIT", "")
	t.Setenv("RECOMMENDER_URL", "")
	t.Setenv("TOP_RECIPES_TTL", "")

	cfg := New()

	assert.Equal(t, 10, cfg.Paging.DefaultLimit)
	assert.Equal(t, 100, cfg.Paging.MaxLimit)
	assert.Equal(t, time.Minute, cfg.Cache.TopRecipesTTL)
	assert.Empty(t, cfg.Recommender.URL)
	assert.Contains(t, cfg.DB.DSN, "parseTime=true")
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("MYSQL_DSN", "u:p@tcp(db:3306)/x")
	t.Setenv("PAGE_DEFAULT_LIMIT", "25")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RECOMMENDER_URL", "http://recs:8080/")
	t.Setenv("RECOMMENDER_TIMEOUT", "750ms")
	t.Setenv("APP_ENV", "development")
	t.Setenv("LOG_SOURCE", "yes")

	cfg := New()

	assert.Equal(t, "u:p@tcp(db:3306)/x", cfg.DB.DSN)
	assert.Equal(t, 25, cfg.Paging.DefaultLimit)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "http://recs:8080", cfg.Recommender.URL)
	assert.Equal(t, 750*time.Millisecond, cfg.Recommender.Timeout)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.Log.Source)
}

func TestNew_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("PAGE_MAX_LIMIT", "lots")
	t.Setenv("TOP_RECIPES_TTL", "soon")

	cfg := New()

	assert.Equal(t, 100, cfg.Paging.MaxLimit)
	assert.Equal(t, time.Minute, cfg.Cache.TopRecipesTTL)
}
