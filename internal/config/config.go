package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LogConfig controls the global slog logger.
type LogConfig struct {
	Level     string
	Format    string
	Component string
	Source    bool
}

type Config struct {
	App struct {
		ENV string
	}

	Log LogConfig

	DB struct {
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		LogLevel string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	GRPC struct {
		Host string
		Port string
	}

	Paging struct {
		DefaultLimit int
		MaxLimit     int
	}

	Cache struct {
		TopRecipesTTL time.Duration
	}

	Recommender struct {
		URL      string
		Timeout  time.Duration
		CacheTTL time.Duration
	}
}

// New builds the configuration from the environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App.ENV = getEnvDefault("APP_ENV", "production")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "mealplanner")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.LogLevel = getEnvDefault("DB_LOG_LEVEL", "warn")
	cfg.DB.DSN = os.Getenv("MYSQL_DSN")
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.Port = getEnvDefault("DB_PORT", "3306")
		cfg.DB.User = getEnvDefault("DB_USER", "root")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "root")
		cfg.DB.Name = getEnvDefault("DB_NAME", "mealplanner")

		cfg.DB.DSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
		)
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	// gRPC
	cfg.GRPC.Host = getEnvDefault("GRPC_HOST", "127.0.0.1")
	cfg.GRPC.Port = getEnvDefault("GRPC_PORT", "50051")

	// Paging
	cfg.Paging.DefaultLimit = getEnvInt("PAGE_DEFAULT_LIMIT", 10)
	cfg.Paging.MaxLimit = getEnvInt("PAGE_MAX_LIMIT", 100)

	// Cache
	cfg.Cache.TopRecipesTTL = getEnvDuration("TOP_RECIPES_TTL", time.Minute)

	// Recommender
	cfg.Recommender.URL = strings.TrimRight(getEnvDefault("RECOMMENDER_URL", ""), "/")
	cfg.Recommender.Timeout = getEnvDuration("RECOMMENDER_TIMEOUT", 2*time.Second)
	cfg.Recommender.CacheTTL = getEnvDuration("RECOMMENDER_CACHE_TTL", 10*time.Minute)

	return cfg
}

// IsDevelopment reports whether demo data may be seeded on boot.
func (c *Config) IsDevelopment() bool {
	return c.App.ENV == "development"
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if n, err := strconv.Atoi(getEnvDefault(k, "")); err == nil {
		return n
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnvDefault(k, "")); err == nil && d >= 0 {
		return d
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
