package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/cache"
	"github.com/oggyb/mealplanner/internal/config"
	"github.com/oggyb/mealplanner/internal/db"
	"github.com/oggyb/mealplanner/internal/logger"
	"github.com/oggyb/mealplanner/internal/recommend"
	"github.com/oggyb/mealplanner/internal/server"
	"github.com/oggyb/mealplanner/internal/service/mealplans"
	"github.com/oggyb/mealplanner/internal/service/recipes"
	"github.com/oggyb/mealplanner/internal/service/schedules"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(cfg, database, redisCache, log, newRecommender(cfg, redisCache, log))

	registrars := []server.Registrar{
		recipes.NewRegistrar(appCtx),
		mealplans.NewRegistrar(appCtx),
		schedules.NewRegistrar(appCtx),
	}

	if cfg.IsDevelopment() {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.GRPC.Host + ":" + cfg.GRPC.Port
	log.Info("starting gRPC server", "addr", addr)

	if err := server.StartGRPCServer(ctx, cfg, log, registrars...); err != nil {
		log.Error("failed to start gRPC server", "err", err)
	}
}

// newRecommender chains HTTP client, circuit breaker and Redis cache.
// Without RECOMMENDER_URL related lists are always empty.
func newRecommender(cfg *config.Config, rc *cache.RedisCache, log *slog.Logger) recommend.Recommender {
	if cfg.Recommender.URL == "" {
		log.Info("no recommender configured, related recipes disabled")
		return recommend.Noop{}
	}
	client := recommend.NewHTTPClient(cfg.Recommender.URL, cfg.Recommender.Timeout)
	breaker := recommend.NewBreaker(client, log)
	return recommend.NewCached(breaker, rc, cfg.Recommender.CacheTTL, log)
}
