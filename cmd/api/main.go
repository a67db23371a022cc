package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/tastemap/backend/config"
	"github.com/pageza/tastemap/backend/internal/achievement"
	"github.com/pageza/tastemap/backend/internal/api"
	"github.com/pageza/tastemap/backend/internal/database"
	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/metrics"
	"github.com/pageza/tastemap/backend/internal/recommendation"
	"github.com/pageza/tastemap/backend/internal/server"
	"github.com/pageza/tastemap/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server error", "error", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		return err
	}

	m := metrics.New()

	// Redis backs the cache, the evaluation lock and rate limiting. Without it
	// the service runs single-instance with an in-process lock.
	var (
		redisClient *redis.Client
		locker      service.Locker = database.NewLocalLocker()
		cache       service.Cache
	)
	if client, err := database.NewRedisClient(ctx, cfg, log); err != nil {
		log.Warn("redis unavailable, continuing without cache and rate limiting", "error", err)
	} else {
		redisClient = client
		defer client.Close()
		locker = database.NewRedisLocker(client, "lock", cfg.EvaluationLockTTL)
		cache = database.NewRedisCache(client, "recommendations")
	}

	rules, err := achievement.DefaultRuleSet()
	if err != nil {
		return fmt.Errorf("failed to load achievement rules: %w", err)
	}
	achievements := service.NewAchievementService(db,
		achievement.NewEvaluator(rules, database.NewAchievementStore(db)), locker, m, log)

	catalog := service.NewCatalogService(db)
	recs := service.NewRecommendationService(
		service.NewTasteProfileService(db, log),
		catalog,
		recommendation.NewRanker(recommendation.DefaultWeights()),
		service.RecommendationOptions{
			Cache:        cache,
			CacheTTL:     cfg.RecommendationCacheTTL,
			DefaultLimit: cfg.RecommendationLimit,
			Metrics:      m,
			Logger:       log,
		},
	)

	services := api.Services{
		Profiles:        service.NewTasteProfileService(db, log, recs),
		Catalog:         catalog,
		Recommendations: recs,
		Achievements:    achievements,
	}
	if cfg.S3Bucket != "" {
		store, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to configure object storage: %w", err)
		}
		services.Photos = service.NewPhotoService(db, store, achievements, m, log)
	} else {
		log.Warn("S3_BUCKET not set, photo uploads disabled")
	}

	srv := server.New(cfg, server.Dependencies{
		DB:       db,
		Redis:    redisClient,
		Tokens:   service.NewTokenService(cfg.JWTSecret),
		Services: services,
		Metrics:  m,
		Logger:   log,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info("server stopped")
	return nil
}
