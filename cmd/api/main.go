package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/mealfeed/backend/config"
	"github.com/pageza/mealfeed/backend/internal/database"
	"github.com/pageza/mealfeed/backend/internal/logging"
	"github.com/pageza/mealfeed/backend/internal/server"
	"github.com/pageza/mealfeed/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.Info().Str("environment", string(cfg.Environment)).Msg("starting mealfeed api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if cfg.DBDriver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate sqlite database")
		}
	}

	deps := server.Deps{DB: db}

	// Redis backs the feed cache and engagement limiter; the API runs without both.
	if rdb, err := database.NewRedisClient(cfg); err != nil {
		logging.Warn().Err(err).Msg("redis unavailable, running without feed cache and engagement rate limits")
	} else {
		deps.Redis = rdb
		defer closeRedis(rdb)
	}

	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("s3 unavailable, recipe images will not be signed")
		} else {
			deps.Images = service.NewS3ImageSigner(s3cfg, cfg.ImageURLTTL)
		}
	}

	srv := server.New(cfg, deps)
	if err := srv.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
	logging.Info().Msg("server stopped")
}

func closeRedis(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		logging.Warn().Err(err).Msg("failed to close redis client")
	}
}
