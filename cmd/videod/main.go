package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dnascimb/video-upload-service/api/handler"
	"github.com/dnascimb/video-upload-service/internal/cache"
	"github.com/dnascimb/video-upload-service/internal/config"
	"github.com/dnascimb/video-upload-service/internal/database"
	"github.com/dnascimb/video-upload-service/internal/media"
	"github.com/dnascimb/video-upload-service/internal/repository"
	"github.com/dnascimb/video-upload-service/internal/service"
	"github.com/dnascimb/video-upload-service/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	ctx := context.Background()

	backend, err := storage.Select(ctx, storage.Settings{
		ObjectStore: storage.ObjectStoreConfig{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Bucket:          cfg.S3BucketName,
			Region:          cfg.S3Region,
			UseSSL:          cfg.S3UseSSL,
		},
		LocalDir:     cfg.LocalStorageDir,
		ProbeTimeout: cfg.ProbeTimeout(),
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage backend", zap.Error(err))
	}

	var videos repository.Videos = repository.NewGormVideos(db)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, metadata cache disabled", zap.Error(err))
		} else {
			videos = cache.NewCachedVideos(videos, cache.New(client, cfg.CacheTTL()), logger)
			logger.Info("metadata cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	uploader := &service.Uploader{
		Backend:    backend,
		Videos:     videos,
		PutTimeout: cfg.StorageTimeout(),
		Log:        logger,
	}
	if cfg.ProbeEnabled {
		uploader.Probe = media.ProbeDuration
	}

	h := &handler.Handler{
		Uploads: uploader,
		Videos:  videos,
		Log:     logger,
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	if cfg.RateLimitPerSecond > 0 {
		e.Use(middleware.RateLimiter(
			middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitPerSecond))))
	}

	e.POST("/videos", h.Upload)
	e.GET("/videos/:id", h.GetVideo)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", cfg.ServerPort)))
}
