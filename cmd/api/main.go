package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"vidshare/internal/config"
	"vidshare/internal/domain/category"
	"vidshare/internal/domain/comment"
	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
	"vidshare/internal/handler"
	vredis "vidshare/internal/redis"
	"vidshare/internal/repository"
	"vidshare/internal/server"
	"vidshare/internal/services"
	"vidshare/internal/storage"
	"vidshare/internal/websocket"
	"vidshare/pkg/database"
	"vidshare/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	// Connect to Database
	database.Connect(cfg)

	if err := database.Migrate(
		&user.User{},
		&category.Category{},
		&video.Video{},
		&comment.Comment{},
	); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	if err := database.Seed(nil); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	ctx := context.Background()

	// Redis is optional: without it the rate limiter and category cache
	// are disabled and requests pass through unthrottled.
	var (
		limiter       *vredis.RateLimiter
		categoryCache *vredis.CategoryCache
	)
	redisClient := vredis.NewClient(vredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := vredis.Ping(ctx, redisClient); err != nil {
		l.Errorf("Redis unavailable, rate limiting and caching disabled: %s", err)
	} else {
		limiter = vredis.NewRateLimiter(redisClient, vredis.DefaultRateLimitConfig())
		categoryCache = vredis.NewCategoryCache(redisClient, vredis.DefaultCacheConfig())
	}

	blob, base := buildBlobStore(ctx, cfg)
	store := storage.NewVideoStore(base, blob)

	userRepo := repository.NewUserRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	videoRepo := repository.NewVideoRepository(database.DB)
	commentRepo := repository.NewCommentRepository(database.DB)

	authService := services.NewAuthService(userRepo, cfg)
	categoryService := services.NewCategoryService(categoryRepo, categoryCache)
	videoService := services.NewVideoService(videoRepo, userRepo, categoryRepo, store)
	commentService := services.NewCommentService(commentRepo, videoRepo)
	gate := services.NewUploadGate(categoryService, videoRepo, cfg.MaxUploadBytes)

	hub := websocket.NewHub()
	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()
	go hub.Run(hubCtx)

	handlers := &server.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Video:    handler.NewVideoHandler(gate, videoService),
		Category: handler.NewCategoryHandler(categoryService),
		Comment:  handler.NewCommentHandler(commentService),
		Chat:     websocket.NewHandler(authService, hub),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

func buildBlobStore(ctx context.Context, cfg *config.Config) (storage.Blob, string) {
	if cfg.StorageBackend == "s3" {
		s3Blob, err := storage.NewS3Blob(ctx, storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
		return s3Blob, cfg.UploadDir
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to resolve working directory: %v", err)
	}
	return storage.NewDiskBlob(), filepath.Join(cwd, cfg.UploadDir)
}
