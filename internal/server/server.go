package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidshare/internal/config"
	"vidshare/internal/handler"
	"vidshare/internal/middleware"
	"vidshare/internal/redis"
	"vidshare/internal/services"
	"vidshare/internal/transport/httpdto"
	"vidshare/internal/websocket"
	"vidshare/pkg/database"
	"vidshare/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Video    *handler.VideoHandler
	Category *handler.CategoryHandler
	Comment  *handler.CommentHandler
	Chat     *websocket.Handler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// SetupRoutes registers the full route table. limiter may be nil when
// redis is unavailable; rate limiting is skipped in that case.
func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
			return
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	authed := middleware.AuthMiddleware(authService)

	auth := s.engine.Group("/v1/auth")
	if limiter != nil {
		auth.Use(middleware.AuthRateLimitMiddleware(limiter))
	}
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	categories := s.engine.Group("/v1/categories")
	{
		categories.GET("", handlers.Category.List)
		categories.GET("/:name", handlers.Category.GetByName)
		categories.POST("", authed, handlers.Category.Create)
		categories.PATCH("/:id", authed, handlers.Category.Update)
		categories.DELETE("/:id", authed, handlers.Category.Delete)
	}

	uploadGuard := []gin.HandlerFunc{authed}
	if limiter != nil {
		uploadGuard = append(uploadGuard, middleware.UploadRateLimitMiddleware(limiter))
	}

	videos := s.engine.Group("/v1/videos")
	{
		videos.GET("", handlers.Video.List)
		videos.GET("/search", handlers.Video.Search)
		videos.GET("/category/:name", handlers.Video.ListByCategory)
		videos.GET("/user/:userId", handlers.Video.ListByUser)
		videos.GET("/me", authed, handlers.Video.ListOwn)
		videos.POST("", append(uploadGuard, handlers.Video.Create)...)
		videos.GET("/:id", authed, handlers.Video.GetOne)
		videos.PATCH("/:id", append(uploadGuard, handlers.Video.Update)...)
		videos.DELETE("/:id", authed, handlers.Video.Delete)
		videos.GET("/:id/file", handlers.Video.GetFile)
		videos.POST("/:id/thumbnail", authed, handlers.Video.UploadThumbnail)
		videos.GET("/:id/comments", handlers.Comment.ListByVideo)
		videos.POST("/:id/comments", authed, handlers.Comment.Create)
	}

	comments := s.engine.Group("/v1/comments")
	{
		comments.PATCH("/:id", authed, handlers.Comment.Update)
		comments.DELETE("/:id", authed, handlers.Comment.Delete)
	}

	s.engine.GET("/ws/chat", handlers.Chat.Connect)
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
