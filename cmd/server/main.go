package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell/inkwell/internal/api"
	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/blog"
	"github.com/inkwell/inkwell/internal/cache"
	"github.com/inkwell/inkwell/internal/db"
	"github.com/inkwell/inkwell/internal/feed"
	"github.com/inkwell/inkwell/internal/media"
	"github.com/inkwell/inkwell/pkg/config"
	"github.com/inkwell/inkwell/pkg/logging"
	"github.com/inkwell/inkwell/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Inkwell API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Connect to the database and ensure the schema
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Listing cache: Redis when configured, in-process otherwise
	var backend cache.Cache
	redisCache, err := cache.NewRedis(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisCache != nil {
		defer redisCache.Close()
		backend = redisCache
	} else {
		backend = cache.NewMemory()
	}
	listing := cache.NewListingCache(backend, cfg.Feed.CacheTTL)

	// Blob storage for post images
	var mediaStore media.Store
	s3Store, err := media.NewS3(context.Background(), &cfg.Media)
	if err != nil {
		logger.Fatal("Failed to configure blob storage", zap.Error(err))
	}
	if s3Store != nil {
		mediaStore = s3Store
	}

	// Repositories
	repo := db.NewRepository(database.DB)
	users := db.NewUserRepository(repo)
	groups := db.NewGroupRepository(repo)
	posts := db.NewPostRepository(repo)
	comments := db.NewCommentRepository(repo)
	follows := db.NewFollowRepository(repo)

	// Core components
	assembler := feed.NewAssembler(posts, groups, users, follows, cfg.Feed.PerPage)
	service := blog.NewService(posts, comments, follows, users, groups)
	authenticator := auth.NewAuthenticator(&cfg.Auth, users)

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	router := api.NewRouter(api.Deps{
		Assembler: assembler,
		Service:   service,
		Auth:      authenticator,
		Listing:   listing,
		Posts:     posts,
		Comments:  comments,
		Media:     mediaStore,
	})
	router.SetupRoutes(engine)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
