package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"movielogger/database"
	"movielogger/internal/config"
	"movielogger/internal/ingestion/tmdb"
	"movielogger/internal/logger"
	"movielogger/internal/microservices/http-api/handler"
	"movielogger/internal/microservices/http-api/middleware"
	"movielogger/internal/microservices/http-api/repository"
	"movielogger/internal/microservices/http-api/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	appLogger, closer := logger.New(cfg)
	err = run(cfg, appLogger)
	if err != nil {
		appLogger.Error("server_exited", "error", err)
	}
	closer.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// Redis is optional; without it TMDB calls go straight through
	var cache *tmdb.RedisCache
	if cfg.RedisURL != "" {
		cache, err = tmdb.NewRedisCache(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			logger.Warn("cache_disabled", "error", err)
			cache = nil
		} else {
			defer cache.Close()
			logger.Info("cache_connected", "ttl", cfg.CacheDuration())
		}
	}

	router := newRouter(cfg, db, cache, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_started", "addr", server.Addr, "env", cfg.GoEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server_stopped")
	return nil
}

func newRouter(cfg *config.Config, db *gorm.DB, cache *tmdb.RedisCache, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var gatewayCache tmdb.Cache
	var cachePinger handler.Pinger
	if cache != nil {
		gatewayCache = cache
		cachePinger = cache.Ping
	}

	gateway := tmdb.NewCachedGateway(
		tmdb.NewClient(tmdb.Config{
			BaseURL:      cfg.TMDBAPIURL,
			ImageBaseURL: cfg.TMDBImageBaseURL,
			APIKey:       cfg.TMDBAPIKey,
		}, logger),
		gatewayCache,
		cfg.CacheDuration(),
		logger,
	)

	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	logRepo := repository.NewMovieLogRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	reconciler := service.NewReconciler(movieRepo)
	movieService := service.NewMovieService(movieRepo, reconciler, gateway)
	logService := service.NewMovieLogService(logRepo)
	watchlistService := service.NewWatchlistService(watchlistRepo)

	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService, logger),
		Movies:    handler.NewMovieHandler(movieService, logger),
		Logs:      handler.NewMovieLogHandler(reconciler, logService, logger),
		Watchlist: handler.NewWatchlistHandler(reconciler, watchlistService, logger),
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}, cachePinger, logger),
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig))
	r.Use(middleware.RequestLogger(logger))

	handler.RegisterRoutes(r, handlers, authService)
	return r
}
