package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/wallet-radar/internal/application/services"
	"github.com/bimakw/wallet-radar/internal/config"
	"github.com/bimakw/wallet-radar/internal/infrastructure/cache"
	"github.com/bimakw/wallet-radar/internal/infrastructure/tracker"
	"github.com/bimakw/wallet-radar/internal/presentation/handlers"
	"github.com/bimakw/wallet-radar/internal/presentation/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.Log.Level)
	defer logger.Sync()

	logger.Info("Starting wallet-radar API",
		zap.Int("port", cfg.API.Port),
		zap.String("upstream", cfg.Tracker.APIURL),
	)

	if cfg.Tracker.APIKey == "" {
		logger.Warn("TRACKER_API_KEY is empty, upstream calls will be rejected")
	}

	// Response cache: in-memory by default, Redis when configured
	var store cache.Store = cache.NewMemory()
	var cacheChecker handlers.HealthChecker
	if cfg.Redis.RedisEnabled() {
		redisStore, err := cache.NewRedis(cfg.Redis, 0, logger)
		if err != nil {
			logger.Warn("Failed to connect to Redis, using in-memory cache", zap.Error(err))
		} else {
			defer redisStoreClose(redisStore, logger)
			store = redisStore
			cacheChecker = redisStore
		}
	}

	// Tracker client: one instance, one serialized request queue
	client := tracker.NewClient(cfg.Tracker, store, logger)
	defer client.Close()

	// Create services
	analysisService := services.NewAnalysisService(client, cfg.Analysis, logger)
	recurrenceService := services.NewRecurrenceService(client, logger)
	walletService := services.NewWalletService(client, logger)

	// Create handlers
	analysisHandler := handlers.NewAnalysisHandler(analysisService, recurrenceService, cfg.API.MaxTokens, logger)
	walletHandler := handlers.NewWalletHandler(walletService, logger)
	healthHandler := handlers.NewHealthHandler(cacheChecker)

	// Setup router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RateLimiter(cfg.API.RateLimitRPS))

	// Health endpoints (no rate limiting)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/live", healthHandler.Live)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		analysisHandler.RegisterRoutes(r)
		walletHandler.RegisterRoutes(r)
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	// Run server in goroutine
	go func() {
		logger.Info("API server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Received shutdown signal, shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func redisStoreClose(store *cache.Redis, logger *zap.Logger) {
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close Redis", zap.Error(err))
	}
}

func setupLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	return logger
}
