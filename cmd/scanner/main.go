package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/wallet-radar/internal/application/services"
	"github.com/bimakw/wallet-radar/internal/config"
	"github.com/bimakw/wallet-radar/internal/infrastructure/cache"
	"github.com/bimakw/wallet-radar/internal/infrastructure/tracker"
)

// scanner runs a single overlap analysis over SCANNER_TOKENS and writes the
// result as JSON to stdout. Token addresses may also be passed as arguments.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log.Level)
	defer logger.Sync()

	tokens := cfg.Scanner.Tokens
	if len(os.Args) > 1 {
		tokens = os.Args[1:]
	}
	if len(tokens) < 2 {
		logger.Fatal("At least two token addresses are required (SCANNER_TOKENS or arguments)")
	}
	if cfg.Tracker.APIKey == "" {
		logger.Fatal("TRACKER_API_KEY is required")
	}

	logger.Info("Starting scan",
		zap.Strings("tokens", tokens),
		zap.String("upstream", cfg.Tracker.APIURL),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal, cancelling scan...")
		cancel()
	}()

	client := tracker.NewClient(cfg.Tracker, cache.NewMemory(), logger)
	defer client.Close()

	service := services.NewAnalysisService(client, cfg.Analysis, logger)

	result, err := service.AnalyzeTokens(ctx, tokens)
	if err != nil {
		logger.Fatal("Scan failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Fatal("Failed to encode result", zap.Error(err))
	}

	logger.Info("Scan complete",
		zap.Int("tokens", len(result.Tokens)),
		zap.Int("overlap_wallets", len(result.Wallets)),
	)
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
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	return logger
}
