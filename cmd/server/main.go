package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"devotional/internal/api"
	"devotional/internal/cache"
	"devotional/internal/config"
	"devotional/internal/domain"
	"devotional/internal/feed"
	"devotional/internal/language"
	"devotional/internal/library"
	"devotional/internal/metrics"
	"devotional/internal/service"
	"devotional/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	lib, err := library.New()
	if err != nil {
		logger.Error("failed to load built-in library", "error", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.NewRegistry())
	resolver := language.NewResolver(cfg.Languages.Supported, cfg.Languages.Default)

	fetcher := feed.New(feed.Config{
		Timeout:        cfg.Feeds.Timeout,
		UserAgent:      cfg.Feeds.UserAgent,
		MaxAttempts:    cfg.Feeds.Retry.MaxAttempts,
		InitialBackoff: cfg.Feeds.Retry.InitialBackoff,
		MaxBackoff:     cfg.Feeds.Retry.MaxBackoff,
	}, cfg.Feeds, logger, m)
	sourceCache := cache.New(fetcher, lib, logger, m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.WarmCache {
		if err := sourceCache.Warm(ctx, domain.Kinds, resolver.Supported()); err != nil {
			logger.Warn("cache warm-up interrupted", "error", err)
		}
		logger.Info("source cache warmed", "entries", sourceCache.Len())
	}

	contentStore := postgres.NewContentStore(db)
	aggregator := service.NewAggregator(contentStore, sourceCache, logger, cfg.Content)
	engine := service.NewEngine(contentStore, sourceCache, logger, m, cfg.Search)

	handler := api.NewHandler(aggregator, engine, resolver, db, logger)
	server := api.NewServer(handler, cfg.Server, m, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
