package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"devotional/internal/config"
	"devotional/internal/domain"
	"devotional/internal/feed"
	"devotional/internal/library"
	"devotional/internal/publisher"
	"devotional/internal/scheduler"
	"devotional/internal/service"
	"devotional/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	interval := flag.Duration("interval", -1, "re-import interval; 0 runs once (default: import.interval from config)")
	languages := flag.String("languages", "", "comma-separated languages to import (default: all supported)")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if *interval < 0 {
		*interval = cfg.Import.Interval
	}

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

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled() {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	fetcher := feed.New(feed.Config{
		Timeout:        cfg.Feeds.Timeout,
		UserAgent:      cfg.Feeds.UserAgent,
		MaxAttempts:    cfg.Feeds.Retry.MaxAttempts,
		InitialBackoff: cfg.Feeds.Retry.InitialBackoff,
		MaxBackoff:     cfg.Feeds.Retry.MaxBackoff,
	}, cfg.Feeds, logger, nil)

	contentStore := postgres.NewContentStore(db)
	importer := service.NewImporter(
		fetcher,
		lib,
		contentStore,
		postgres.NewImportStateStore(db),
		postgres.NewTransactionManager(db),
		pub,
		logger,
	)

	kinds := make([]domain.Kind, 0, len(cfg.Import.Kinds))
	for _, name := range cfg.Import.Kinds {
		if kind, ok := domain.ParseKind(name); ok {
			kinds = append(kinds, kind)
		}
	}
	langs := parseLanguages(*languages, cfg.Languages.Supported)

	job := scheduler.JobFunc(func(ctx context.Context) error {
		all, err := importer.ImportAll(ctx, kinds, langs)
		for _, stats := range all {
			logger.Info("import finished",
				"kind", stats.Kind,
				"language", stats.Language,
				"fetched", stats.Fetched,
				"new", stats.New,
				"updated", stats.Updated,
				"skipped", stats.Skipped,
				"errors", stats.Errors,
				"published", stats.Published,
				"duration", stats.Duration,
			)
		}
		return err
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting content import",
		"kinds", kinds,
		"languages", langs,
		"interval", *interval,
	)

	if *interval == 0 {
		runCtx, cancel := context.WithTimeout(ctx, cfg.Import.Timeout)
		defer cancel()
		if err := job.Run(runCtx); err != nil {
			logger.Error("import failed", "error", err)
			os.Exit(1)
		}
		return
	}

	sched := scheduler.NewScheduler(job, *interval, cfg.Import.Timeout, logger)
	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func parseLanguages(flagValue string, supported []string) []string {
	if strings.TrimSpace(flagValue) == "" {
		return supported
	}

	var langs []string
	for _, l := range strings.Split(flagValue, ",") {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
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
