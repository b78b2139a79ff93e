package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Waseeq28/recalibration-app/internal/analyzer"
	"github.com/Waseeq28/recalibration-app/internal/api"
	"github.com/Waseeq28/recalibration-app/internal/cache"
	"github.com/Waseeq28/recalibration-app/internal/config"
	"github.com/Waseeq28/recalibration-app/internal/extractor"
	"github.com/Waseeq28/recalibration-app/internal/hermes"
	"github.com/Waseeq28/recalibration-app/internal/openai"
	"github.com/Waseeq28/recalibration-app/internal/processor"
	"github.com/Waseeq28/recalibration-app/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("insight starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenAI client
	if cfg.OpenAIAPIKey == "" {
		slog.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}
	llm := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	slog.Info("openai client ready", "model", cfg.OpenAIModel)

	// Extractor and analysis pipeline
	ext := extractor.New(llm, slog.Default())
	profileCache := cache.New(slog.Default())
	profileCache.StartSweeper(ctx)
	an := analyzer.New(ext, profileCache, slog.Default())

	// Database (optional — without it the day-based routes and event
	// pipeline are disabled, transcript routes still work)
	var db *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set — running without journal store")
	}

	// NATS/Hermes (optional — needs the store to resolve day events)
	if cfg.NatsURL != "" && db != nil {
		hermesClient, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer hermesClient.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)

		proc := processor.New(db, an, hermesClient, slog.Default())
		if err := hermesClient.Subscribe(hermes.SubjectSessionCompleted, proc.HandleSessionCompleted); err != nil {
			slog.Error("failed to subscribe to session events", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("NATS not configured — running without event pipeline")
	}

	// HTTP API
	var turnStore api.TurnStore
	if db != nil {
		turnStore = db
	}
	srv := api.NewServer(cfg.Port, cfg.APIToken, an, turnStore)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("insight ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("insight stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
