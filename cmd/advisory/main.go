package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/slopewise/avalanche-advisory/internal/adapter/http"
	kafkaadapter "github.com/slopewise/avalanche-advisory/internal/adapter/kafka"
	"github.com/slopewise/avalanche-advisory/internal/adapter/postgres"
	"github.com/slopewise/avalanche-advisory/internal/advisory"
	"github.com/slopewise/avalanche-advisory/internal/config"
	"github.com/slopewise/avalanche-advisory/internal/flags"
	"github.com/slopewise/avalanche-advisory/internal/ingest"
	"github.com/slopewise/avalanche-advisory/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := postgres.New(connectCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	flagCache := flags.NewCache(store, cfg.FlagsTTL, clockwork.NewRealClock(), logger, metrics)
	builder := advisory.NewBuilder(store, logger, metrics, cfg.AdvisoryWindowDays)

	// Ingestion is feature-flagged via KAFKA_ENABLED; without it the service
	// serves advisories from whatever the store already holds.
	var reader *kafkaadapter.Reader
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		p := ingest.New(reader, ingest.NewTransformer(), store, logger, metrics, cfg.BatchSize)
		logger.Info("kafka ingestion enabled",
			"topic", cfg.KafkaSourceTopic, "group", cfg.KafkaGroupID, "batch_size", cfg.BatchSize)

		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("ingest pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("kafka ingestion disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, builder, flagCache, builder, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
