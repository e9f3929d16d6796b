package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/groundwater-forecast-service/internal/adapter/gemini"
	"github.com/couchcryptid/groundwater-forecast-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/groundwater-forecast-service/internal/adapter/kafka"
	"github.com/couchcryptid/groundwater-forecast-service/internal/adapter/netcheck"
	"github.com/couchcryptid/groundwater-forecast-service/internal/config"
	"github.com/couchcryptid/groundwater-forecast-service/internal/forecast"
	"github.com/couchcryptid/groundwater-forecast-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		BaseURL:     cfg.GeminiBaseURL,
		Timeout:     cfg.GeminiTimeout,
		Temperature: &cfg.GeminiTemperature,
	}, logger)
	if err != nil {
		logger.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}

	// Response cache (feature-flagged via PREDICT_CACHE_SIZE).
	var generator forecast.Generator = client
	if cfg.CacheSize > 0 {
		generator = gemini.NewCachedGenerator(client, cfg.CacheSize, metrics)
		logger.Info("response cache enabled", "cache_size", cfg.CacheSize)
	} else {
		logger.Info("response cache disabled")
	}

	probe := netcheck.NewProbe(cfg.ProbeAddr, cfg.ProbeTimeout, logger)

	opts := []forecast.Option{
		forecast.WithClock(clock),
		forecast.WithConnectivity(probe),
	}

	// State publishing (feature-flagged via KAFKA_BROKERS).
	var publisher *kafkaadapter.StatePublisher
	if cfg.KafkaEnabled() {
		publisher = kafkaadapter.NewStatePublisher(cfg, clock, metrics, logger)
		opts = append(opts, forecast.WithObservers(publisher))
		logger.Info("state publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaStateTopic)
	} else {
		logger.Info("state publishing disabled")
	}

	policy := forecast.Policy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		MinLoading:  cfg.MinLoading,
	}
	session := forecast.NewSession(generator, policy, logger, metrics, opts...)

	srv := httpadapter.NewServer(cfg.HTTPAddr, probe, session, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	logger.Info("forecast service started",
		"model", client.Model(),
		"max_attempts", policy.MaxAttempts,
		"retry_base_delay", policy.BaseDelay,
		"min_loading", policy.MinLoading,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
