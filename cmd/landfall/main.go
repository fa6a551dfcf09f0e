package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/hurricane-landfall-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/hurricane-landfall-service/internal/adapter/kafka"
	"github.com/couchcryptid/hurricane-landfall-service/internal/adapter/mapbox"
	"github.com/couchcryptid/hurricane-landfall-service/internal/adapter/noaa"
	"github.com/couchcryptid/hurricane-landfall-service/internal/adapter/pdf"
	"github.com/couchcryptid/hurricane-landfall-service/internal/config"
	"github.com/couchcryptid/hurricane-landfall-service/internal/observability"
	"github.com/couchcryptid/hurricane-landfall-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var opts []pipeline.Option

	// Geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		opts = append(opts, pipeline.WithEnricher(pipeline.NewRowEnricher(geocoder, logger)))
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	// Publishing is feature-flagged via KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if cfg.PublishEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts = append(opts, pipeline.WithPublisher(writer))
		logger.Info("report publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReportTopic)
	}

	source := noaa.NewSource(cfg.HurdatURL, cfg.FeedTimeout, logger)
	svc := pipeline.NewReportService(source, cfg.Criteria(), logger, metrics, opts...)
	renderer := pdf.NewRenderer("Hurricane Landfall Report")

	api := httpadapter.NewAPI(svc, renderer, cfg.CORSOrigins, metrics, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, api, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	logger.Info("landfall report service started",
		"source", source.Name(),
		"min_year", cfg.MinYear,
		"region", cfg.Region,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
