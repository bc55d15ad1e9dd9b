// Command ecn-svc serves the earthquake and tsunami event records.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	appservice "github.com/ecnlab/ecn/internal/application/service"
	"github.com/ecnlab/ecn/internal/bootstrap"
	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/internal/infrastructure/monitoring"
	ecnhttp "github.com/ecnlab/ecn/internal/interfaces/http"
	"github.com/ecnlab/ecn/internal/interfaces/http/handlers"
	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Load config
	loader := config.NewLoader(constants.ServiceNameRecords)
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()
	loader.Watch(appLogger, func(next *config.Config) { appLogger.SetLevel(next.Log.Level) })

	// Initialize tracing
	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize tracer", err)
	}
	defer func() { _ = tracing.Shutdown(context.Background()) }()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetrics(registry)

	// Initialize record store
	records, err := bootstrap.OpenRecords(ctx, cfg, metrics, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to open record store", err)
	}
	defer records.Close(context.Background())

	// Initialize HTTP handlers and router
	h := ecnhttp.Handlers{
		Root:         handlers.NewRootHandler(handlers.RecordsWelcome),
		Health:       handlers.NewHealthHandler(records.Checks, appLogger),
		Earthquake:   handlers.NewEarthquakeHandler(appservice.NewEarthquakeAppService(records.Earthquakes, metrics, tracing, appLogger)),
		TsunamiEvent: handlers.NewTsunamiEventHandler(appservice.NewTsunamiEventAppService(records.TsunamiEvents, metrics, tracing, appLogger)),
	}
	if cfg.Model.Enabled {
		predictor, err := bootstrap.LoadPredictor(&cfg.Model, appLogger)
		if err != nil {
			appLogger.Fatal(ctx, "Failed to load tsunami potential model", err, logger.Fields{"path": cfg.Model.Path})
		}
		h.Prediction = handlers.NewPredictionHandler(appservice.NewPredictionAppService(predictor, metrics, tracing, appLogger))
	}
	router := ecnhttp.NewRouter(cfg, appLogger, metrics, tracing, registry, h)

	serveErr := make(chan error, 1)
	go func() { serveErr <- router.Start() }()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if err != nil {
			appLogger.Error(ctx, "HTTP server failed", err)
		}
	case <-sigCtx.Done():
		appLogger.Info(ctx, "Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := router.Stop(shutdownCtx); err != nil {
		appLogger.Error(ctx, "HTTP server shutdown failed", err)
	}
}
