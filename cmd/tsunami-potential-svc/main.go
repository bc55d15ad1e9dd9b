// Command tsunami-potential-svc serves tsunami potential predictions over HTTP
// and, when grpc.port is set, gRPC.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"

	appservice "github.com/ecnlab/ecn/internal/application/service"
	"github.com/ecnlab/ecn/internal/bootstrap"
	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/internal/infrastructure/monitoring"
	ecngrpc "github.com/ecnlab/ecn/internal/interfaces/grpc"
	ecnhttp "github.com/ecnlab/ecn/internal/interfaces/http"
	"github.com/ecnlab/ecn/internal/interfaces/http/handlers"
	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Load config
	loader := config.NewLoader(constants.ServiceNamePrediction)
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

	// Load the model before any listener starts
	predictor, err := bootstrap.LoadPredictor(&cfg.Model, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to load tsunami potential model", err, logger.Fields{"path": cfg.Model.Path})
	}
	predictionSvc := appservice.NewPredictionAppService(predictor, metrics, tracing, appLogger)

	// Initialize HTTP handlers and router
	router := ecnhttp.NewRouter(cfg, appLogger, metrics, tracing, registry, ecnhttp.Handlers{
		Root:       handlers.NewRootHandler(handlers.PredictionWelcome),
		Health:     handlers.NewHealthHandler(nil, appLogger),
		Prediction: handlers.NewPredictionHandler(predictionSvc),
	})

	serveErr := make(chan error, 2)
	go func() { serveErr <- router.Start() }()

	// Initialize and start gRPC server
	var grpcServer *grpc.Server
	if cfg.GRPC.Port > 0 {
		grpcServer = startGRPCServer(cfg, predictionSvc, appLogger, serveErr)
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if err != nil {
			appLogger.Error(ctx, "Server failed", err)
		}
	case <-sigCtx.Done():
		appLogger.Info(ctx, "Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := router.Stop(shutdownCtx); err != nil {
		appLogger.Error(ctx, "HTTP server shutdown failed", err)
	}
}

func startGRPCServer(cfg *config.Config, svc appservice.PredictionAppService, log logger.Logger, serveErr chan<- error) *grpc.Server {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(context.Background(), "Failed to listen for gRPC", err, logger.Fields{"address": addr})
	}

	grpcServer := ecngrpc.NewPredictionGRPCServer(svc, log)
	go func() {
		serveErr <- grpcServer.Serve(lis)
	}()

	log.Info(context.Background(), "gRPC server listening", logger.Fields{"address": addr})
	return grpcServer
}
