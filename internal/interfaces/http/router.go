// Package http wires the gin engine and HTTP server for the ECN services.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecnlab/ecn/internal/application/dto"
	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/internal/infrastructure/monitoring"
	"github.com/ecnlab/ecn/internal/interfaces/http/handlers"
	"github.com/ecnlab/ecn/internal/interfaces/http/middleware"
	"github.com/ecnlab/ecn/pkg/constants"
	apperrors "github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

// Handlers groups the endpoint handlers. Nil handlers leave their routes unmounted.
type Handlers struct {
	Root         *handlers.RootHandler
	Health       *handlers.HealthHandler
	Earthquake   *handlers.EarthquakeHandler
	TsunamiEvent *handlers.TsunamiEventHandler
	Prediction   *handlers.PredictionHandler
}

// Router owns the gin engine and the HTTP server.
type Router struct {
	engine   *gin.Engine
	config   *config.Config
	logger   logger.Logger
	metrics  *monitoring.Metrics
	tracing  *monitoring.TracingManager
	gatherer prometheus.Gatherer
	handlers Handlers
	server   *http.Server
}

// NewRouter builds the engine with every route mounted. gatherer backs /metrics.
func NewRouter(cfg *config.Config, log logger.Logger, metrics *monitoring.Metrics, tracing *monitoring.TracingManager, gatherer prometheus.Gatherer, h Handlers) *Router {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:   gin.New(),
		config:   cfg,
		logger:   log,
		metrics:  metrics,
		tracing:  tracing,
		gatherer: gatherer,
		handlers: h,
	}
	r.setupRoutes()
	r.server = &http.Server{
		Addr:           cfg.Server.Address(),
		Handler:        r.engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}
	return r
}

// Engine exposes the handler for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) setupRoutes() {
	// Recovery sits inside Observability and Logging so a panic's 500 is
	// counted and logged like any other.
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Observability(r.tracing, r.metrics))
	r.engine.Use(middleware.Logging(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(cors.New(corsConfig(r.config.Server.AllowedOrigins)))

	if h := r.handlers.Health; h != nil {
		r.engine.GET("/health/live", h.LivenessCheck)
		r.engine.GET("/health/ready", h.ReadinessCheck)
	}
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	if r.config.Monitoring.PprofEnabled {
		pprof.Register(r.engine)
	}

	if h := r.handlers.Root; h != nil {
		r.engine.GET("/", h.Welcome)
	}
	if h := r.handlers.Earthquake; h != nil {
		r.engine.GET("/earthquakes", h.List)
		r.engine.GET("/earthquakes/:id", h.Get)
	}
	if h := r.handlers.TsunamiEvent; h != nil {
		r.engine.GET("/tsunamiEvents", h.List)
	}
	if h := r.handlers.Prediction; h != nil {
		r.engine.POST("/tsunamiPotential/predict", h.Predict)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		status, body := dto.NewErrorResponse(apperrors.ErrNotFound)
		c.JSON(status, body)
	})
}

// corsConfig allows every origin when origins is empty or contains "*".
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", constants.HeaderRequestID},
		ExposeHeaders: []string{constants.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Start serves until Stop is called. It returns nil after a clean shutdown.
func (r *Router) Start() error {
	r.logger.Info(context.Background(), "Starting HTTP server", logger.Fields{"address": r.server.Addr})
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (r *Router) Stop(ctx context.Context) error {
	r.logger.Info(ctx, "Stopping HTTP server")
	return r.server.Shutdown(ctx)
}
