package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ecnlab/ecn/internal/application/dto"
	"github.com/ecnlab/ecn/internal/domain/repository"
	"github.com/ecnlab/ecn/internal/domain/service"
	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/logger"
)

// EarthquakeAppService serves the earthquake catalogue.
type EarthquakeAppService interface {
	// ListEarthquakes returns every earthquake in store order.
	ListEarthquakes(ctx context.Context) (*dto.EarthquakeListResponse, error)

	// GetEarthquake returns one earthquake or a not_found error.
	GetEarthquake(ctx context.Context, id string) (*dto.EarthquakeResponse, error)
}

type earthquakeAppServiceImpl struct {
	repo    repository.EarthquakeRepository
	metrics service.Metrics
	tracing service.Tracer
	logger  logger.Logger
}

func NewEarthquakeAppService(repo repository.EarthquakeRepository, metrics service.Metrics, tracing service.Tracer, log logger.Logger) EarthquakeAppService {
	return &earthquakeAppServiceImpl{
		repo:    repo,
		metrics: metrics,
		tracing: tracing,
		logger:  log,
	}
}

func (s *earthquakeAppServiceImpl) ListEarthquakes(ctx context.Context) (*dto.EarthquakeListResponse, error) {
	ctx, span := s.tracing.StartSpan(ctx, "EarthquakeAppService.ListEarthquakes", nil)
	defer span.End()
	log := s.logger.ForContext(ctx)

	start := time.Now()
	earthquakes, err := s.repo.FindAll(ctx)
	s.metrics.RecordStoreQuery("earthquakes.find_all", time.Since(start))
	if err != nil {
		s.tracing.RecordError(ctx, err)
		log.Error(ctx, "Failed to list earthquakes", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("ecn.result_count", len(earthquakes)))
	log.Debug(ctx, "Listed earthquakes", logger.Fields{"count": len(earthquakes)})
	return dto.NewEarthquakeListResponse(earthquakes), nil
}

func (s *earthquakeAppServiceImpl) GetEarthquake(ctx context.Context, id string) (*dto.EarthquakeResponse, error) {
	ctx, span := s.tracing.StartSpan(ctx, "EarthquakeAppService.GetEarthquake", map[string]interface{}{
		"ecn.earthquake_id": id,
	})
	defer span.End()

	start := time.Now()
	earthquake, err := s.repo.FindByID(ctx, id)
	s.metrics.RecordStoreQuery("earthquakes.find_by_id", time.Since(start))
	if err != nil {
		s.tracing.RecordError(ctx, err)
		logFailure(ctx, s.logger.ForContext(ctx), "Failed to get earthquake", err, logger.Fields{"earthquake_id": id})
		return nil, err
	}
	return dto.NewEarthquakeResponse(earthquake), nil
}

// TsunamiEventAppService serves the NOAA tsunami catalogue.
type TsunamiEventAppService interface {
	// ListRecentTsunamiEvents returns at most TsunamiEventListLimit events, most recent year first.
	ListRecentTsunamiEvents(ctx context.Context) (*dto.TsunamiEventListResponse, error)
}

type tsunamiEventAppServiceImpl struct {
	repo    repository.TsunamiEventRepository
	metrics service.Metrics
	tracing service.Tracer
	logger  logger.Logger
}

func NewTsunamiEventAppService(repo repository.TsunamiEventRepository, metrics service.Metrics, tracing service.Tracer, log logger.Logger) TsunamiEventAppService {
	return &tsunamiEventAppServiceImpl{
		repo:    repo,
		metrics: metrics,
		tracing: tracing,
		logger:  log,
	}
}

func (s *tsunamiEventAppServiceImpl) ListRecentTsunamiEvents(ctx context.Context) (*dto.TsunamiEventListResponse, error) {
	ctx, span := s.tracing.StartSpan(ctx, "TsunamiEventAppService.ListRecentTsunamiEvents", nil)
	defer span.End()

	start := time.Now()
	events, err := s.repo.FindRecent(ctx, constants.TsunamiEventListLimit)
	s.metrics.RecordStoreQuery("tsunami_events.find_recent", time.Since(start))
	if err != nil {
		s.tracing.RecordError(ctx, err)
		s.logger.ForContext(ctx).Error(ctx, "Failed to list tsunami events", err)
		return nil, err
	}
	if len(events) > constants.TsunamiEventListLimit {
		events = events[:constants.TsunamiEventListLimit]
	}
	return dto.NewTsunamiEventListResponse(events), nil
}
