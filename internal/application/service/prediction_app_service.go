package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ecnlab/ecn/internal/application/dto"
	"github.com/ecnlab/ecn/internal/domain/service"
	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/logger"
)

// Prediction outcomes reported to metrics.
const (
	OutcomeTsunami   = "tsunami"
	OutcomeNoTsunami = "no_tsunami"
	OutcomeError     = "error"
)

// PredictionAppService scores the tsunami potential of an earthquake.
type PredictionAppService interface {
	Predict(ctx context.Context, req *dto.PredictRequest) (*dto.PredictionResponse, error)
}

type predictionAppServiceImpl struct {
	predictor service.TsunamiPotentialPredictor
	metrics   service.Metrics
	tracing   service.Tracer
	logger    logger.Logger
}

func NewPredictionAppService(predictor service.TsunamiPotentialPredictor, metrics service.Metrics, tracing service.Tracer, log logger.Logger) PredictionAppService {
	return &predictionAppServiceImpl{
		predictor: predictor,
		metrics:   metrics,
		tracing:   tracing,
		logger:    log,
	}
}

// Predict validates the request and returns the raw model outputs. The 0.5
// decision is logged and counted but not returned.
func (s *predictionAppServiceImpl) Predict(ctx context.Context, req *dto.PredictRequest) (*dto.PredictionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	t0, td, mw := *req.T0, *req.Td, *req.Mw

	ctx, span := s.tracing.StartSpan(ctx, "PredictionAppService.Predict", map[string]interface{}{
		"ecn.t0": t0,
		"ecn.td": td,
		"ecn.mw": mw,
	})
	defer span.End()
	log := s.logger.ForContext(ctx)

	start := time.Now()
	potential, err := s.predictor.Predict(ctx, t0, td, mw)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.RecordPrediction(OutcomeError, elapsed)
		s.tracing.RecordError(ctx, err)
		log.Error(ctx, "Tsunami potential prediction failed", err, logger.Fields{"t0": t0, "td": td, "mw": mw})
		return nil, err
	}

	isTsunami := potential.IsTsunami(constants.TsunamiDecisionThreshold)
	outcome := OutcomeNoTsunami
	if isTsunami {
		outcome = OutcomeTsunami
	}
	s.metrics.RecordPrediction(outcome, elapsed)
	span.SetAttributes(
		attribute.Float64("ecn.tsunami_yes", potential.Yes),
		attribute.Float64("ecn.tsunami_no", potential.No),
	)

	log.Info(ctx, "Tsunami potential output neurons", logger.Fields{
		"t0":  t0,
		"td":  td,
		"mw":  mw,
		"yes": potential.Yes,
		"no":  potential.No,
	})
	log.Info(ctx, "Tsunami potential", logger.Fields{
		"yes": isTsunami,
		"no":  potential.IsNoTsunami(constants.TsunamiDecisionThreshold),
	})

	return dto.NewPredictionResponse(potential), nil
}
