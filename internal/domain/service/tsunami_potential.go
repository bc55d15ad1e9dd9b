package service

import (
	"context"
	"fmt"
	"math"

	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/pkg/errors"
)

// TsunamiModel is a pre-trained network consumed as an opaque function: a
// FeatureCount-wide input yields an output whose first two entries are the
// tsunami and no-tsunami affinities. Implementations must be safe for
// concurrent use.
type TsunamiModel interface {
	Forward(x []float64) ([]float64, error)
}

// TsunamiPotentialPredictor scores the tsunami potential of an earthquake.
type TsunamiPotentialPredictor interface {
	Predict(ctx context.Context, t0, td, mw float64) (models.TsunamiPotential, error)
}

type tsunamiPotentialPredictor struct {
	model TsunamiModel
}

// NewTsunamiPotentialPredictor wraps model with the feature normalization it was
// trained against.
func NewTsunamiPotentialPredictor(model TsunamiModel) TsunamiPotentialPredictor {
	return &tsunamiPotentialPredictor{model: model}
}

// Predict normalizes (t0, td, mw) and runs a single forward pass.
func (p *tsunamiPotentialPredictor) Predict(ctx context.Context, t0, td, mw float64) (models.TsunamiPotential, error) {
	x := Normalize(t0, td, mw)
	y, err := p.model.Forward(x.Slice())
	if err != nil {
		return models.TsunamiPotential{}, errors.ErrInference.WithError(err)
	}
	if len(y) < 2 {
		return models.TsunamiPotential{}, errors.ErrInference.WithError(
			fmt.Errorf("model returned %d outputs, want at least 2", len(y)))
	}
	// Overflowing inputs can drive the network to Inf or NaN, which has no
	// JSON encoding.
	if !isFinite(y[0]) || !isFinite(y[1]) {
		return models.TsunamiPotential{}, errors.ErrInference.WithError(
			fmt.Errorf("model returned non-finite outputs [%v %v] for t0=%v td=%v mw=%v", y[0], y[1], t0, td, mw))
	}
	return models.TsunamiPotential{Yes: y[0], No: y[1]}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
