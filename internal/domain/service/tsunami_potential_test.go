package service

import (
	"context"
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ecnlab/ecn/pkg/errors"
)

type MockTsunamiModel struct {
	mock.Mock
}

func (m *MockTsunamiModel) Forward(x []float64) ([]float64, error) {
	args := m.Called(x)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func TestTsunamiPotentialPredictor_Predict(t *testing.T) {
	model := new(MockTsunamiModel)
	want := Normalize(50, 5, 7.5).Slice()
	model.On("Forward", want).Return([]float64{0.83, 0.12}, nil).Once()

	p := NewTsunamiPotentialPredictor(model)
	got, err := p.Predict(context.Background(), 50, 5, 7.5)

	require.NoError(t, err)
	assert.Equal(t, 0.83, got.Yes)
	assert.Equal(t, 0.12, got.No)
	assert.True(t, got.IsTsunami(0.5))
	assert.False(t, got.IsNoTsunami(0.5))
	model.AssertExpectations(t)
}

func TestTsunamiPotentialPredictor_PassesFeatureVector(t *testing.T) {
	model := new(MockTsunamiModel)
	model.On("Forward", mock.MatchedBy(func(x []float64) bool {
		return len(x) == FeatureCount && x[0] == 1.0 && x[3] > 0.2474 && x[3] < 0.2494
	})).Return([]float64{0.1, 0.9}, nil).Once()

	_, err := NewTsunamiPotentialPredictor(model).Predict(context.Background(), 50, 5, 7.5)
	require.NoError(t, err)
	model.AssertExpectations(t)
}

func TestTsunamiPotentialPredictor_ForwardError(t *testing.T) {
	model := new(MockTsunamiModel)
	model.On("Forward", mock.Anything).Return(nil, stderrors.New("shape mismatch")).Once()

	_, err := NewTsunamiPotentialPredictor(model).Predict(context.Background(), 50, 5, 7.5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInference))
	assert.Contains(t, err.Error(), "shape mismatch")
}

func TestTsunamiPotentialPredictor_ShortOutput(t *testing.T) {
	model := new(MockTsunamiModel)
	model.On("Forward", mock.Anything).Return([]float64{0.7}, nil).Once()

	_, err := NewTsunamiPotentialPredictor(model).Predict(context.Background(), 50, 5, 7.5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInference))
}

func TestTsunamiPotentialPredictor_NonFiniteOutput(t *testing.T) {
	tests := []struct {
		name string
		out  []float64
	}{
		{"nan yes", []float64{math.NaN(), 0.2}},
		{"inf no", []float64{0.4, math.Inf(1)}},
		{"negative inf", []float64{math.Inf(-1), 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := new(MockTsunamiModel)
			model.On("Forward", mock.Anything).Return(tt.out, nil).Once()

			_, err := NewTsunamiPotentialPredictor(model).Predict(context.Background(), 1.7e308, 1.7e308, 1.7e308)

			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInference))
			assert.Contains(t, err.Error(), "non-finite")
		})
	}
}

func TestNormalize_OverflowingInputsStayInfinite(t *testing.T) {
	x := Normalize(1.7e308, 1.7e308, 1.7e308)
	assert.True(t, math.IsInf(x[3], 1))
}
