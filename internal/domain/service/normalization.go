package service

// FeatureCount is the width of the vector fed to the tsunami-potential model:
// a bias term followed by four normalized seismic features.
const FeatureCount = 5

// FeatureVector is the model input [bias, t0, td, t0*td, mw], normalized.
type FeatureVector [FeatureCount]float64

// Slice returns the vector as a slice for model consumption.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// Bounds is a min-max normalization range fixed at model training time.
type Bounds struct {
	Min float64
	Max float64
}

// Normalize maps x linearly so that Min becomes 0 and Max becomes 1. Values
// outside the range extrapolate; they are not clamped.
func (b Bounds) Normalize(x float64) float64 {
	return (x - b.Min) / (b.Max - b.Min)
}

// Training-set ranges of the Novianty 2018 model.
var (
	RuptureDurationBounds = Bounds{Min: 9.45, Max: 203.8708}
	DominantPeriodBounds  = Bounds{Min: 2.7, Max: 7.5}
	DurationPeriodBounds  = Bounds{Min: 42.54644, Max: 877.4648}
	MomentMagnitudeBounds = Bounds{Min: 6.987921, Max: 8.995652}
)

const biasTerm = 1.0

// Normalize builds the model feature vector from unnormalized rupture duration
// t0, P-wave dominant period td and moment magnitude mw. No range validation is
// performed.
func Normalize(t0, td, mw float64) FeatureVector {
	t0xtd := t0 * td
	return FeatureVector{
		biasTerm,
		RuptureDurationBounds.Normalize(t0),
		DominantPeriodBounds.Normalize(td),
		DurationPeriodBounds.Normalize(t0xtd),
		MomentMagnitudeBounds.Normalize(mw),
	}
}
