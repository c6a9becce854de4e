package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestNormalizeAbsentValues(t *testing.T) {
	spec := Linear(0, 100, false, "")

	assert.Equal(t, 0.0, Normalize(nil, spec))
	assert.Equal(t, 0.0, Normalize(ptr(math.NaN()), spec))
	assert.Equal(t, 0.0, Normalize(ptr(math.Inf(1)), spec))
	assert.Equal(t, 0.0, Normalize(ptr(math.Inf(-1)), spec))
}

func TestNormalizeLinear(t *testing.T) {
	spec := Linear(10, 20, false, "")

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"at min", 10, 0},
		{"at max", 20, 100},
		{"midpoint", 15, 50},
		{"below min clamps", 5, 0},
		{"above max clamps", 25, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Normalize(ptr(tt.value), spec), 1e-9)
		})
	}
}

func TestNormalizeLinearInverted(t *testing.T) {
	spec := Linear(100, 1500, true, "")

	assert.InDelta(t, 100, Normalize(ptr(100), spec), 1e-9)
	assert.InDelta(t, 0, Normalize(ptr(1500), spec), 1e-9)
	assert.InDelta(t, 50, Normalize(ptr(800), spec), 1e-9)
	// clamped on both sides even when inverted
	assert.InDelta(t, 100, Normalize(ptr(50), spec), 1e-9)
	assert.InDelta(t, 0, Normalize(ptr(2000), spec), 1e-9)
}

func TestNormalizeLinearDegenerateRange(t *testing.T) {
	spec := Linear(5, 5, false, "")
	assert.Equal(t, 50.0, Normalize(ptr(5), spec))
	assert.Equal(t, 50.0, Normalize(ptr(99), spec))
}

func TestNormalizeTriangular(t *testing.T) {
	spec := Triangular(0.08, 0.35, 0.65, "")

	assert.InDelta(t, 100, Normalize(ptr(0.35), spec), 1e-9)
	assert.InDelta(t, 0, Normalize(ptr(0.08), spec), 1e-9)
	assert.InDelta(t, 0, Normalize(ptr(0.65), spec), 1e-9)
	// outside the support is zero, not clamped to an edge score
	assert.Equal(t, 0.0, Normalize(ptr(0.02), spec))
	assert.Equal(t, 0.0, Normalize(ptr(0.9), spec))

	// rising limb is linear toward the peak
	rising := Normalize(ptr((0.08+0.35)/2), spec)
	assert.InDelta(t, 50, rising, 1e-9)
	// falling limb is linear back down
	falling := Normalize(ptr((0.35+0.65)/2), spec)
	assert.InDelta(t, 50, falling, 1e-9)
}

func TestNormalizeLogarithmic(t *testing.T) {
	spec := Logarithmic(0, 2500, false, "")

	assert.InDelta(t, 0, Normalize(ptr(0), spec), 1e-9)
	assert.InDelta(t, 100, Normalize(ptr(2500), spec), 1e-9)
	// negative counts are treated as zero rather than extrapolated
	assert.InDelta(t, 0, Normalize(ptr(-10), spec), 1e-9)

	// log scaling: halfway in raw terms scores well above 50
	mid := Normalize(ptr(1250), spec)
	assert.Greater(t, mid, 60.0)
	assert.Less(t, mid, 100.0)
}

func TestNormalizeThreshold(t *testing.T) {
	spec := MustThreshold(
		[]float64{0, 1, 2, 3, 4, 5, 6},
		[]float64{0, 20, 35, 50, 70, 85, 100},
		"",
	)

	tests := []struct {
		value float64
		want  float64
	}{
		{-1, 0}, // below every breakpoint
		{0, 0},  // exactly at the first
		{1, 20},
		{2.9, 35}, // between steps takes the lower
		{3, 50},
		{6, 100},
		{40, 100}, // beyond the last stays at the top step
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(ptr(tt.value), spec), "value %v", tt.value)
	}
}

func TestNormalizeSigmoid(t *testing.T) {
	spec := Sigmoid(35, 0.15, false, "")

	assert.InDelta(t, 50, Normalize(ptr(35), spec), 1e-9)
	assert.Greater(t, Normalize(ptr(60), spec), 90.0)
	assert.Less(t, Normalize(ptr(10), spec), 10.0)

	inv := Sigmoid(35, 0.15, true, "")
	assert.InDelta(t, 50, Normalize(ptr(35), inv), 1e-9)
	assert.Less(t, Normalize(ptr(60), inv), 10.0)
	assert.Greater(t, Normalize(ptr(10), inv), 90.0)
}

func TestNormalizeSigmoidSymmetry(t *testing.T) {
	spec := Sigmoid(0.25, 12, true, "")
	up := Normalize(ptr(0.25+0.1), spec)
	down := Normalize(ptr(0.25-0.1), spec)
	assert.InDelta(t, 100, up+down, 1e-9)
}

func TestThresholdValidation(t *testing.T) {
	_, err := Threshold(nil, nil, "")
	require.Error(t, err)

	_, err = Threshold([]float64{0, 1}, []float64{0}, "")
	require.Error(t, err)

	_, err = Threshold([]float64{0, 2, 1}, []float64{0, 50, 100}, "")
	require.Error(t, err)

	_, err = Threshold([]float64{0, 1, 1}, []float64{0, 50, 100}, "")
	require.Error(t, err)

	s, err := Threshold([]float64{0, 1, 3}, []float64{0, 40, 100}, "ref")
	require.NoError(t, err)
	assert.Equal(t, KindThreshold, s.Kind)
	assert.Equal(t, "ref", s.Reference)
}

func TestMustThresholdPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustThreshold([]float64{2, 1}, []float64{0, 100}, "")
	})
}

func TestNormalizeRangeInvariant(t *testing.T) {
	specs := []Spec{
		Linear(0, 10, false, ""),
		Linear(0, 10, true, ""),
		Triangular(0, 5, 10, ""),
		Logarithmic(0, 10, false, ""),
		Sigmoid(5, 2, false, ""),
		MustThreshold([]float64{0, 5, 10}, []float64{0, 50, 100}, ""),
	}
	for _, s := range specs {
		for v := -5.0; v <= 15.0; v += 0.5 {
			got := Normalize(ptr(v), s)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		}
	}
}
