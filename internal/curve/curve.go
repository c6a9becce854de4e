// Package curve implements the normalization engine: pure functions mapping
// one raw numeric value (or its absence) onto a 0-100 sub-score through a
// named curve spec. Curve specs are immutable constants built at process
// start; malformed specs fail at construction, never at scoring time.
package curve

import (
	"math"

	"github.com/rotisserie/eris"
)

// Kind identifies the mathematical shape of a normalization curve.
type Kind int

const (
	// KindLinear is an affine map from [Min,Max] onto [0,100].
	KindLinear Kind = iota
	// KindTriangular rises from 0 at Min to 100 at Peak, then falls back to
	// 0 at Max. Models an optimum rather than a monotonic good/bad axis.
	KindTriangular
	// KindLogarithmic is linear over log1p(value), for heavy-tailed counts.
	KindLogarithmic
	// KindThreshold is a step function over ascending breakpoints.
	KindThreshold
	// KindSigmoid is a logistic curve centered at Midpoint.
	KindSigmoid
)

// Spec describes how one raw field maps to a 0-100 sub-score. The Reference
// string carries the methodology rationale surfaced to end users and must be
// kept intact across releases.
type Spec struct {
	Kind      Kind
	Min       float64
	Max       float64
	Peak      float64
	Midpoint  float64
	Steepness float64
	// Invert flips the score so that higher raw values score lower.
	// Applies to linear, logarithmic and sigmoid curves.
	Invert      bool
	Breakpoints []float64
	Scores      []float64
	Reference   string
}

// Linear builds an affine curve over [min,max].
func Linear(min, max float64, invert bool, reference string) Spec {
	return Spec{Kind: KindLinear, Min: min, Max: max, Invert: invert, Reference: reference}
}

// Triangular builds a curve peaking at peak inside [min,max].
func Triangular(min, peak, max float64, reference string) Spec {
	return Spec{Kind: KindTriangular, Min: min, Peak: peak, Max: max, Reference: reference}
}

// Logarithmic builds a log1p-scaled curve over [min,max]. min must be >= 0.
func Logarithmic(min, max float64, invert bool, reference string) Spec {
	return Spec{Kind: KindLogarithmic, Min: min, Max: max, Invert: invert, Reference: reference}
}

// Sigmoid builds a logistic curve centered at midpoint with the given
// steepness. With invert, the score degrades as the value grows.
func Sigmoid(midpoint, steepness float64, invert bool, reference string) Spec {
	return Spec{Kind: KindSigmoid, Midpoint: midpoint, Steepness: steepness, Invert: invert, Reference: reference}
}

// Threshold builds a step curve. Breakpoints must be strictly ascending and
// paired one-to-one with scores; anything else is rejected here so scoring
// never sees a malformed table.
func Threshold(breakpoints, scores []float64, reference string) (Spec, error) {
	if len(breakpoints) == 0 {
		return Spec{}, eris.New("curve: threshold needs at least one breakpoint")
	}
	if len(breakpoints) != len(scores) {
		return Spec{}, eris.Errorf("curve: %d breakpoints but %d scores", len(breakpoints), len(scores))
	}
	for i := 1; i < len(breakpoints); i++ {
		if breakpoints[i] <= breakpoints[i-1] {
			return Spec{}, eris.Errorf("curve: breakpoints not ascending at index %d", i)
		}
	}
	return Spec{Kind: KindThreshold, Breakpoints: breakpoints, Scores: scores, Reference: reference}, nil
}

// MustThreshold is Threshold for constant tables; it panics on a malformed
// spec, which surfaces at process start.
func MustThreshold(breakpoints, scores []float64, reference string) Spec {
	s, err := Threshold(breakpoints, scores, reference)
	if err != nil {
		panic(err)
	}
	return s
}

// Normalize maps value onto [0,100] through the curve. A nil or non-finite
// value returns 0: missing data reads as worst-case and is compensated by
// the chapter confidence heuristics, not by an error.
func Normalize(value *float64, s Spec) float64 {
	if value == nil {
		return 0
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	var score float64
	switch s.Kind {
	case KindLinear:
		score = affine(v, s.Min, s.Max, s.Invert)
	case KindTriangular:
		score = triangular(v, s.Min, s.Peak, s.Max)
	case KindLogarithmic:
		if v < 0 {
			v = 0
		}
		score = affine(math.Log1p(v), math.Log1p(s.Min), math.Log1p(s.Max), s.Invert)
	case KindThreshold:
		score = step(v, s.Breakpoints, s.Scores)
	case KindSigmoid:
		score = logistic(v, s.Midpoint, s.Steepness, s.Invert)
	}

	return clamp(score, 0, 100)
}

func affine(v, min, max float64, invert bool) float64 {
	if max == min {
		return 50
	}
	pos := (v - min) / (max - min)
	pos = clamp(pos, 0, 1)
	if invert {
		pos = 1 - pos
	}
	return pos * 100
}

func triangular(v, min, peak, max float64) float64 {
	if v < min || v > max {
		return 0
	}
	if v <= peak {
		if peak == min {
			return 100
		}
		return (v - min) / (peak - min) * 100
	}
	if max == peak {
		return 100
	}
	return (max - v) / (max - peak) * 100
}

// step scans breakpoints from highest to lowest and returns the score of the
// first breakpoint the value meets or exceeds.
func step(v float64, breakpoints, scores []float64) float64 {
	for i := len(breakpoints) - 1; i >= 0; i-- {
		if v >= breakpoints[i] {
			return scores[i]
		}
	}
	return 0
}

func logistic(v, midpoint, steepness float64, invert bool) float64 {
	s := 1 / (1 + math.Exp(-steepness*(v-midpoint)))
	if invert {
		s = 1 - s
	}
	return s * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
