// Package chapter implements the seven thematic scorers behind the composite
// urban-quality score. Each scorer derives composite sub-indicators from its
// raw bundle, normalizes them through the chapter's curve table, aggregates
// with weight renormalization over present values, and attaches a confidence
// multiplier reflecting data completeness.
//
// Weight tables and curve tables are process-wide immutable constants; they
// are cross-checked once at init and never mutated.
package chapter

import (
	"fmt"
	"math"

	"github.com/chrono-city/chronoscore/internal/curve"
)

// Chapter names. These are stable keys used in reports and export rows.
const (
	Fabric       = "fabric"
	Resilience   = "resilience"
	Vitality     = "vitality"
	Connectivity = "connectivity"
	Prosperity   = "prosperity"
	Environment  = "environment"
	Culture      = "culture"
)

// Names lists the seven chapters in canonical order.
var Names = []string{Fabric, Resilience, Vitality, Connectivity, Prosperity, Environment, Culture}

// Score is the output of one chapter scorer. Created fresh per call, never
// mutated.
type Score struct {
	Chapter string `json:"chapter"`
	// Score is the 0-100 chapter score.
	Score float64 `json:"score"`
	Grade string  `json:"grade"`
	// Components maps sub-indicator key to its normalized 0-100 score.
	Components map[string]float64 `json:"components"`
	// Confidence is a 0-1 data-completeness multiplier.
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

// WeightEntry is one (sub-indicator, weight, rationale) row of a chapter
// weight table. Weights within a chapter need not sum to 1: the aggregator
// renormalizes over present entries, which is what redistributes weight away
// from missing data.
type WeightEntry struct {
	Key       string
	Weight    float64
	Rationale string
}

// subIndicator pairs a sub-indicator key with its raw (or derived) value.
// A nil value means the underlying source data was absent.
type subIndicator struct {
	key   string
	value *float64
}

// LetterGrade maps a 0-100 score to the framework's letter grade.
func LetterGrade(score float64) string {
	switch {
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 55:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

// qualityWord phrases a 0-100 score for chapter summaries.
func qualityWord(score float64) string {
	switch {
	case score >= 85:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 55:
		return "moderate"
	case score >= 40:
		return "limited"
	default:
		return "poor"
	}
}

// weightedAverage aggregates normalized component scores using the chapter
// weight table, counting only entries marked present. With nothing present
// (or a zero weight sum) it returns 0 rather than dividing by zero.
func weightedAverage(components map[string]float64, present map[string]bool, weights []WeightEntry) float64 {
	var sum, weightSum float64
	for _, w := range weights {
		if !present[w.Key] {
			continue
		}
		sum += components[w.Key] * w.Weight
		weightSum += w.Weight
	}
	if weightSum <= 0 {
		return 0
	}
	return sum / weightSum
}

// normalizedEntropy computes Shannon entropy over the present counts,
// normalized by log(#non-zero categories): 0 when a single category
// dominates entirely, 1 when all non-zero categories are equal.
//
// The second return is false when fewer than two fields are present, in
// which case diversity is not computable and the sub-indicator is treated
// as absent.
func normalizedEntropy(counts []*float64) (float64, bool) {
	var present []float64
	for _, c := range counts {
		if c != nil && !math.IsNaN(*c) && !math.IsInf(*c, 0) && *c >= 0 {
			present = append(present, *c)
		}
	}
	if len(present) < 2 {
		return 0, false
	}

	var total float64
	nonZero := 0
	for _, c := range present {
		total += c
		if c > 0 {
			nonZero++
		}
	}
	if total <= 0 || nonZero <= 1 {
		return 0, true
	}

	var h float64
	for _, c := range present {
		if c <= 0 {
			continue
		}
		p := c / total
		h -= p * math.Log(p)
	}
	return h / math.Log(float64(nonZero)), true
}

// assemble runs the shared chapter pipeline: normalize every sub-indicator,
// aggregate over present entries, and fall back to the chapter's neutral
// default when almost everything is missing, so absent data reads as
// "unknown, low confidence" rather than "confirmed terrible".
//
// confidence is the chapter-specific heuristic already computed by the
// caller; it is floored here, and forced to the floor when defaults were
// substituted.
func assemble(subs []subIndicator, weights []WeightEntry, curves map[string]curve.Spec, neutral, confidence, floor float64) (float64, map[string]float64, float64) {
	components := make(map[string]float64, len(subs))
	present := make(map[string]bool, len(subs))
	presentCount := 0
	for _, s := range subs {
		components[s.key] = curve.Normalize(s.value, curves[s.key])
		if s.value != nil && !math.IsNaN(*s.value) && !math.IsInf(*s.value, 0) {
			present[s.key] = true
			presentCount++
		}
	}

	if presentCount <= 1 {
		// Near-total absence: substitute the neutral mid-range default into
		// the missing components so the chapter does not read as very bad
		// purely from data absence.
		for _, s := range subs {
			if !present[s.key] {
				components[s.key] = neutral
				present[s.key] = true
			}
		}
		return weightedAverage(components, present, weights), components, floor
	}

	conf := math.Min(1, math.Max(floor, confidence))
	return weightedAverage(components, present, weights), components, conf
}

// validateTables cross-checks a chapter's weight table against its curve
// table. Called from init for every chapter; a mismatch is a programming
// error and fails at process start.
func validateTables(name string, weights []WeightEntry, curves map[string]curve.Spec) {
	if len(weights) == 0 {
		panic(fmt.Sprintf("chapter %s: empty weight table", name))
	}
	seen := make(map[string]bool, len(weights))
	for _, w := range weights {
		if w.Weight <= 0 {
			panic(fmt.Sprintf("chapter %s: non-positive weight for %q", name, w.Key))
		}
		if seen[w.Key] {
			panic(fmt.Sprintf("chapter %s: duplicate weight key %q", name, w.Key))
		}
		seen[w.Key] = true
		if _, ok := curves[w.Key]; !ok {
			panic(fmt.Sprintf("chapter %s: no curve spec for %q", name, w.Key))
		}
	}
	for key := range curves {
		if !seen[key] {
			panic(fmt.Sprintf("chapter %s: curve %q has no weight entry", name, key))
		}
	}
}

func init() {
	validateTables(Fabric, fabricWeights, fabricCurves)
	validateTables(Resilience, resilienceWeights, resilienceCurves)
	validateTables(Vitality, vitalityWeights, vitalityCurves)
	validateTables(Connectivity, connectivityWeights, connectivityCurves)
	validateTables(Prosperity, prosperityWeights, prosperityCurves)
	validateTables(Environment, environmentWeights, environmentCurves)
	validateTables(Culture, cultureWeights, cultureCurves)
}
