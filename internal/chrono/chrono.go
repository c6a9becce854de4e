// Package chrono assembles the seven thematic chapter scores into a single
// composite place score with a letter grade and a confidence estimate.
package chrono

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/chrono-city/chronoscore/internal/chapter"
	"github.com/chrono-city/chronoscore/internal/indicator"
)

// Version identifies the scoring framework. Bumped whenever weights,
// curves or chapter composition change, so stored scores stay comparable.
const Version = "2.4.0"

// chapterWeights is the top-level weighting of the seven chapters.
// Vitality leads; culture is a deliberate light touch. Must sum to 1.
var chapterWeights = map[string]float64{
	chapter.Vitality:     0.22,
	chapter.Fabric:       0.18,
	chapter.Connectivity: 0.18,
	chapter.Resilience:   0.15,
	chapter.Prosperity:   0.12,
	chapter.Environment:  0.10,
	chapter.Culture:      0.05,
}

func init() {
	var sum float64
	for _, name := range chapter.Names {
		w, ok := chapterWeights[name]
		if !ok {
			panic("chrono: missing weight for chapter " + name)
		}
		sum += w
	}
	if len(chapterWeights) != len(chapter.Names) {
		panic("chrono: weight table has unknown chapters")
	}
	if math.Abs(sum-1.0) > 1e-9 {
		panic("chrono: chapter weights must sum to 1")
	}
}

// Report is the full scoring output for one spatial unit.
type Report struct {
	Score      float64                  `json:"score"`
	Grade      string                   `json:"grade"`
	Chapters   map[string]chapter.Score `json:"chapters"`
	Context    Context                  `json:"context"`
	Confidence float64                  `json:"confidence"`
	ComputedAt time.Time                `json:"computed_at"`
	Version    string                   `json:"version"`
}

// ComputeChronoScore scores a bundle of raw indicators for the given
// spatial context. Every chapter always contributes; missing data is
// reflected in the confidence, never in a dropped chapter.
func ComputeChronoScore(raw *indicator.Raw, ctx Context) *Report {
	chapters := map[string]chapter.Score{
		chapter.Fabric:       chapter.ScoreFabric(raw.Fabric),
		chapter.Resilience:   chapter.ScoreResilience(raw.Resilience),
		chapter.Vitality:     chapter.ScoreVitality(raw.Vitality),
		chapter.Connectivity: chapter.ScoreConnectivity(raw.Connectivity),
		chapter.Prosperity:   chapter.ScoreProsperity(raw.Prosperity),
		chapter.Environment:  chapter.ScoreEnvironment(raw.Environment),
		chapter.Culture:      chapter.ScoreCulture(raw.Culture),
	}

	var weighted float64
	scores := make([]float64, 0, len(chapter.Names))
	for _, name := range chapter.Names {
		cs := chapters[name]
		weighted += cs.Score * chapterWeights[name]
		scores = append(scores, cs.Score)
	}

	bonus := harmonyBonus(scores)
	final := math.Round(math.Min(100, weighted+bonus)*10) / 10

	rep := &Report{
		Score:      final,
		Grade:      chapter.LetterGrade(final),
		Chapters:   chapters,
		Context:    ctx,
		Confidence: overallConfidence(chapters),
		ComputedAt: time.Now().UTC(),
		Version:    Version,
	}

	zap.L().Debug("computed chrono score",
		zap.String("mode", ctx.Mode()),
		zap.Float64("score", rep.Score),
		zap.String("grade", rep.Grade),
		zap.Float64("confidence", rep.Confidence),
		zap.Float64("harmony_bonus", bonus))

	return rep
}

// harmonyBonus rewards places that score evenly across chapters. A
// coefficient of variation of 0 earns the full 5 points; 0.4 or more
// earns nothing.
func harmonyBonus(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var mean float64
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))
	if mean <= 0 {
		return 0
	}
	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	variance /= float64(len(scores))
	cv := math.Sqrt(variance) / mean
	return math.Max(0, 5*(1-cv/0.4))
}

// overallConfidence multiplies the chapter confidences. Any chapter at
// zero drags the whole report to zero, which is the intended reading of
// a score built on no data. The product runs in canonical chapter order:
// float multiplication is not associative, so map-order iteration would
// make the result vary between calls.
func overallConfidence(chapters map[string]chapter.Score) float64 {
	conf := 1.0
	for _, name := range chapter.Names {
		conf *= chapters[name].Confidence
	}
	return conf
}
