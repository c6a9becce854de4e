package chapter

import (
	"fmt"

	"github.com/chrono-city/chronoscore/internal/curve"
	"github.com/chrono-city/chronoscore/internal/indicator"
)

// Sub-indicator keys for the Urban Fabric chapter.
const (
	fabricDensityBalance    = "density_balance"
	fabricVerticalIntensity = "vertical_intensity"
	fabricGrainQuality      = "grain_quality"
	fabricCompactness       = "compactness"
	fabricBuiltPresence     = "built_presence"
)

var fabricWeights = []WeightEntry{
	{fabricDensityBalance, 0.25, "Ground coverage in the 0.25-0.45 band marks walkable perimeter-block fabric; both sprawl and over-coverage degrade it (Berghauser Pont & Haupt, Spacematrix, 2010)."},
	{fabricVerticalIntensity, 0.20, "Floor space intensity tracks the capacity of the fabric to host urban life; extremes read as under-use or over-exploitation."},
	{fabricGrainQuality, 0.20, "Fine urban grain (small median footprints) supports street-level variety and incremental change (Jacobs, Death and Life, 1961)."},
	{fabricCompactness, 0.20, "Compact building forms lower envelope heat loss and signal coherent block structure."},
	{fabricBuiltPresence, 0.15, "A minimum stock of buildings per km2 is a precondition for every other fabric quality."},
}

var fabricCurves = map[string]curve.Spec{
	fabricDensityBalance: curve.Triangular(0.08, 0.35, 0.65,
		"GSI optimum near 0.35: the Spacematrix perimeter-block band. Below 0.08 the area reads as unbuilt; above 0.65 open space disappears."),
	fabricVerticalIntensity: curve.Triangular(0.2, 1.8, 5.0,
		"FSI peaking at 1.8 corresponds to mid-rise European fabric; beyond 5.0 towers dominate and street life decouples from built mass."),
	fabricGrainQuality: curve.Linear(150, 900, true,
		"Median footprints at or under 150 m2 are fine grain (score 100); above 900 m2 the fabric is megastructural (score 0)."),
	fabricCompactness: curve.Linear(0.3, 0.8,
		false,
		"Mean isoperimetric quotient between 0.3 (fragmented outlines) and 0.8 (near-circular, highly compact forms)."),
	fabricBuiltPresence: curve.Logarithmic(0, 2500, false,
		"Buildings per km2 on a log scale: gains flatten once the stock passes a few thousand per km2."),
}

const (
	fabricNeutral = 35.0
	fabricFloor   = 0.15
)

// ScoreFabric evaluates the physical-form chapter.
func ScoreFabric(f indicator.Fabric) Score {
	subs := []subIndicator{
		{fabricDensityBalance, f.GSI},
		{fabricVerticalIntensity, f.FSI},
		{fabricGrainQuality, f.MedianFootprintM2},
		{fabricCompactness, f.AvgCompactness},
		{fabricBuiltPresence, f.BuildingDensityKm2},
	}

	confidence := 1.0
	if f.GSI == nil {
		confidence *= 0.7
	}
	if f.FSI == nil {
		confidence *= 0.85
	}
	if f.AvgCompactness == nil {
		confidence *= 0.9
	}
	if f.MedianFootprintM2 == nil {
		confidence *= 0.9
	}

	score, components, conf := assemble(subs, fabricWeights, fabricCurves, fabricNeutral, confidence, fabricFloor)

	return Score{
		Chapter:    Fabric,
		Score:      score,
		Grade:      LetterGrade(score),
		Components: components,
		Confidence: conf,
		Summary:    fabricSummary(score, f),
	}
}

func fabricSummary(score float64, f indicator.Fabric) string {
	lead := "Sparse indicator coverage for built form."
	switch {
	case f.GSI != nil && *f.GSI > 0.5:
		lead = "Very dense building coverage with little open ground."
	case f.GSI != nil && *f.GSI >= 0.25:
		lead = "Dense building coverage, fine-grained urban fabric."
	case f.GSI != nil && *f.GSI >= 0.1:
		lead = "Moderate building coverage with generous open space."
	case f.GSI != nil:
		lead = "Very low building coverage; the area reads as unbuilt or sprawl."
	}
	return fmt.Sprintf("%s Urban Fabric quality is %s.", lead, qualityWord(score))
}
