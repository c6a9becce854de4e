package chapter

import (
	"fmt"

	"github.com/chrono-city/chronoscore/internal/curve"
	"github.com/chrono-city/chronoscore/internal/indicator"
)

// Sub-indicator keys for the Resilience chapter.
const (
	resilienceLandUseMix   = "land_use_mix"
	resilienceCanopyCover  = "canopy_cover"
	resiliencePermeability = "permeability"
	resilienceWaterAccess  = "water_access"
)

var resilienceWeights = []WeightEntry{
	{resilienceLandUseMix, 0.30, "Mixed land cover hedges a neighbourhood against single-use obsolescence and spreads daily trips."},
	{resilienceCanopyCover, 0.30, "Tree canopy drives summer cooling, stormwater interception and measurable wellbeing gains."},
	{resiliencePermeability, 0.25, "Unsealed ground absorbs rainfall; sealed surface is the main driver of pluvial flood risk."},
	{resilienceWaterAccess, 0.15, "Proximity to blue space adds cooling and amenity value."},
}

var resilienceCurves = map[string]curve.Spec{
	resilienceLandUseMix: curve.Linear(0.2, 0.8, false,
		"Normalized land-cover entropy: 0.2 is near-monoculture, 0.8 approaches an even mix; gains beyond that are noise."),
	resilienceCanopyCover: curve.Linear(0.02, 0.30, false,
		"Canopy fraction from 2% (bare) to 30%, the common urban-forestry target (e.g. the 3-30-300 rule)."),
	resiliencePermeability: curve.Linear(0.3, 0.8, false,
		"Unsealed fraction between 0.3 and 0.8; below 0.3 runoff dominates, above 0.8 the area is effectively open land."),
	resilienceWaterAccess: curve.Linear(100, 1500, true,
		"Distance to the nearest water body: full score within 100 m, none beyond 1.5 km."),
}

const (
	resilienceNeutral = 42.0
	resilienceFloor   = 0.15
)

// ScoreResilience evaluates the green and land-use chapter.
func ScoreResilience(r indicator.Resilience) Score {
	// Canopy cover is the forest plus shrub fraction; present when either
	// share was measured.
	var canopy *float64
	if r.ForestShare != nil || r.ShrubShare != nil {
		c := deref(r.ForestShare) + deref(r.ShrubShare)
		canopy = &c
	}

	// Land-use mix is the normalized entropy over the measured cover shares.
	mixVal, mixOK := normalizedEntropy([]*float64{
		r.ForestShare, r.ShrubShare, r.GrassShare, r.WetlandShare, r.CroplandShare, r.BuiltShare,
	})
	var mix *float64
	if mixOK {
		mix = &mixVal
	}

	// Permeability is the complement of the sealed fraction.
	var permeability *float64
	if r.Imperviousness != nil {
		p := 1 - *r.Imperviousness
		permeability = &p
	}

	subs := []subIndicator{
		{resilienceLandUseMix, mix},
		{resilienceCanopyCover, canopy},
		{resiliencePermeability, permeability},
		{resilienceWaterAccess, r.WaterDistanceM},
	}

	confidence := 1.0
	if mix == nil {
		confidence *= 0.7
	}
	if r.Imperviousness == nil {
		confidence *= 0.8
	}
	if r.WaterDistanceM == nil {
		confidence *= 0.9
	}

	score, components, conf := assemble(subs, resilienceWeights, resilienceCurves, resilienceNeutral, confidence, resilienceFloor)

	return Score{
		Chapter:    Resilience,
		Score:      score,
		Grade:      LetterGrade(score),
		Components: components,
		Confidence: conf,
		Summary:    resilienceSummary(score, canopy),
	}
}

func resilienceSummary(score float64, canopy *float64) string {
	lead := "Land cover data is largely unavailable here."
	switch {
	case canopy != nil && *canopy >= 0.25:
		lead = "Generous tree canopy and green cover."
	case canopy != nil && *canopy >= 0.08:
		lead = "Some green cover, below leading urban-forestry targets."
	case canopy != nil:
		lead = "Minimal green cover; the area is heavily sealed."
	}
	return fmt.Sprintf("%s Resilience is %s.", lead, qualityWord(score))
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
