package chapter

import (
	"fmt"

	"github.com/chrono-city/chronoscore/internal/curve"
	"github.com/chrono-city/chronoscore/internal/indicator"
)

// Sub-indicator keys for the Connectivity chapter.
const (
	connectivityIntersections = "intersection_density"
	connectivityDeadEnds      = "dead_end_penalty"
	connectivityActive        = "active_transport"
	connectivityStreetDensity = "street_density"
	connectivityLegibility    = "legibility"
)

var connectivityWeights = []WeightEntry{
	{connectivityIntersections, 0.35, "Intersection density is the strongest single predictor of walking mode share (Ewing & Cervero, 2010)."},
	{connectivityDeadEnds, 0.20, "Cul-de-sacs force detours and cut route choice; low dead-end ratios mark connected grids."},
	{connectivityActive, 0.20, "Dedicated walking and cycling infrastructure shifts short trips away from cars."},
	{connectivityStreetDensity, 0.15, "Street length per km2 has an optimum: too little means superblocks, too much means traffic-dominated land."},
	{connectivityLegibility, 0.10, "Consistent street orientation makes a network easy to navigate on foot."},
}

var connectivityCurves = map[string]curve.Spec{
	connectivityIntersections: curve.Linear(20, 150, false,
		"Intersections per km2 from 20 (car-oriented sprawl) to 150 (fine walkable grid); denser adds little."),
	connectivityDeadEnds: curve.Sigmoid(0.25, 12, true,
		"Dead-end ratio degrading smoothly around 0.25: healthy grids sit under 0.1, cul-de-sac suburbs above 0.4."),
	connectivityActive: curve.Linear(0.02, 0.30, false,
		"Active-transport share of network length between 2% and 30%, the observed urban range."),
	connectivityStreetDensity: curve.Triangular(2, 14, 35,
		"Street density peaking near 14 km/km2, typical of walkable districts; beyond 35 the ground plane is mostly asphalt."),
	connectivityLegibility: curve.Linear(0.3, 0.8, false,
		"One minus orientation entropy: 0.8 reads as a legible grid, 0.3 as an illegible tangle."),
}

const (
	connectivityNeutral = 35.0
	connectivityFloor   = 0.15
)

// ScoreConnectivity evaluates the street-network chapter.
func ScoreConnectivity(c indicator.Connectivity) Score {
	// Legibility is the complement of orientation entropy.
	var legibility *float64
	if c.OrientationEntropy != nil {
		l := 1 - *c.OrientationEntropy
		legibility = &l
	}

	subs := []subIndicator{
		{connectivityIntersections, c.IntersectionDensityKm2},
		{connectivityDeadEnds, c.DeadEndRatio},
		{connectivityActive, c.ActiveTransportShare},
		{connectivityStreetDensity, c.RoadDensityKmKm2},
		{connectivityLegibility, legibility},
	}

	confidence := 1.0
	if c.IntersectionDensityKm2 == nil {
		confidence *= 0.7
	}
	if c.DeadEndRatio == nil {
		confidence *= 0.9
	}
	if c.ActiveTransportShare == nil {
		confidence *= 0.9
	}
	if c.OrientationEntropy == nil {
		confidence *= 0.9
	}

	score, components, conf := assemble(subs, connectivityWeights, connectivityCurves, connectivityNeutral, confidence, connectivityFloor)

	return Score{
		Chapter:    Connectivity,
		Score:      score,
		Grade:      LetterGrade(score),
		Components: components,
		Confidence: conf,
		Summary:    connectivitySummary(score, c),
	}
}

func connectivitySummary(score float64, c indicator.Connectivity) string {
	lead := "Street network data is largely unavailable here."
	switch {
	case c.IntersectionDensityKm2 != nil && *c.IntersectionDensityKm2 >= 100:
		lead = "A dense, well-connected street grid."
	case c.IntersectionDensityKm2 != nil && *c.IntersectionDensityKm2 >= 50:
		lead = "A reasonably connected street network."
	case c.IntersectionDensityKm2 != nil:
		lead = "A coarse street network with long blocks."
	}
	return fmt.Sprintf("%s Connectivity is %s.", lead, qualityWord(score))
}
