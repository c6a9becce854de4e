package chapter

import (
	"fmt"

	"github.com/chrono-city/chronoscore/internal/curve"
	"github.com/chrono-city/chronoscore/internal/indicator"
)

// Sub-indicator keys for the Environment chapter.
const (
	environmentDisasters = "disaster_frequency"
	environmentRisk      = "overall_risk"
	environmentAir       = "air_quality"
	environmentHeat      = "heat_stress"
)

var environmentWeights = []WeightEntry{
	{environmentDisasters, 0.30, "Observed disaster days aggregate cyclone, drought, flood, heatwave and wildfire exposure into one frequency signal."},
	{environmentRisk, 0.30, "The INFORM index blends hazard, vulnerability and coping capacity into a comparable composite."},
	{environmentAir, 0.25, "Chronic PM2.5 exposure is the largest environmental health burden in cities (WHO, 2021 guidelines)."},
	{environmentHeat, 0.15, "Days above 32C track heat stress on outdoor life and vulnerable groups."},
}

var environmentCurves = map[string]curve.Spec{
	environmentDisasters: curve.Sigmoid(45, 0.08, true,
		"Total disaster days per year degrading smoothly around 45: occasional events barely register, chronic exposure collapses the score."),
	environmentRisk: curve.Linear(0, 7, true,
		"INFORM risk index inverted over 0-7; values beyond 7 are uniformly critical."),
	environmentAir: curve.Sigmoid(35, 0.15, true,
		"Annual mean PM2.5 degrading around 35 ug/m3, the WHO interim target 1; clean air sits under 10."),
	environmentHeat: curve.Sigmoid(40, 0.07, true,
		"Days over 32C degrading around 40 per year; graceful rather than stepped, since adaptation is gradual."),
}

const (
	environmentNeutral = 50.0
	environmentFloor   = 0.20
)

// ScoreEnvironment evaluates the climate and disaster-risk chapter.
func ScoreEnvironment(e indicator.Environment) Score {
	// Disaster frequency is the sum of the five event-day counters; present
	// when any counter was measured.
	counters := []*float64{e.CycloneDays, e.DroughtDays, e.FloodDays, e.HeatwaveDays, e.WildfireDays}
	var disasterDays *float64
	measured := 0
	total := 0.0
	for _, c := range counters {
		if c != nil {
			measured++
			total += *c
		}
	}
	if measured > 0 {
		disasterDays = &total
	}

	subs := []subIndicator{
		{environmentDisasters, disasterDays},
		{environmentRisk, e.InformRiskIndex},
		{environmentAir, e.PM25Mean},
		{environmentHeat, e.HeatStressDays},
	}

	confidence := 1.0
	if e.InformRiskIndex == nil {
		confidence *= 0.7
	}
	if measured == 0 {
		confidence *= 0.8
	} else if measured < len(counters) {
		confidence *= 0.9
	}
	if e.PM25Mean == nil {
		confidence *= 0.85
	}
	if e.HeatStressDays == nil {
		confidence *= 0.95
	}

	score, components, conf := assemble(subs, environmentWeights, environmentCurves, environmentNeutral, confidence, environmentFloor)

	return Score{
		Chapter:    Environment,
		Score:      score,
		Grade:      LetterGrade(score),
		Components: components,
		Confidence: conf,
		Summary:    environmentSummary(score, disasterDays, e.InformRiskIndex),
	}
}

func environmentSummary(score float64, disasterDays, inform *float64) string {
	lead := "Climate and risk data is largely unavailable here."
	switch {
	case disasterDays != nil && *disasterDays >= 60:
		lead = "Chronic exposure to climate hazards."
	case inform != nil && *inform >= 5:
		lead = "Elevated composite disaster risk."
	case inform != nil && *inform >= 3:
		lead = "Moderate composite disaster risk."
	case inform != nil || disasterDays != nil:
		lead = "Low observed climate hazard exposure."
	}
	return fmt.Sprintf("%s Environmental safety is %s.", lead, qualityWord(score))
}
