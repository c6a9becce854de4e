package chapter

import (
	"fmt"

	"github.com/chrono-city/chronoscore/internal/curve"
	"github.com/chrono-city/chronoscore/internal/indicator"
)

// Sub-indicator keys for the Prosperity chapter.
const (
	prosperityOutput     = "economic_output"
	prosperityNightLight = "night_activity"
	prosperityCommercial = "commercial_vitality"
	prosperityEmployment = "employment_access"
	prosperityMix        = "economic_mix"
)

var prosperityWeights = []WeightEntry{
	{prosperityOutput, 0.30, "GDP per capita is the broadest available proxy for local purchasing power."},
	{prosperityNightLight, 0.20, "Night-time light intensity correlates with economic activity where statistical data is thin (Henderson et al., 2012)."},
	{prosperityCommercial, 0.25, "Commercial venue density measures the street-level economy directly."},
	{prosperityEmployment, 0.15, "Office density proxies access to knowledge-economy jobs."},
	{prosperityMix, 0.10, "An even spread across commerce, offices and finance is more robust than a single dominant sector."},
}

var prosperityCurves = map[string]curve.Spec{
	prosperityOutput: curve.Logarithmic(1000, 80000, false,
		"GDP per capita (USD) on a log scale from subsistence (1k) to high-income metro cores (80k): marginal dollars matter less as income grows."),
	prosperityNightLight: curve.Logarithmic(1, 60, false,
		"VIIRS night-light radiance (nW/cm2/sr) on a log scale; saturation near 60 marks fully lit urban cores."),
	prosperityCommercial: curve.Logarithmic(5, 500, false,
		"Commercial venues per km2 on a log scale: heavy-tailed, from corner-shop minimum to central-district maximum."),
	prosperityEmployment: curve.Logarithmic(2, 300, false,
		"Office venues per km2 on a log scale."),
	prosperityMix: curve.Linear(0.3, 0.9, false,
		"Normalized entropy of economic venue types between 0.3 and 0.9."),
}

const (
	prosperityNeutral = 42.0
	prosperityFloor   = 0.20
)

// ScoreProsperity evaluates the economic chapter.
func ScoreProsperity(p indicator.Prosperity) Score {
	mixVal, mixOK := normalizedEntropy([]*float64{
		p.CommercialDensityKm2, p.OfficeDensityKm2, p.BankDensityKm2,
	})
	var mix *float64
	if mixOK {
		mix = &mixVal
	}

	subs := []subIndicator{
		{prosperityOutput, p.GDPPerCapita},
		{prosperityNightLight, p.NightLightIntensity},
		{prosperityCommercial, p.CommercialDensityKm2},
		{prosperityEmployment, p.OfficeDensityKm2},
		{prosperityMix, mix},
	}

	confidence := 1.0
	if p.GDPPerCapita == nil {
		confidence *= 0.75
	}
	if p.NightLightIntensity == nil {
		confidence *= 0.85
	}
	if p.CommercialDensityKm2 == nil {
		confidence *= 0.8
	}

	score, components, conf := assemble(subs, prosperityWeights, prosperityCurves, prosperityNeutral, confidence, prosperityFloor)

	return Score{
		Chapter:    Prosperity,
		Score:      score,
		Grade:      LetterGrade(score),
		Components: components,
		Confidence: conf,
		Summary:    prosperitySummary(score, p),
	}
}

func prosperitySummary(score float64, p indicator.Prosperity) string {
	lead := "Economic data is largely unavailable here."
	switch {
	case p.GDPPerCapita != nil && *p.GDPPerCapita >= 40000:
		lead = "A high-output local economy."
	case p.GDPPerCapita != nil && *p.GDPPerCapita >= 10000:
		lead = "A middling local economy."
	case p.GDPPerCapita != nil:
		lead = "A low-output local economy."
	case p.CommercialDensityKm2 != nil && *p.CommercialDensityKm2 >= 100:
		lead = "A busy street-level commercial economy."
	case p.CommercialDensityKm2 != nil:
		lead = "A thin street-level commercial economy."
	}
	return fmt.Sprintf("%s Prosperity is %s.", lead, qualityWord(score))
}
