package chapter

import (
	"fmt"

	"github.com/chrono-city/chronoscore/internal/curve"
	"github.com/chrono-city/chronoscore/internal/indicator"
)

// Sub-indicator keys for the Vitality chapter.
const (
	vitalityCompleteness = "completeness"
	vitalitySocialDense  = "social_density"
	vitalityFoodProx     = "food_proximity"
	vitalityDiversity    = "category_diversity"
)

// essentialCategories is the number of daily-needs categories tracked:
// food, health, education, shopping, leisure, civic.
const essentialCategories = 6

var vitalityWeights = []WeightEntry{
	{vitalityCompleteness, 0.35, "The 15-minute-city test: how many of the six essential daily-needs categories exist within reach."},
	{vitalitySocialDense, 0.25, "Venue density per hectare proxies footfall and natural surveillance throughout the day."},
	{vitalityFoodProx, 0.25, "Walking distance to food retail is the single most used daily trip."},
	{vitalityDiversity, 0.15, "A balanced category mix keeps the area alive outside business hours."},
}

var vitalityCurves = map[string]curve.Spec{
	vitalityCompleteness: curve.MustThreshold(
		[]float64{0, 1, 2, 3, 4, 5, 6},
		[]float64{0, 20, 35, 50, 70, 85, 100},
		"Count of essential categories present, 0-6: crossing four of six marks a broadly self-sufficient neighbourhood (Moreno et al., 15-minute city, 2021)."),
	vitalitySocialDense: curve.Logarithmic(0.2, 8, false,
		"POIs per hectare on a log scale: heavy-tailed, with meaningful gains from 0.2 up to roughly 8/ha."),
	vitalityFoodProx: curve.Linear(100, 1200, true,
		"Median distance to food venues: full score within 100 m, zero at the 1200 m pedshed edge (15 minutes at 80 m/min)."),
	vitalityDiversity: curve.Linear(0.3, 0.9, false,
		"Normalized entropy of venue categories between 0.3 (single-use strip) and 0.9 (even mix)."),
}

const (
	vitalityNeutral = 30.0
	vitalityFloor   = 0.15
)

// ScoreVitality evaluates the daily-needs chapter.
func ScoreVitality(v indicator.Vitality) Score {
	counts := []*float64{
		v.GroceryCount, v.EateryCount, v.RetailCount, v.HealthCount,
		v.EducationCount, v.LeisureCount, v.CivicCount,
	}

	// Completeness collapses grocery and eatery into the single "food"
	// essential; the other five counts map one category each.
	var completeness *float64
	presentCats := 0
	anyCount := false
	if v.GroceryCount != nil || v.EateryCount != nil {
		anyCount = true
		if deref(v.GroceryCount)+deref(v.EateryCount) > 0 {
			presentCats++
		}
	}
	for _, c := range []*float64{v.HealthCount, v.EducationCount, v.RetailCount, v.LeisureCount, v.CivicCount} {
		if c != nil {
			anyCount = true
			if *c > 0 {
				presentCats++
			}
		}
	}
	if anyCount {
		pc := float64(presentCats)
		completeness = &pc
	}

	diversityVal, diversityOK := normalizedEntropy(counts)
	var diversity *float64
	if diversityOK {
		diversity = &diversityVal
	}

	subs := []subIndicator{
		{vitalityCompleteness, completeness},
		{vitalitySocialDense, v.POIDensityPerHa},
		{vitalityFoodProx, v.FoodAccessDistanceM},
		{vitalityDiversity, diversity},
	}

	confidence := 1.0
	measuredCats := 0
	for _, c := range counts {
		if c != nil {
			measuredCats++
		}
	}
	if measuredCats < 3 {
		confidence *= 0.75
	}
	if v.FoodAccessDistanceM == nil {
		confidence *= 0.85
	}
	if v.POIDensityPerHa == nil {
		confidence *= 0.85
	}

	score, components, conf := assemble(subs, vitalityWeights, vitalityCurves, vitalityNeutral, confidence, vitalityFloor)

	return Score{
		Chapter:    Vitality,
		Score:      score,
		Grade:      LetterGrade(score),
		Components: components,
		Confidence: conf,
		Summary:    vitalitySummary(score, presentCats, anyCount),
	}
}

func vitalitySummary(score float64, presentCats int, anyCount bool) string {
	lead := "Venue data is largely unavailable here."
	if anyCount {
		switch {
		case presentCats >= 5:
			lead = fmt.Sprintf("Daily needs are nearly complete (%d of %d essential categories).", presentCats, essentialCategories)
		case presentCats >= 3:
			lead = fmt.Sprintf("Most daily needs are covered (%d of %d essential categories).", presentCats, essentialCategories)
		default:
			lead = fmt.Sprintf("Few daily needs are covered locally (%d of %d essential categories).", presentCats, essentialCategories)
		}
	}
	return fmt.Sprintf("%s Vitality is %s.", lead, qualityWord(score))
}
