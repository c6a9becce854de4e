package chapter

import (
	"fmt"

	"github.com/chrono-city/chronoscore/internal/curve"
	"github.com/chrono-city/chronoscore/internal/indicator"
)

// Sub-indicator keys for the Culture chapter.
const (
	cultureVenues   = "venue_count"
	cultureHeritage = "heritage_presence"
	cultureVariety  = "venue_variety"
	cultureMix      = "cultural_mix"
)

var cultureWeights = []WeightEntry{
	{cultureVenues, 0.35, "The absolute stock of cultural venues is the base measure of cultural capital."},
	{cultureHeritage, 0.25, "Protected heritage anchors identity and keeps long-lived fabric in use."},
	{cultureVariety, 0.20, "Having several venue types matters more than many venues of one type."},
	{cultureMix, 0.20, "An even spread across venue types signals a broad cultural offer rather than a single flagship."},
}

var cultureCurves = map[string]curve.Spec{
	cultureVenues: curve.Logarithmic(0, 50, false,
		"Total museums, galleries, theatres, cinemas and libraries on a log scale; fifty venues marks a metropolitan cultural district."),
	cultureHeritage: curve.MustThreshold(
		[]float64{0, 1, 3, 10},
		[]float64{0, 40, 70, 100},
		"Count of listed heritage sites: one already anchors an identity, three a recognisable quarter, ten a historic district."),
	cultureVariety: curve.MustThreshold(
		[]float64{0, 1, 2, 3, 4, 5},
		[]float64{0, 20, 40, 60, 80, 100},
		"Count of distinct venue types present, 0-5."),
	cultureMix: curve.Linear(0.3, 0.9, false,
		"Normalized entropy of cultural venue types between 0.3 and 0.9."),
}

const (
	cultureNeutral = 35.0
	cultureFloor   = 0.15
)

// ScoreCulture evaluates the cultural-capital chapter.
func ScoreCulture(c indicator.Culture) Score {
	venueCounts := []*float64{
		c.MuseumCount, c.GalleryCount, c.TheatreCount, c.CinemaCount, c.LibraryCount,
	}

	// Venue count is the sum across the five tracked types; present when any
	// type was measured.
	var venues *float64
	var variety *float64
	measured := 0
	total := 0.0
	types := 0
	for _, v := range venueCounts {
		if v != nil {
			measured++
			total += *v
			if *v > 0 {
				types++
			}
		}
	}
	if measured > 0 {
		venues = &total
		t := float64(types)
		variety = &t
	}

	mixVal, mixOK := normalizedEntropy(append(venueCounts, c.ReligiousSiteCount))
	var mix *float64
	if mixOK {
		mix = &mixVal
	}

	subs := []subIndicator{
		{cultureVenues, venues},
		{cultureHeritage, c.HeritageSiteCount},
		{cultureVariety, variety},
		{cultureMix, mix},
	}

	confidence := 1.0
	if measured == 0 {
		confidence *= 0.7
	} else if measured < len(venueCounts) {
		confidence *= 0.9
	}
	if c.HeritageSiteCount == nil {
		confidence *= 0.85
	}

	score, components, conf := assemble(subs, cultureWeights, cultureCurves, cultureNeutral, confidence, cultureFloor)

	return Score{
		Chapter:    Culture,
		Score:      score,
		Grade:      LetterGrade(score),
		Components: components,
		Confidence: conf,
		Summary:    cultureSummary(score, venues, c.HeritageSiteCount),
	}
}

func cultureSummary(score float64, venues, heritage *float64) string {
	lead := "Cultural venue data is largely unavailable here."
	switch {
	case venues != nil && *venues >= 20:
		lead = "A rich cluster of cultural venues."
	case venues != nil && *venues >= 5:
		lead = "A modest cultural offer."
	case heritage != nil && *heritage >= 3:
		lead = "Few venues, but notable built heritage."
	case venues != nil:
		lead = "Little cultural infrastructure on record."
	}
	return fmt.Sprintf("%s Cultural capital is %s.", lead, qualityWord(score))
}
