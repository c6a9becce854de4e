package chrono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrono-city/chronoscore/internal/chapter"
	"github.com/chrono-city/chronoscore/internal/indicator"
)

func TestHarmonyBonus(t *testing.T) {
	t.Run("uniform scores earn the full bonus", func(t *testing.T) {
		assert.InDelta(t, 5, harmonyBonus([]float64{70, 70, 70, 70, 70, 70, 70}), 1e-9)
	})

	t.Run("high spread earns nothing", func(t *testing.T) {
		// CV well above 0.4
		assert.Equal(t, 0.0, harmonyBonus([]float64{100, 5, 100, 5, 100, 5, 100}))
	})

	t.Run("moderate spread earns a partial bonus", func(t *testing.T) {
		b := harmonyBonus([]float64{60, 70, 80, 60, 70, 80, 70})
		assert.Greater(t, b, 0.0)
		assert.Less(t, b, 5.0)
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		assert.Equal(t, 0.0, harmonyBonus(nil))
		assert.Equal(t, 0.0, harmonyBonus([]float64{0, 0, 0}))
	})
}

func TestOverallConfidence(t *testing.T) {
	chapters := make(map[string]chapter.Score, len(chapter.Names))
	for _, name := range chapter.Names {
		chapters[name] = chapter.Score{Confidence: 1}
	}

	chapters[chapter.Fabric] = chapter.Score{Confidence: 0.5}
	chapters[chapter.Vitality] = chapter.Score{Confidence: 0.8}
	assert.InDelta(t, 0.4, overallConfidence(chapters), 1e-9)

	t.Run("any zero chapter zeroes the product", func(t *testing.T) {
		chapters[chapter.Culture] = chapter.Score{Confidence: 0}
		assert.Equal(t, 0.0, overallConfidence(chapters))
	})

	t.Run("product order is canonical", func(t *testing.T) {
		// Non-associative float inputs: a map-order product would drift
		// between runs, the canonical-order product never does.
		vals := []float64{0.7225, 0.15, 0.6375, 0.15, 0.2, 0.2, 0.15}
		for i, name := range chapter.Names {
			chapters[name] = chapter.Score{Confidence: vals[i]}
		}
		want := overallConfidence(chapters)
		for i := 0; i < 100; i++ {
			assert.Equal(t, want, overallConfidence(chapters))
		}
	})
}

func TestComputeChronoScoreEmptyInput(t *testing.T) {
	rep := ComputeChronoScore(&indicator.Raw{}, NewCellContext("cell-1", 9, 0.7))

	require.Len(t, rep.Chapters, 7)
	for _, name := range chapter.Names {
		_, ok := rep.Chapters[name]
		assert.True(t, ok, "chapter %s missing", name)
	}

	// With no data every chapter returns its neutral default, so the
	// composite sits mid-range with near-zero confidence.
	assert.Greater(t, rep.Score, 30.0)
	assert.Less(t, rep.Score, 55.0)
	assert.Less(t, rep.Confidence, 0.01)
	assert.Equal(t, Version, rep.Version)
	assert.Equal(t, "cell", rep.Context.Mode())
	assert.False(t, rep.ComputedAt.IsZero())
}

func TestComputeChronoScoreDeterminism(t *testing.T) {
	raw := &indicator.Raw{
		Fabric: indicator.Fabric{
			GSI:                indicator.Of(0.3),
			BuildingDensityKm2: indicator.Of(1200),
		},
		Vitality: indicator.Vitality{
			EateryCount: indicator.Of(12),
			RetailCount: indicator.Of(8),
		},
	}

	a := ComputeChronoScore(raw, NewCellContext("cell-1", 9, 0.7))
	for i := 0; i < 50; i++ {
		b := ComputeChronoScore(raw, NewCellContext("cell-1", 9, 0.7))

		assert.Equal(t, a.Score, b.Score)
		assert.Equal(t, a.Grade, b.Grade)
		assert.Equal(t, a.Confidence, b.Confidence)
		for name, cs := range a.Chapters {
			assert.Equal(t, cs.Score, b.Chapters[name].Score, name)
			assert.Equal(t, cs.Confidence, b.Chapters[name].Confidence, name)
		}
	}
}

func TestComputeChronoScoreBounds(t *testing.T) {
	// Saturate every chapter and confirm the bonus cannot push past 100.
	raw := &indicator.Raw{
		Fabric: indicator.Fabric{
			GSI: indicator.Of(0.35), FSI: indicator.Of(1.8),
			MedianFootprintM2: indicator.Of(150), AvgCompactness: indicator.Of(0.8),
			BuildingDensityKm2: indicator.Of(2500),
		},
		Resilience: indicator.Resilience{
			ForestShare: indicator.Of(0.15), ShrubShare: indicator.Of(0.15),
			GrassShare: indicator.Of(0.15), WetlandShare: indicator.Of(0.15),
			CroplandShare: indicator.Of(0.15), BuiltShare: indicator.Of(0.25),
			Imperviousness: indicator.Of(0.2), WaterDistanceM: indicator.Of(50),
		},
		Vitality: indicator.Vitality{
			GroceryCount: indicator.Of(10), EateryCount: indicator.Of(10),
			RetailCount: indicator.Of(10), HealthCount: indicator.Of(10),
			EducationCount: indicator.Of(10), LeisureCount: indicator.Of(10),
			CivicCount: indicator.Of(10), POIDensityPerHa: indicator.Of(8),
			FoodAccessDistanceM: indicator.Of(50),
		},
		Connectivity: indicator.Connectivity{
			IntersectionDensityKm2: indicator.Of(150), DeadEndRatio: indicator.Of(0.01),
			ActiveTransportShare: indicator.Of(0.3), RoadDensityKmKm2: indicator.Of(14),
			OrientationEntropy: indicator.Of(0.1),
		},
		Prosperity: indicator.Prosperity{
			GDPPerCapita: indicator.Of(80000), NightLightIntensity: indicator.Of(60),
			CommercialDensityKm2: indicator.Of(500), OfficeDensityKm2: indicator.Of(300),
			BankDensityKm2: indicator.Of(400),
		},
		Environment: indicator.Environment{
			CycloneDays: indicator.Of(0), DroughtDays: indicator.Of(0),
			FloodDays: indicator.Of(0), HeatwaveDays: indicator.Of(0),
			WildfireDays: indicator.Of(0), InformRiskIndex: indicator.Of(0.5),
			PM25Mean: indicator.Of(5), HeatStressDays: indicator.Of(2),
		},
		Culture: indicator.Culture{
			MuseumCount: indicator.Of(10), GalleryCount: indicator.Of(10),
			TheatreCount: indicator.Of(10), CinemaCount: indicator.Of(10),
			LibraryCount: indicator.Of(10), HeritageSiteCount: indicator.Of(12),
			ReligiousSiteCount: indicator.Of(10),
		},
	}

	rep := ComputeChronoScore(raw, NewCellContext("cell-1", 9, 0.7))

	assert.LessOrEqual(t, rep.Score, 100.0)
	assert.Greater(t, rep.Score, 85.0)
	assert.Equal(t, "A", rep.Grade)
	assert.Greater(t, rep.Confidence, 0.9)
}

func TestComputeChronoScoreRounding(t *testing.T) {
	rep := ComputeChronoScore(&indicator.Raw{}, NewCellContext("c", 9, 1))
	// one decimal place
	assert.Equal(t, rep.Score, float64(int(rep.Score*10+0.5))/10)
}

func TestContextModes(t *testing.T) {
	cell := NewCellContext("abc", 9, 0.737)
	assert.Equal(t, "cell", cell.Mode())
	assert.Equal(t, 0.737, cell.AreaKm2())

	catchment := NewCatchmentContext(52.52, 13.405, 15, 4.52)
	assert.Equal(t, "catchment", catchment.Mode())
	assert.Equal(t, 4.52, catchment.AreaKm2())
	assert.Equal(t, 15, catchment.Minutes)

	bbox := NewBBoxContext(13.38, 52.50, 13.43, 52.54, 15.1)
	assert.Equal(t, "bbox", bbox.Mode())
	assert.Equal(t, 15.1, bbox.AreaKm2())
}
