package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrono-city/chronoscore/internal/indicator"
)

func TestFromTileFabricDerivations(t *testing.T) {
	props := TileProperties{
		PropPopulation:        5000,
		PropBuiltup:           0.4,
		PropBuildingCount:     800,
		PropAvgBuildingHeight: 10.5,
	}
	raw := FromTile(props, 0.737)

	require.NotNil(t, raw.Fabric.GSI)
	assert.Equal(t, 0.4, *raw.Fabric.GSI)

	require.NotNil(t, raw.Fabric.BuildingDensityKm2)
	assert.InDelta(t, 800/0.737, *raw.Fabric.BuildingDensityKm2, 1e-9)

	// FSI = GSI x floors, floors = height / 3.5
	require.NotNil(t, raw.Fabric.FSI)
	assert.InDelta(t, 0.4*3, *raw.Fabric.FSI, 1e-9)
	require.NotNil(t, raw.Fabric.AvgFloors)
	assert.InDelta(t, 3, *raw.Fabric.AvgFloors, 1e-9)

	// footprint proxy: built area spread over the building count
	require.NotNil(t, raw.Fabric.MedianFootprintM2)
	assert.InDelta(t, 0.4*0.737*1e6/800, *raw.Fabric.MedianFootprintM2, 1e-9)
}

func TestFromTileDirectFootprintWins(t *testing.T) {
	props := TileProperties{
		PropAvgBuildingFootprint: 220,
		PropBuiltup:              0.4,
		PropBuildingCount:        800,
	}
	raw := FromTile(props, 1)

	require.NotNil(t, raw.Fabric.MedianFootprintM2)
	assert.Equal(t, 220.0, *raw.Fabric.MedianFootprintM2)
}

func TestFromTileConnectivityProxies(t *testing.T) {
	props := TileProperties{
		PropPopulation:      5000,
		PropBuiltup:         0.4,
		PropTotalRoadLength: 12,
	}
	area := 0.737
	raw := FromTile(props, area)

	roadDensity := 12 / area
	require.NotNil(t, raw.Connectivity.RoadDensityKmKm2)
	assert.InDelta(t, roadDensity, *raw.Connectivity.RoadDensityKmKm2, 1e-9)

	// builtup 0.4 sits in the [0.25, 0.5) urbanization band
	require.NotNil(t, raw.Connectivity.IntersectionDensityKm2)
	assert.InDelta(t, roadDensity*8, *raw.Connectivity.IntersectionDensityKm2, 1e-9)

	require.NotNil(t, raw.Connectivity.DeadEndRatio)
	assert.Equal(t, 0.15, *raw.Connectivity.DeadEndRatio)

	// pop density 5000/0.737 ~ 6784/km2 falls in the 0.22 band
	require.NotNil(t, raw.Connectivity.ActiveTransportShare)
	assert.Equal(t, 0.22, *raw.Connectivity.ActiveTransportShare)
}

func TestFromTileMeasuredNetworkBeatsProxies(t *testing.T) {
	props := TileProperties{
		PropBuiltup:           0.4,
		PropTotalRoadLength:   10,
		PropIntersectionCount: 90,
		PropDeadEndCount:      9,
		PropFootwayLength:     2,
		PropCyclewayLength:    1,
	}
	raw := FromTile(props, 1)

	assert.InDelta(t, 90, *raw.Connectivity.IntersectionDensityKm2, 1e-9)
	assert.InDelta(t, 0.1, *raw.Connectivity.DeadEndRatio, 1e-9)
	assert.InDelta(t, 0.3, *raw.Connectivity.ActiveTransportShare, 1e-9)
}

func TestFromTileVitalityAndProsperity(t *testing.T) {
	props := TileProperties{
		PropPopulation:          5000,
		PropEateryCount:         30,
		PropRetailCount:         20,
		PropGDP:                 150e6,
		PropNightLightIntensity: 42,
		PropOfficeCount:         10,
	}
	area := 0.737
	raw := FromTile(props, area)

	// POI density over hectares, from the two measured layers
	require.NotNil(t, raw.Vitality.POIDensityPerHa)
	assert.InDelta(t, 50/(area*100), *raw.Vitality.POIDensityPerHa, 1e-9)

	require.NotNil(t, raw.Prosperity.GDPPerCapita)
	assert.InDelta(t, 150e6/5000, *raw.Prosperity.GDPPerCapita, 1e-9)

	// retail stands in for the commercial layer when it is missing
	require.NotNil(t, raw.Prosperity.CommercialDensityKm2)
	assert.InDelta(t, 20/area, *raw.Prosperity.CommercialDensityKm2, 1e-9)

	require.NotNil(t, raw.Prosperity.OfficeDensityKm2)
	assert.InDelta(t, 10/area, *raw.Prosperity.OfficeDensityKm2, 1e-9)

	assert.NotNil(t, raw.Prosperity.NightLightIntensity)
}

func TestFromTileAbsentStaysAbsent(t *testing.T) {
	raw := FromTile(TileProperties{PropBuiltup: 0.3}, 1)

	assert.Nil(t, raw.Fabric.FSI)
	assert.Nil(t, raw.Fabric.AvgCompactness)
	assert.Nil(t, raw.Vitality.POIDensityPerHa)
	assert.Nil(t, raw.Prosperity.GDPPerCapita)
	assert.Nil(t, raw.Environment.PM25Mean)
	assert.Nil(t, raw.Culture.MuseumCount)
}

func TestFromTileZeroArea(t *testing.T) {
	raw := FromTile(TileProperties{PropBuiltup: 0.3}, 0)
	assert.Equal(t, &indicator.Raw{}, raw)
}

func TestUrbanizationFactorBands(t *testing.T) {
	assert.Equal(t, 10.0, urbanizationFactor(0.6))
	assert.Equal(t, 8.0, urbanizationFactor(0.3))
	assert.Equal(t, 6.0, urbanizationFactor(0.12))
	assert.Equal(t, 4.0, urbanizationFactor(0.01))
}

func TestPOITotal(t *testing.T) {
	total, ok := POITotal(TileProperties{PropEateryCount: 3, PropCivicCount: 2})
	assert.True(t, ok)
	assert.Equal(t, 5.0, total)

	_, ok = POITotal(TileProperties{PropMuseumCount: 9})
	assert.False(t, ok)
}

func TestFromCatchmentClones(t *testing.T) {
	raw := &indicator.Raw{
		Fabric: indicator.Fabric{GSI: indicator.Of(0.4)},
	}
	got := FromCatchment(raw)

	require.NotNil(t, got.Fabric.GSI)
	assert.Equal(t, 0.4, *got.Fabric.GSI)

	// mutating the clone must not touch the caller's bundle
	*got.Fabric.GSI = 0.9
	assert.Equal(t, 0.4, *raw.Fabric.GSI)

	assert.NotNil(t, FromCatchment(nil))
}
