// Package adapter maps externally sourced attribute bundles onto the
// engine's raw indicator set. Tile attributes follow the Kontur hexagon
// vocabulary; anything the upstream layer omits stays nil so the scorers
// can account for it in confidence.
package adapter

import (
	"math"

	"github.com/chrono-city/chronoscore/internal/indicator"
)

// TileProperties is one hexagon's attribute map as delivered by the tile
// pipeline. Absent keys mean the layer was not available for the cell.
type TileProperties map[string]float64

// Attribute names recognised in tile property maps.
const (
	// population and built form
	PropPopulation           = "population"
	PropBuiltup              = "builtup"
	PropBuildingCount        = "building_count"
	PropAvgBuildingHeight    = "avg_building_height"
	PropAvgBuildingFootprint = "avg_building_footprint"
	PropBuildingCompactness  = "building_compactness_mean"

	// street network
	PropTotalRoadLength    = "total_road_length"
	PropIntersectionCount  = "intersection_count"
	PropDeadEndCount       = "dead_end_count"
	PropFootwayLength      = "footway_length"
	PropCyclewayLength     = "cycleway_length"
	PropOrientationEntropy = "orientation_entropy"

	// land cover shares and hydrology
	PropForest         = "forest"
	PropShrub          = "shrub"
	PropGrass          = "grass"
	PropWetland        = "wetland"
	PropCropland       = "cropland"
	PropImpervious     = "impervious"
	PropWaterDistanceM = "water_distance_m"

	// points of interest
	PropEateryCount     = "eatery_count"
	PropFoodShopsCount  = "food_shops_fsq_count"
	PropRetailCount     = "retail_fsq_count"
	PropHealthCount     = "health_fsq_count"
	PropEducationCount  = "education_fsq_count"
	PropLeisureCount    = "leisure_fsq_count"
	PropCivicCount      = "civic_fsq_count"
	PropMuseumCount     = "museum_fsq_count"
	PropGalleryCount    = "gallery_fsq_count"
	PropTheatreCount    = "theatre_fsq_count"
	PropCinemaCount     = "cinema_fsq_count"
	PropLibraryCount    = "library_fsq_count"
	PropHeritageSites   = "heritage_site_count"
	PropReligiousSites  = "religious_site_count"
	PropOfficeCount     = "office_fsq_count"
	PropBankCount       = "bank_fsq_count"
	PropCommercialCount = "commercial_fsq_count"
	PropFoodAccessDistM = "food_access_distance_m"

	// economy and night lights
	PropGDP                 = "gdp"
	PropNightLightIntensity = "night_light_intensity"

	// hazards and climate
	PropCycloneDays    = "cyclone_days_count"
	PropDroughtDays    = "drought_days_count"
	PropFloodDays      = "flood_days_count"
	PropHeatwaveDays   = "heatwave_days_count"
	PropWildfireDays   = "wildfire_days_count"
	PropHeatStressDays = "days_maxtemp_over_32c"
	PropPM25Mean       = "pm25_mean"
	PropInformRisk     = "inform_risk_index"
)

// get returns a pointer to the value when the key is present, nil otherwise.
func (p TileProperties) get(key string) *float64 {
	if v, ok := p[key]; ok {
		return indicator.Of(v)
	}
	return nil
}

func (p TileProperties) has(key string) bool {
	_, ok := p[key]
	return ok
}

// FromTile derives the raw indicator bundle for one hexagon. Tiles carry
// totals rather than densities, so areal indicators are normalised here;
// indicators the tile vocabulary lacks outright are estimated from what
// is present, at the cost of confidence downstream.
func FromTile(props TileProperties, areaKm2 float64) *indicator.Raw {
	raw := &indicator.Raw{}
	if areaKm2 <= 0 {
		return raw
	}
	areaHa := areaKm2 * 100

	// urban fabric
	raw.Fabric.GSI = props.get(PropBuiltup)
	raw.Fabric.AvgCompactness = props.get(PropBuildingCompactness)
	if count := props.get(PropBuildingCount); count != nil {
		raw.Fabric.BuildingDensityKm2 = indicator.Of(*count / areaKm2)
	}
	if h := props.get(PropAvgBuildingHeight); h != nil {
		raw.Fabric.AvgFloors = indicator.Of(math.Max(1, *h/3.5))
		if raw.Fabric.GSI != nil {
			// FSI = coverage x floors, the standard Spacematrix identity.
			raw.Fabric.FSI = indicator.Of(*raw.Fabric.GSI * math.Max(1, *h/3.5))
		}
	}
	switch {
	case props.has(PropAvgBuildingFootprint):
		raw.Fabric.MedianFootprintM2 = props.get(PropAvgBuildingFootprint)
	case props.has(PropBuiltup) && props.has(PropBuildingCount) && props[PropBuildingCount] > 0:
		// Footprint proxy: built area spread over the building count.
		footprint := props[PropBuiltup] * areaKm2 * 1e6 / props[PropBuildingCount]
		raw.Fabric.MedianFootprintM2 = indicator.Of(footprint)
	}

	// land cover and resilience
	raw.Resilience.ForestShare = props.get(PropForest)
	raw.Resilience.ShrubShare = props.get(PropShrub)
	raw.Resilience.GrassShare = props.get(PropGrass)
	raw.Resilience.WetlandShare = props.get(PropWetland)
	raw.Resilience.CroplandShare = props.get(PropCropland)
	raw.Resilience.BuiltShare = props.get(PropBuiltup)
	raw.Resilience.Imperviousness = props.get(PropImpervious)
	raw.Resilience.WaterDistanceM = props.get(PropWaterDistanceM)

	// vitality
	grocery := props.get(PropFoodShopsCount)
	eatery := props.get(PropEateryCount)
	raw.Vitality.GroceryCount = grocery
	raw.Vitality.EateryCount = eatery
	raw.Vitality.RetailCount = props.get(PropRetailCount)
	raw.Vitality.HealthCount = props.get(PropHealthCount)
	raw.Vitality.EducationCount = props.get(PropEducationCount)
	raw.Vitality.LeisureCount = props.get(PropLeisureCount)
	raw.Vitality.CivicCount = props.get(PropCivicCount)
	raw.Vitality.FoodAccessDistanceM = props.get(PropFoodAccessDistM)
	if total, measured := POITotal(props); measured {
		raw.Vitality.POIDensityPerHa = indicator.Of(total / areaHa)
	}

	// street network
	roadKm := props.get(PropTotalRoadLength)
	var roadDensity *float64
	if roadKm != nil {
		roadDensity = indicator.Of(*roadKm / areaKm2)
		raw.Connectivity.RoadDensityKmKm2 = roadDensity
	}
	switch {
	case props.has(PropIntersectionCount):
		raw.Connectivity.IntersectionDensityKm2 = indicator.Of(props[PropIntersectionCount] / areaKm2)
	case roadDensity != nil && props.has(PropBuiltup):
		// Denser settlement means more intersections per road kilometre.
		raw.Connectivity.IntersectionDensityKm2 = indicator.Of(*roadDensity * urbanizationFactor(props[PropBuiltup]))
	}
	switch {
	case props.has(PropDeadEndCount) && props.has(PropIntersectionCount) && props[PropIntersectionCount] > 0:
		raw.Connectivity.DeadEndRatio = indicator.Of(props[PropDeadEndCount] / props[PropIntersectionCount])
	case props.has(PropBuiltup):
		raw.Connectivity.DeadEndRatio = indicator.Of(deadEndRatioEstimate(props[PropBuiltup]))
	}
	switch {
	case roadKm != nil && *roadKm > 0 && (props.has(PropFootwayLength) || props.has(PropCyclewayLength)):
		active := props[PropFootwayLength] + props[PropCyclewayLength]
		raw.Connectivity.ActiveTransportShare = indicator.Of(math.Min(1, active / *roadKm))
	case props.has(PropPopulation):
		raw.Connectivity.ActiveTransportShare = indicator.Of(activeShareEstimate(props[PropPopulation] / areaKm2))
	}
	raw.Connectivity.OrientationEntropy = props.get(PropOrientationEntropy)

	// prosperity
	if gdp := props.get(PropGDP); gdp != nil {
		if pop := props.get(PropPopulation); pop != nil && *pop > 0 {
			raw.Prosperity.GDPPerCapita = indicator.Of(*gdp / *pop)
		}
	}
	raw.Prosperity.NightLightIntensity = props.get(PropNightLightIntensity)
	if c := props.get(PropCommercialCount); c != nil {
		raw.Prosperity.CommercialDensityKm2 = indicator.Of(*c / areaKm2)
	} else if retail := props.get(PropRetailCount); retail != nil {
		raw.Prosperity.CommercialDensityKm2 = indicator.Of(*retail / areaKm2)
	}
	if c := props.get(PropOfficeCount); c != nil {
		raw.Prosperity.OfficeDensityKm2 = indicator.Of(*c / areaKm2)
	}
	if c := props.get(PropBankCount); c != nil {
		raw.Prosperity.BankDensityKm2 = indicator.Of(*c / areaKm2)
	}

	// hazards
	raw.Environment.CycloneDays = props.get(PropCycloneDays)
	raw.Environment.DroughtDays = props.get(PropDroughtDays)
	raw.Environment.FloodDays = props.get(PropFloodDays)
	raw.Environment.HeatwaveDays = props.get(PropHeatwaveDays)
	raw.Environment.WildfireDays = props.get(PropWildfireDays)
	raw.Environment.InformRiskIndex = props.get(PropInformRisk)
	raw.Environment.PM25Mean = props.get(PropPM25Mean)
	raw.Environment.HeatStressDays = props.get(PropHeatStressDays)

	// culture
	raw.Culture.MuseumCount = props.get(PropMuseumCount)
	raw.Culture.GalleryCount = props.get(PropGalleryCount)
	raw.Culture.TheatreCount = props.get(PropTheatreCount)
	raw.Culture.CinemaCount = props.get(PropCinemaCount)
	raw.Culture.LibraryCount = props.get(PropLibraryCount)
	raw.Culture.HeritageSiteCount = props.get(PropHeritageSites)
	raw.Culture.ReligiousSiteCount = props.get(PropReligiousSites)

	return raw
}

// POITotal sums every POI layer the tile carries. The second return is
// false when no POI layer was present at all.
func POITotal(props TileProperties) (float64, bool) {
	keys := []string{
		PropFoodShopsCount, PropEateryCount, PropRetailCount, PropHealthCount,
		PropEducationCount, PropLeisureCount, PropCivicCount,
	}
	var total float64
	measured := false
	for _, k := range keys {
		if v, ok := props[k]; ok {
			total += v
			measured = true
		}
	}
	return total, measured
}

// urbanizationFactor estimates intersections per road kilometre from the
// built-up share. Calibrated against cells where both layers exist.
func urbanizationFactor(builtup float64) float64 {
	switch {
	case builtup >= 0.5:
		return 10
	case builtup >= 0.25:
		return 8
	case builtup >= 0.1:
		return 6
	default:
		return 4
	}
}

// deadEndRatioEstimate falls back to typical cul-de-sac prevalence for a
// given settlement intensity when the network layer lacks node counts.
func deadEndRatioEstimate(builtup float64) float64 {
	switch {
	case builtup >= 0.5:
		return 0.08
	case builtup >= 0.3:
		return 0.15
	case builtup >= 0.15:
		return 0.22
	case builtup >= 0.05:
		return 0.32
	default:
		return 0.42
	}
}

// activeShareEstimate infers the walking and cycling share of the network
// from population density when footway lengths are unavailable.
func activeShareEstimate(popDensityKm2 float64) float64 {
	switch {
	case popDensityKm2 >= 10000:
		return 0.30
	case popDensityKm2 >= 5000:
		return 0.22
	case popDensityKm2 >= 2000:
		return 0.15
	case popDensityKm2 >= 500:
		return 0.08
	default:
		return 0.03
	}
}
