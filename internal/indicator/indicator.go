// Package indicator defines the raw indicator bundles the scoring engine
// consumes. Every field is a *float64: nil means "not computable from this
// source", which is distinct from a measured zero. Bundles are built once
// per scoring call by a source adapter and never mutated afterwards.
package indicator

// Of returns a pointer to v. Convenience for building bundles inline.
func Of(v float64) *float64 {
	return &v
}

// Fabric holds the physical-form indicators for a spatial unit.
type Fabric struct {
	// GSI is the Ground Space Index: building footprint area / unit area, 0-1.
	GSI *float64 `json:"gsi,omitempty"`
	// FSI is the Floor Space Index: gross floor area / unit area.
	FSI *float64 `json:"fsi,omitempty"`
	// AvgCompactness is the mean isoperimetric quotient of building
	// footprints (4*pi*area/perimeter^2). A circle scores 1.0.
	AvgCompactness *float64 `json:"avg_compactness,omitempty"`
	// MedianFootprintM2 is the median building footprint area in square
	// metres, the urban grain size.
	MedianFootprintM2 *float64 `json:"median_footprint_m2,omitempty"`
	// BuildingDensityKm2 is buildings per square kilometre.
	BuildingDensityKm2 *float64 `json:"building_density_km2,omitempty"`
	// AvgFloors is the mean estimated floor count.
	AvgFloors *float64 `json:"avg_floors,omitempty"`
}

// Resilience holds the green and land-use indicators. Share fields are
// fractions of the unit area in [0,1].
type Resilience struct {
	ForestShare   *float64 `json:"forest_share,omitempty"`
	ShrubShare    *float64 `json:"shrub_share,omitempty"`
	GrassShare    *float64 `json:"grass_share,omitempty"`
	WetlandShare  *float64 `json:"wetland_share,omitempty"`
	CroplandShare *float64 `json:"cropland_share,omitempty"`
	BuiltShare    *float64 `json:"built_share,omitempty"`
	// Imperviousness is the sealed-surface fraction, 0-1.
	Imperviousness *float64 `json:"imperviousness,omitempty"`
	// WaterDistanceM is the distance to the nearest water body in metres.
	WaterDistanceM *float64 `json:"water_distance_m,omitempty"`
}

// Vitality holds the daily-needs indicators. Count fields are venue counts
// inside the unit.
type Vitality struct {
	GroceryCount   *float64 `json:"grocery_count,omitempty"`
	EateryCount    *float64 `json:"eatery_count,omitempty"`
	RetailCount    *float64 `json:"retail_count,omitempty"`
	HealthCount    *float64 `json:"health_count,omitempty"`
	EducationCount *float64 `json:"education_count,omitempty"`
	LeisureCount   *float64 `json:"leisure_count,omitempty"`
	CivicCount     *float64 `json:"civic_count,omitempty"`
	// POIDensityPerHa is total points of interest per hectare.
	POIDensityPerHa *float64 `json:"poi_density_per_ha,omitempty"`
	// FoodAccessDistanceM is the median walking distance to food venues.
	FoodAccessDistanceM *float64 `json:"food_access_distance_m,omitempty"`
}

// Connectivity holds the street-network indicators.
type Connectivity struct {
	// IntersectionDensityKm2 is street intersections per square kilometre.
	IntersectionDensityKm2 *float64 `json:"intersection_density_km2,omitempty"`
	// DeadEndRatio is degree-1 nodes / total nodes, 0-1.
	DeadEndRatio *float64 `json:"dead_end_ratio,omitempty"`
	// ActiveTransportShare is the walkable+cyclable fraction of network length.
	ActiveTransportShare *float64 `json:"active_transport_share,omitempty"`
	// RoadDensityKmKm2 is street length in km per square kilometre.
	RoadDensityKmKm2 *float64 `json:"road_density_km_km2,omitempty"`
	// OrientationEntropy is the normalized entropy of segment bearings, 0-1.
	// Low entropy reads as a legible grid.
	OrientationEntropy *float64 `json:"orientation_entropy,omitempty"`
}

// Prosperity holds the economic indicators. Density fields are venues per
// square kilometre.
type Prosperity struct {
	GDPPerCapita         *float64 `json:"gdp_per_capita,omitempty"`
	NightLightIntensity  *float64 `json:"night_light_intensity,omitempty"`
	CommercialDensityKm2 *float64 `json:"commercial_density_km2,omitempty"`
	OfficeDensityKm2     *float64 `json:"office_density_km2,omitempty"`
	BankDensityKm2       *float64 `json:"bank_density_km2,omitempty"`
}

// Environment holds the climate and disaster-risk indicators. Day counters
// are observed event days per year.
type Environment struct {
	CycloneDays  *float64 `json:"cyclone_days,omitempty"`
	DroughtDays  *float64 `json:"drought_days,omitempty"`
	FloodDays    *float64 `json:"flood_days,omitempty"`
	HeatwaveDays *float64 `json:"heatwave_days,omitempty"`
	WildfireDays *float64 `json:"wildfire_days,omitempty"`
	// InformRiskIndex is the INFORM composite risk index, 0 (none) to 10.
	InformRiskIndex *float64 `json:"inform_risk_index,omitempty"`
	// PM25Mean is the annual mean PM2.5 concentration in ug/m3.
	PM25Mean *float64 `json:"pm25_mean,omitempty"`
	// HeatStressDays is days per year with maximum temperature above 32C.
	HeatStressDays *float64 `json:"heat_stress_days,omitempty"`
}

// Culture holds the cultural-capital indicators as venue counts.
type Culture struct {
	MuseumCount        *float64 `json:"museum_count,omitempty"`
	GalleryCount       *float64 `json:"gallery_count,omitempty"`
	TheatreCount       *float64 `json:"theatre_count,omitempty"`
	CinemaCount        *float64 `json:"cinema_count,omitempty"`
	LibraryCount       *float64 `json:"library_count,omitempty"`
	HeritageSiteCount  *float64 `json:"heritage_site_count,omitempty"`
	ReligiousSiteCount *float64 `json:"religious_site_count,omitempty"`
}

// Raw aggregates the seven per-chapter bundles for one scoring call.
type Raw struct {
	Fabric       Fabric       `json:"fabric"`
	Resilience   Resilience   `json:"resilience"`
	Vitality     Vitality     `json:"vitality"`
	Connectivity Connectivity `json:"connectivity"`
	Prosperity   Prosperity   `json:"prosperity"`
	Environment  Environment  `json:"environment"`
	Culture      Culture      `json:"culture"`
}

// Clone returns a deep copy of the bundle. Field pointers are re-allocated
// so the copy shares no state with the original.
func (r *Raw) Clone() *Raw {
	if r == nil {
		return nil
	}
	out := *r
	out.Fabric = Fabric{
		GSI:                clone(r.Fabric.GSI),
		FSI:                clone(r.Fabric.FSI),
		AvgCompactness:     clone(r.Fabric.AvgCompactness),
		MedianFootprintM2:  clone(r.Fabric.MedianFootprintM2),
		BuildingDensityKm2: clone(r.Fabric.BuildingDensityKm2),
		AvgFloors:          clone(r.Fabric.AvgFloors),
	}
	out.Resilience = Resilience{
		ForestShare:    clone(r.Resilience.ForestShare),
		ShrubShare:     clone(r.Resilience.ShrubShare),
		GrassShare:     clone(r.Resilience.GrassShare),
		WetlandShare:   clone(r.Resilience.WetlandShare),
		CroplandShare:  clone(r.Resilience.CroplandShare),
		BuiltShare:     clone(r.Resilience.BuiltShare),
		Imperviousness: clone(r.Resilience.Imperviousness),
		WaterDistanceM: clone(r.Resilience.WaterDistanceM),
	}
	out.Vitality = Vitality{
		GroceryCount:        clone(r.Vitality.GroceryCount),
		EateryCount:         clone(r.Vitality.EateryCount),
		RetailCount:         clone(r.Vitality.RetailCount),
		HealthCount:         clone(r.Vitality.HealthCount),
		EducationCount:      clone(r.Vitality.EducationCount),
		LeisureCount:        clone(r.Vitality.LeisureCount),
		CivicCount:          clone(r.Vitality.CivicCount),
		POIDensityPerHa:     clone(r.Vitality.POIDensityPerHa),
		FoodAccessDistanceM: clone(r.Vitality.FoodAccessDistanceM),
	}
	out.Connectivity = Connectivity{
		IntersectionDensityKm2: clone(r.Connectivity.IntersectionDensityKm2),
		DeadEndRatio:           clone(r.Connectivity.DeadEndRatio),
		ActiveTransportShare:   clone(r.Connectivity.ActiveTransportShare),
		RoadDensityKmKm2:       clone(r.Connectivity.RoadDensityKmKm2),
		OrientationEntropy:     clone(r.Connectivity.OrientationEntropy),
	}
	out.Prosperity = Prosperity{
		GDPPerCapita:         clone(r.Prosperity.GDPPerCapita),
		NightLightIntensity:  clone(r.Prosperity.NightLightIntensity),
		CommercialDensityKm2: clone(r.Prosperity.CommercialDensityKm2),
		OfficeDensityKm2:     clone(r.Prosperity.OfficeDensityKm2),
		BankDensityKm2:       clone(r.Prosperity.BankDensityKm2),
	}
	out.Environment = Environment{
		CycloneDays:     clone(r.Environment.CycloneDays),
		DroughtDays:     clone(r.Environment.DroughtDays),
		FloodDays:       clone(r.Environment.FloodDays),
		HeatwaveDays:    clone(r.Environment.HeatwaveDays),
		WildfireDays:    clone(r.Environment.WildfireDays),
		InformRiskIndex: clone(r.Environment.InformRiskIndex),
		PM25Mean:        clone(r.Environment.PM25Mean),
		HeatStressDays:  clone(r.Environment.HeatStressDays),
	}
	out.Culture = Culture{
		MuseumCount:        clone(r.Culture.MuseumCount),
		GalleryCount:       clone(r.Culture.GalleryCount),
		TheatreCount:       clone(r.Culture.TheatreCount),
		CinemaCount:        clone(r.Culture.CinemaCount),
		LibraryCount:       clone(r.Culture.LibraryCount),
		HeritageSiteCount:  clone(r.Culture.HeritageSiteCount),
		ReligiousSiteCount: clone(r.Culture.ReligiousSiteCount),
	}
	return &out
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
