package chrono

// Context describes the spatial unit a score applies to. It is a sealed
// union of the three supported modes; the concrete type is carried through
// unchanged into the report for traceability.
type Context interface {
	// Mode returns the context discriminator: "cell", "catchment" or "bbox".
	Mode() string
	// AreaKm2 returns the unit area in square kilometres.
	AreaKm2() float64

	sealed()
}

// CellContext scopes a score to one pre-aggregated hexagonal grid cell.
type CellContext struct {
	Kind       string  `json:"mode"`
	CellID     string  `json:"cell_id"`
	Resolution int     `json:"resolution"`
	Area       float64 `json:"area_km2"`
}

// NewCellContext builds a hex-cell context.
func NewCellContext(cellID string, resolution int, areaKm2 float64) CellContext {
	return CellContext{Kind: "cell", CellID: cellID, Resolution: resolution, Area: areaKm2}
}

func (c CellContext) Mode() string     { return "cell" }
func (c CellContext) AreaKm2() float64 { return c.Area }
func (CellContext) sealed()            {}

// CatchmentContext scopes a score to a walking catchment around an origin.
type CatchmentContext struct {
	Kind    string  `json:"mode"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Minutes int     `json:"minutes"`
	Area    float64 `json:"area_km2"`
}

// NewCatchmentContext builds a walking-catchment context.
func NewCatchmentContext(lat, lng float64, minutes int, areaKm2 float64) CatchmentContext {
	return CatchmentContext{Kind: "catchment", Lat: lat, Lng: lng, Minutes: minutes, Area: areaKm2}
}

func (c CatchmentContext) Mode() string     { return "catchment" }
func (c CatchmentContext) AreaKm2() float64 { return c.Area }
func (CatchmentContext) sealed()            {}

// BBoxContext scopes a score to an arbitrary bounding box.
type BBoxContext struct {
	Kind  string  `json:"mode"`
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
	Area  float64 `json:"area_km2"`
}

// NewBBoxContext builds a bounding-box context.
func NewBBoxContext(west, south, east, north, areaKm2 float64) BBoxContext {
	return BBoxContext{Kind: "bbox", West: west, South: south, East: east, North: north, Area: areaKm2}
}

func (c BBoxContext) Mode() string     { return "bbox" }
func (c BBoxContext) AreaKm2() float64 { return c.Area }
func (BBoxContext) sealed()            {}
