package pipeline

import (
	"time"

	"github.com/chrono-city/chronoscore/internal/adapter"
	"github.com/chrono-city/chronoscore/internal/chapter"
	"github.com/chrono-city/chronoscore/internal/chrono"
)

// ExportRow is the flat, writer-agnostic shape of one scored cell.
// Headline raw attributes ride along so an analyst can sanity-check a
// score without rejoining the source tiles.
type ExportRow struct {
	CellID     string  `json:"cell_id"`
	Resolution int     `json:"resolution"`
	Score      float64 `json:"score"`
	Grade      string  `json:"grade"`
	Confidence float64 `json:"confidence"`

	Fabric       float64 `json:"fabric"`
	Resilience   float64 `json:"resilience"`
	Vitality     float64 `json:"vitality"`
	Connectivity float64 `json:"connectivity"`
	Prosperity   float64 `json:"prosperity"`
	Environment  float64 `json:"environment"`
	Culture      float64 `json:"culture"`

	Population    float64 `json:"population"`
	Builtup       float64 `json:"builtup"`
	BuildingCount float64 `json:"building_count"`
	RoadLengthKm  float64 `json:"road_length_km"`
	POICount      float64 `json:"poi_count"`
	InformRisk    float64 `json:"inform_risk"`

	Version    string    `json:"version"`
	ComputedAt time.Time `json:"computed_at"`
}

// FlattenReport collapses a report and its source tile attributes into
// one export row. Non-cell contexts get an empty cell id.
func FlattenReport(rep *chrono.Report, props adapter.TileProperties) ExportRow {
	row := ExportRow{
		Score:      rep.Score,
		Grade:      rep.Grade,
		Confidence: rep.Confidence,
		Version:    rep.Version,
		ComputedAt: rep.ComputedAt,
	}
	if cell, ok := rep.Context.(chrono.CellContext); ok {
		row.CellID = cell.CellID
		row.Resolution = cell.Resolution
	}

	row.Fabric = rep.Chapters[chapter.Fabric].Score
	row.Resilience = rep.Chapters[chapter.Resilience].Score
	row.Vitality = rep.Chapters[chapter.Vitality].Score
	row.Connectivity = rep.Chapters[chapter.Connectivity].Score
	row.Prosperity = rep.Chapters[chapter.Prosperity].Score
	row.Environment = rep.Chapters[chapter.Environment].Score
	row.Culture = rep.Chapters[chapter.Culture].Score

	row.Population = props[adapter.PropPopulation]
	row.Builtup = props[adapter.PropBuiltup]
	row.BuildingCount = props[adapter.PropBuildingCount]
	row.RoadLengthKm = props[adapter.PropTotalRoadLength]
	if total, ok := adapter.POITotal(props); ok {
		row.POICount = total
	}
	row.InformRisk = props[adapter.PropInformRisk]
	return row
}
