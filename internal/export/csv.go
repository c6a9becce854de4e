// Package export writes scored cells to analyst-facing formats.
package export

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/chrono-city/chronoscore/internal/pipeline"
)

// columns defines the ordered output columns shared by every writer.
var columns = []string{
	"cell_id",
	"resolution",
	"score",
	"grade",
	"confidence",
	"fabric",
	"resilience",
	"vitality",
	"connectivity",
	"prosperity",
	"environment",
	"culture",
	"population",
	"builtup",
	"building_count",
	"road_length_km",
	"poi_count",
	"inform_risk",
	"version",
	"computed_at",
}

// WriteCSV writes score rows as a CSV file.
func WriteCSV(rows []pipeline.ExportRow, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create csv file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for _, r := range rows {
		if err := w.Write(buildRow(r)); err != nil {
			return eris.Wrapf(err, "export: write csv row for cell %s", r.CellID)
		}
	}

	return w.Error()
}

// buildRow maps an ExportRow onto the shared column order.
func buildRow(r pipeline.ExportRow) []string {
	return []string{
		r.CellID,
		strconv.Itoa(r.Resolution),
		formatFloat(r.Score),
		r.Grade,
		strconv.FormatFloat(r.Confidence, 'f', 4, 64),
		formatFloat(r.Fabric),
		formatFloat(r.Resilience),
		formatFloat(r.Vitality),
		formatFloat(r.Connectivity),
		formatFloat(r.Prosperity),
		formatFloat(r.Environment),
		formatFloat(r.Culture),
		formatFloat(r.Population),
		formatFloat(r.Builtup),
		formatFloat(r.BuildingCount),
		formatFloat(r.RoadLengthKm),
		formatFloat(r.POICount),
		formatFloat(r.InformRisk),
		r.Version,
		r.ComputedAt.Format(time.RFC3339),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
