package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/chrono-city/chronoscore/internal/pipeline"
)

func sampleRows() []pipeline.ExportRow {
	return []pipeline.ExportRow{
		{
			CellID: "cell-1", Resolution: 9,
			Score: 57.1, Grade: "C", Confidence: 0.0004,
			Fabric: 80.7, Resilience: 42, Vitality: 41.9, Connectivity: 80.8,
			Prosperity: 40.2, Environment: 52.1, Culture: 35,
			Population: 5000, Builtup: 0.4, BuildingCount: 800,
			RoadLengthKm: 12, POICount: 50, InformRisk: 3,
			Version:    "2.4.0",
			ComputedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			CellID: "cell-2", Resolution: 9,
			Score: 88.4, Grade: "A", Confidence: 0.91,
			Version:    "2.4.0",
			ComputedAt: time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, WriteCSV(sampleRows(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, columns, records[0])
	assert.Equal(t, "cell-1", records[1][0])
	assert.Equal(t, "57.1", records[1][2])
	assert.Equal(t, "C", records[1][3])
	assert.Equal(t, "2.4.0", records[1][18])
	assert.Equal(t, "2026-03-01T12:00:00Z", records[1][19])
	assert.Equal(t, "cell-2", records[2][0])
	assert.Equal(t, "A", records[2][3])
}

func TestWriteCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(nil, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.xlsx")
	require.NoError(t, WriteXLSX(sampleRows(), path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	sheet, ok := f.Sheet["scores"]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "cell_id", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "cell-1", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "57.1", sheet.Rows[1].Cells[2].String())
	assert.Equal(t, "A", sheet.Rows[2].Cells[3].String())
}
