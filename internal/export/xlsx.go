package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/chrono-city/chronoscore/internal/pipeline"
)

// WriteXLSX writes score rows as a single-sheet workbook with the same
// column order as the CSV writer.
func WriteXLSX(rows []pipeline.ExportRow, outputPath string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("scores")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().SetString(col)
	}

	for _, r := range rows {
		row := sheet.AddRow()
		for _, cell := range buildRow(r) {
			row.AddCell().SetString(cell)
		}
	}

	if err := f.Save(outputPath); err != nil {
		return eris.Wrap(err, "export: save xlsx file")
	}
	return nil
}
