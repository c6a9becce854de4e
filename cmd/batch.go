package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrono-city/chronoscore/internal/adapter"
	"github.com/chrono-city/chronoscore/internal/chrono"
	"github.com/chrono-city/chronoscore/internal/export"
	"github.com/chrono-city/chronoscore/internal/pipeline"
	"github.com/chrono-city/chronoscore/internal/store"
)

// batchLine is one NDJSON record of the batch input.
type batchLine struct {
	CellID     string                 `json:"cell_id"`
	Resolution int                    `json:"resolution"`
	AreaKm2    float64                `json:"area_km2"`
	Properties adapter.TileProperties `json:"properties"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a batch of hexagon cells",
	Long: `Score many cells from an NDJSON file, one cell per line:

  {"cell_id":"8928308280fffff","resolution":9,"area_km2":0.737,"properties":{"population":5000,...}}

Examples:
  # Score a city extract to CSV
  batch --input berlin.ndjson --output scores.csv

  # Write a workbook with 8 workers
  batch --input berlin.ndjson --output scores.xlsx --format xlsx --workers 8

  # Persist a run to the results database
  batch --input berlin.ndjson --format sqlite`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("input", "", "NDJSON input file (required)")
	f.String("output", "scores.csv", "output file path (csv and xlsx formats)")
	f.String("format", "csv", "output format: csv, xlsx or sqlite")
	f.Int("workers", 0, "concurrent scoring workers (default from config)")
	batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = cfg.Batch.Workers
	}

	if format != "csv" && format != "xlsx" && format != "sqlite" {
		return eris.Errorf("batch: --format must be csv, xlsx or sqlite (got %q)", format)
	}

	inputs, err := readBatchInput(inputPath)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Println("No cells in input.")
		return nil
	}

	log := zap.L().With(zap.String("command", "batch"))
	log.Info("starting batch scoring",
		zap.Int("cells", len(inputs)),
		zap.Int("workers", workers),
	)

	reports, err := pipeline.ScoreBatch(ctx, inputs, workers)
	if err != nil {
		return eris.Wrap(err, "batch: score")
	}

	rows := make([]pipeline.ExportRow, len(reports))
	for i, rep := range reports {
		rows[i] = pipeline.FlattenReport(rep, inputs[i].Props)
	}

	switch format {
	case "csv":
		if err := export.WriteCSV(rows, outputPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %d scores to %s\n", len(rows), outputPath)
	case "xlsx":
		if err := export.WriteXLSX(rows, outputPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %d scores to %s\n", len(rows), outputPath)
	case "sqlite":
		run, err := saveBatchRun(ctx, inputPath, rows)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %d scores to run %s in %s\n", len(rows), run.ID, cfg.Store.Path)
	}

	printBatchSummary(reports)
	return nil
}

func readBatchInput(path string) ([]pipeline.CellInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: open input file %s", path)
	}
	defer f.Close()

	var inputs []pipeline.CellInput
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec batchLine
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, eris.Wrapf(err, "batch: parse line %d", lineNo)
		}
		inputs = append(inputs, pipeline.CellInput{
			CellID:     rec.CellID,
			Resolution: rec.Resolution,
			AreaKm2:    rec.AreaKm2,
			Props:      rec.Properties,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "batch: read input file %s", path)
	}
	return inputs, nil
}

func saveBatchRun(ctx context.Context, source string, rows []pipeline.ExportRow) (*store.Run, error) {
	s, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}

	run, err := s.CreateRun(ctx, source, "cell", chrono.Version)
	if err != nil {
		return nil, err
	}
	if err := s.SaveScores(ctx, run.ID, rows); err != nil {
		return nil, err
	}
	return run, nil
}

func printBatchSummary(reports []*chrono.Report) {
	if len(reports) == 0 {
		return
	}
	var sum, max float64
	min := 101.0
	grades := map[string]int{}
	for _, r := range reports {
		sum += r.Score
		if r.Score > max {
			max = r.Score
		}
		if r.Score < min {
			min = r.Score
		}
		grades[r.Grade]++
	}
	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Cells scored:  %d\n", len(reports))
	fmt.Printf("Score range:   %.1f to %.1f\n", min, max)
	fmt.Printf("Average score: %.1f\n", sum/float64(len(reports)))
	fmt.Printf("Grades:        ")
	for _, g := range []string{"A", "B", "C", "D", "F"} {
		if grades[g] > 0 {
			fmt.Printf("%s=%d ", g, grades[g])
		}
	}
	fmt.Println()
}
