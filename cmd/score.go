package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom"

	"github.com/chrono-city/chronoscore/internal/adapter"
	"github.com/chrono-city/chronoscore/internal/chapter"
	"github.com/chrono-city/chronoscore/internal/chrono"
	"github.com/chrono-city/chronoscore/internal/indicator"
	"github.com/chrono-city/chronoscore/internal/pipeline"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single spatial unit",
	Long: `Score one hexagon cell, walking catchment, or bounding box.

Examples:
  # Score a hexagon from its attribute map
  score cell --id 8928308280fffff --resolution 9 --area 0.737 --input props.json

  # Score a 15-minute walking catchment from pre-aggregated indicators
  score catchment --lat 52.52 --lng 13.405 --minutes 15 --input indicators.json

  # Score a bounding box of tile attributes
  score bbox --bounds 13.38,52.50,13.43,52.54 --input props.json`,
}

var scoreCellCmd = &cobra.Command{
	Use:   "cell",
	Short: "Score one hexagon cell",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString("id")
		resolution, _ := cmd.Flags().GetInt("resolution")
		area, _ := cmd.Flags().GetFloat64("area")
		input, _ := cmd.Flags().GetString("input")

		props, err := loadTileProperties(input)
		if err != nil {
			return err
		}

		rep, err := pipeline.ScoreCell(id, resolution, area, props)
		if err != nil {
			return err
		}
		return outputReport(cmd, rep)
	},
}

var scoreCatchmentCmd = &cobra.Command{
	Use:   "catchment",
	Short: "Score one walking catchment",
	RunE: func(cmd *cobra.Command, _ []string) error {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")
		minutes, _ := cmd.Flags().GetInt("minutes")
		area, _ := cmd.Flags().GetFloat64("area")
		input, _ := cmd.Flags().GetString("input")

		raw, err := loadIndicators(input)
		if err != nil {
			return err
		}

		rep, err := pipeline.ScoreCatchment(lat, lng, minutes, area, raw)
		if err != nil {
			return err
		}
		return outputReport(cmd, rep)
	},
}

var scoreBBoxCmd = &cobra.Command{
	Use:   "bbox",
	Short: "Score one bounding box",
	RunE: func(cmd *cobra.Command, _ []string) error {
		boundsStr, _ := cmd.Flags().GetString("bounds")
		input, _ := cmd.Flags().GetString("input")

		bounds, err := parseBounds(boundsStr)
		if err != nil {
			return err
		}

		props, err := loadTileProperties(input)
		if err != nil {
			return err
		}

		rep, err := pipeline.ScoreBBox(bounds, props)
		if err != nil {
			return err
		}
		return outputReport(cmd, rep)
	},
}

func init() {
	scoreCellCmd.Flags().String("id", "", "cell identifier")
	scoreCellCmd.Flags().Int("resolution", 9, "grid resolution")
	scoreCellCmd.Flags().Float64("area", 0, "cell area in km2")
	scoreCellCmd.Flags().String("input", "", "JSON attribute map (default: stdin)")

	scoreCatchmentCmd.Flags().Float64("lat", 0, "origin latitude")
	scoreCatchmentCmd.Flags().Float64("lng", 0, "origin longitude")
	scoreCatchmentCmd.Flags().Int("minutes", 15, "walking time in minutes")
	scoreCatchmentCmd.Flags().Float64("area", 0, "catchment area in km2 (0 = estimate pedestrian shed)")
	scoreCatchmentCmd.Flags().String("input", "", "JSON indicator bundle (default: stdin)")

	scoreBBoxCmd.Flags().String("bounds", "", "west,south,east,north in degrees")
	scoreBBoxCmd.Flags().String("input", "", "JSON attribute map (default: stdin)")

	for _, c := range []*cobra.Command{scoreCellCmd, scoreCatchmentCmd, scoreBBoxCmd} {
		c.Flags().String("format", "table", "output format: table or json")
		c.Flags().String("output", "", "output file path (default: stdout)")
		scoreCmd.AddCommand(c)
	}
	rootCmd.AddCommand(scoreCmd)
}

// parseBounds parses "west,south,east,north" into a 2D bounds.
func parseBounds(s string) (*geom.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, eris.Errorf("score: --bounds expects west,south,east,north (got %q)", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &vals[i]); err != nil {
			return nil, eris.Wrapf(err, "score: parse bounds component %q", p)
		}
	}
	return geom.NewBounds(geom.XY).Set(vals[0], vals[1], vals[2], vals[3]), nil
}

func loadTileProperties(path string) (adapter.TileProperties, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var props adapter.TileProperties
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, eris.Wrap(err, "score: parse attribute map")
	}
	return props, nil
}

func loadIndicators(path string) (*indicator.Raw, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var raw indicator.Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "score: parse indicator bundle")
	}
	return &raw, nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, eris.Wrap(err, "score: read stdin")
	}
	data, err := os.ReadFile(path)
	return data, eris.Wrapf(err, "score: read input file %s", path)
}

func outputReport(cmd *cobra.Command, rep *chrono.Report) error {
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "score: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(rep), "score: encode report")
	case "table":
		printReport(w, rep)
		return nil
	default:
		return eris.Errorf("score: unsupported format %q", format)
	}
}

func printReport(w *os.File, rep *chrono.Report) {
	fmt.Fprintf(w, "Score:      %.1f / 100 (%s)\n", rep.Score, rep.Grade)
	fmt.Fprintf(w, "Confidence: %.2f\n", rep.Confidence)
	fmt.Fprintf(w, "Mode:       %s (%.3f km2)\n", rep.Context.Mode(), rep.Context.AreaKm2())
	fmt.Fprintf(w, "Version:    %s\n", rep.Version)

	fmt.Fprintln(w, "\nChapters:")
	for _, name := range chapter.Names {
		cs := rep.Chapters[name]
		fmt.Fprintf(w, "  %-14s %5.1f  %s  (conf %.2f)\n", name, cs.Score, cs.Grade, cs.Confidence)
	}

	fmt.Fprintln(w, "\nSummaries:")
	for _, name := range chapter.Names {
		fmt.Fprintf(w, "  %-14s %s\n", name, rep.Chapters[name].Summary)
	}
}
