// Package pipeline wires the adapters and the scoring engine into the
// entry points the CLI and the HTTP server call: single-unit scoring in
// each context mode, plus a bounded-concurrency batch runner.
package pipeline

import (
	"context"
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chrono-city/chronoscore/internal/adapter"
	"github.com/chrono-city/chronoscore/internal/chrono"
	"github.com/chrono-city/chronoscore/internal/indicator"
)

// walkSpeedMPerMin is the standard pedestrian shed assumption.
const walkSpeedMPerMin = 80.0

// ScoreCell scores one pre-aggregated hexagon.
func ScoreCell(cellID string, resolution int, areaKm2 float64, props adapter.TileProperties) (*chrono.Report, error) {
	if cellID == "" {
		return nil, eris.New("pipeline: cell id is required")
	}
	if areaKm2 <= 0 {
		return nil, eris.New("pipeline: cell area must be positive")
	}
	raw := adapter.FromTile(props, areaKm2)
	return chrono.ComputeChronoScore(raw, chrono.NewCellContext(cellID, resolution, areaKm2)), nil
}

// ScoreCatchment scores a walking catchment. When the caller does not
// know the catchment area, a circular pedestrian shed at 80 m/min is
// assumed.
func ScoreCatchment(lat, lng float64, minutes int, areaKm2 float64, raw *indicator.Raw) (*chrono.Report, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, eris.New("pipeline: origin coordinates out of range")
	}
	if minutes <= 0 {
		return nil, eris.New("pipeline: catchment minutes must be positive")
	}
	if areaKm2 <= 0 {
		radiusM := float64(minutes) * walkSpeedMPerMin
		areaKm2 = math.Pi * radiusM * radiusM / 1e6
	}
	bundle := adapter.FromCatchment(raw)
	return chrono.ComputeChronoScore(bundle, chrono.NewCatchmentContext(lat, lng, minutes, areaKm2)), nil
}

// ScoreBBox scores an arbitrary bounding box of tile attributes. The box
// area uses a planar approximation good enough below city scale.
func ScoreBBox(bounds *geom.Bounds, props adapter.TileProperties) (*chrono.Report, error) {
	if bounds == nil || bounds.IsEmpty() {
		return nil, eris.New("pipeline: bounding box is required")
	}
	west, south := bounds.Min(0), bounds.Min(1)
	east, north := bounds.Max(0), bounds.Max(1)
	if east <= west || north <= south {
		return nil, eris.New("pipeline: bounding box is degenerate")
	}
	if south < -90 || north > 90 || west < -180 || east > 180 {
		return nil, eris.New("pipeline: bounding box out of range")
	}
	areaKm2 := bboxAreaKm2(west, south, east, north)
	raw := adapter.FromTile(props, areaKm2)
	return chrono.ComputeChronoScore(raw, chrono.NewBBoxContext(west, south, east, north, areaKm2)), nil
}

// bboxAreaKm2 approximates the box area on a sphere, shrinking the
// longitude span by the cosine of the mid latitude.
func bboxAreaKm2(west, south, east, north float64) float64 {
	const kmPerDegree = 111.32
	midLat := (south + north) / 2 * math.Pi / 180
	widthKm := (east - west) * kmPerDegree * math.Cos(midLat)
	heightKm := (north - south) * kmPerDegree
	return widthKm * heightKm
}

// CellInput is one unit of work for the batch runner.
type CellInput struct {
	CellID     string
	Resolution int
	AreaKm2    float64
	Props      adapter.TileProperties
}

// ScoreBatch scores many cells concurrently. Output order matches input
// order regardless of which worker finished first. A single bad cell
// fails the whole batch; partial output is never returned.
func ScoreBatch(ctx context.Context, inputs []CellInput, workers int) ([]*chrono.Report, error) {
	if workers <= 0 {
		workers = 4
	}
	reports := make([]*chrono.Report, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep, err := ScoreCell(in.CellID, in.Resolution, in.AreaKm2, in.Props)
			if err != nil {
				return eris.Wrapf(err, "pipeline: score cell %s", in.CellID)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("batch scoring complete",
		zap.Int("cells", len(inputs)),
		zap.Int("workers", workers))
	return reports, nil
}
