package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrono-city/chronoscore/internal/pipeline"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestCreateAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "berlin.ndjson", "cell", "2.4.0")
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, "berlin.ndjson", run.Source)
	assert.Equal(t, "cell", run.Mode)
	assert.Equal(t, "2.4.0", run.Version)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, 0, got.CellCount)
	assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Second)
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSaveAndListScores(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "stdin", "cell", "2.4.0")
	require.NoError(t, err)

	computed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []pipeline.ExportRow{
		{CellID: "b", Resolution: 9, Score: 72.5, Grade: "B", Confidence: 0.61,
			Fabric: 80, Population: 4200, Version: "2.4.0", ComputedAt: computed},
		{CellID: "a", Resolution: 9, Score: 41.3, Grade: "D", Confidence: 0.02,
			Culture: 35, Version: "2.4.0", ComputedAt: computed},
	}
	require.NoError(t, s.SaveScores(ctx, run.ID, rows))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CellCount)

	scores, err := s.ListScores(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	// ordered by cell id
	assert.Equal(t, "a", scores[0].CellID)
	assert.Equal(t, "b", scores[1].CellID)
	assert.InDelta(t, 72.5, scores[1].Score, 1e-9)
	assert.Equal(t, "B", scores[1].Grade)
	assert.InDelta(t, 80, scores[1].Fabric, 1e-9)
	assert.InDelta(t, 4200, scores[1].Population, 1e-9)
	assert.WithinDuration(t, computed, scores[1].ComputedAt, time.Second)
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateRun(ctx, "a.ndjson", "cell", "2.4.0")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "b.ndjson", "cell", "2.4.0")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "c.ndjson", "catchment", "2.4.0")
	require.NoError(t, err)

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cells, err := s.ListRuns(ctx, RunFilter{Mode: "cell"})
	require.NoError(t, err)
	require.Len(t, cells, 2)
	for _, r := range cells {
		assert.Equal(t, "cell", r.Mode)
	}

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
