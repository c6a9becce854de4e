package store

import (
	"context"
	"time"

	"github.com/chrono-city/chronoscore/internal/pipeline"
)

// Run is one recorded batch scoring run.
type Run struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Mode      string    `json:"mode"`
	CellCount int       `json:"cell_count"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Mode   string `json:"mode,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for scoring results.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, source, mode, version string) (*Run, error)
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	// Scores
	SaveScores(ctx context.Context, runID string, rows []pipeline.ExportRow) error
	ListScores(ctx context.Context, runID string) ([]pipeline.ExportRow, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
