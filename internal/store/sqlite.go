package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/chrono-city/chronoscore/internal/pipeline"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	mode       TEXT NOT NULL,
	cell_count INTEGER NOT NULL DEFAULT 0,
	version    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS cell_scores (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	cell_id        TEXT NOT NULL,
	resolution     INTEGER NOT NULL,
	score          REAL NOT NULL,
	grade          TEXT NOT NULL,
	confidence     REAL NOT NULL,
	fabric         REAL NOT NULL,
	resilience     REAL NOT NULL,
	vitality       REAL NOT NULL,
	connectivity   REAL NOT NULL,
	prosperity     REAL NOT NULL,
	environment    REAL NOT NULL,
	culture        REAL NOT NULL,
	population     REAL NOT NULL DEFAULT 0,
	builtup        REAL NOT NULL DEFAULT 0,
	building_count REAL NOT NULL DEFAULT 0,
	road_length_km REAL NOT NULL DEFAULT 0,
	poi_count      REAL NOT NULL DEFAULT 0,
	inform_risk    REAL NOT NULL DEFAULT 0,
	version        TEXT NOT NULL,
	computed_at    DATETIME NOT NULL,
	PRIMARY KEY (run_id, cell_id)
);

CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
CREATE INDEX IF NOT EXISTS idx_cell_scores_run_id ON cell_scores(run_id);
CREATE INDEX IF NOT EXISTS idx_cell_scores_grade ON cell_scores(run_id, grade);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, source, mode, version string) (*Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, mode, version, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, source, mode, version, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &Run{
		ID:        id,
		Source:    source,
		Mode:      mode,
		Version:   version,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, mode, cell_count, version, created_at FROM runs WHERE id = ?`,
		runID,
	)

	var r Run
	err := row.Scan(&r.ID, &r.Source, &r.Mode, &r.CellCount, &r.Version, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("run not found: %s", runID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}
	return &r, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := `SELECT id, source, mode, cell_count, version, created_at FROM runs WHERE 1=1`
	var args []any

	if filter.Mode != "" {
		query += ` AND mode = ?`
		args = append(args, filter.Mode)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.Mode, &r.CellCount, &r.Version, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

func (s *SQLiteStore) SaveScores(ctx context.Context, runID string, rows []pipeline.ExportRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cell_scores (
			run_id, cell_id, resolution, score, grade, confidence,
			fabric, resilience, vitality, connectivity, prosperity, environment, culture,
			population, builtup, building_count, road_length_km, poi_count, inform_risk,
			version, computed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx,
			runID, r.CellID, r.Resolution, r.Score, r.Grade, r.Confidence,
			r.Fabric, r.Resilience, r.Vitality, r.Connectivity, r.Prosperity, r.Environment, r.Culture,
			r.Population, r.Builtup, r.BuildingCount, r.RoadLengthKm, r.POICount, r.InformRisk,
			r.Version, r.ComputedAt,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert score for cell %s", r.CellID)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE runs SET cell_count = cell_count + ? WHERE id = ?`,
		len(rows), runID,
	); err != nil {
		return eris.Wrapf(err, "sqlite: update run cell count %s", runID)
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit scores")
}

func (s *SQLiteStore) ListScores(ctx context.Context, runID string) ([]pipeline.ExportRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cell_id, resolution, score, grade, confidence,
			fabric, resilience, vitality, connectivity, prosperity, environment, culture,
			population, builtup, building_count, road_length_km, poi_count, inform_risk,
			version, computed_at
		 FROM cell_scores WHERE run_id = ? ORDER BY cell_id`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list scores")
	}
	defer rows.Close()

	var out []pipeline.ExportRow
	for rows.Next() {
		var r pipeline.ExportRow
		err := rows.Scan(
			&r.CellID, &r.Resolution, &r.Score, &r.Grade, &r.Confidence,
			&r.Fabric, &r.Resilience, &r.Vitality, &r.Connectivity, &r.Prosperity, &r.Environment, &r.Culture,
			&r.Population, &r.Builtup, &r.BuildingCount, &r.RoadLengthKm, &r.POICount, &r.InformRisk,
			&r.Version, &r.ComputedAt,
		)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan score")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list scores iterate")
}
