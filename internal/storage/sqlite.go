// Package storage provides a SQLite catalogue of finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
)

// Store manages the SQLite database connection for the run catalogue.
type Store struct {
	db *sqlx.DB
}

// Run is one catalogued run: its parameters and summary values.
type Run struct {
	ID                 string
	Variant            string
	Benefit            float64
	Cost               float64
	Selection          float64
	Size               int
	Generations        int
	InitialCooperation float64
	Seed               int64
	Steps              int
	FinalFraction      float64
	Summary            float64
	HasSummary         bool
	TailMean           float64
	CreatedAt          time.Time
}

// NewRun builds a catalogue entry from the parameters and result of a run.
// The ID is left empty and assigned on save.
func NewRun(p core.Params, res engine.Result) Run {
	return Run{
		Variant:            res.Model,
		Benefit:            p.Benefit,
		Cost:               p.Cost,
		Selection:          p.Selection,
		Size:               p.Size,
		Generations:        p.Generations,
		InitialCooperation: p.InitialCooperation,
		Seed:               p.Seed,
		Steps:              res.Steps,
		FinalFraction:      res.Final,
		Summary:            res.Summary,
		HasSummary:         res.HasSummary,
		TailMean:           res.TailMean,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %v: %w", dir, err, core.ErrResourceUnavailable)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %v: %w", err, core.ErrResourceUnavailable)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %v: %w", err, core.ErrResourceUnavailable)
	}

	// A single connection keeps the recorder transaction and plain queries
	// from contending for the database lock.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			b REAL NOT NULL,
			c REAL NOT NULL,
			k REAL NOT NULL DEFAULT 0,
			n INTEGER NOT NULL,
			generations INTEGER NOT NULL,
			f0 REAL NOT NULL,
			seed INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			final_fraction REAL NOT NULL,
			summary REAL,
			tail_mean REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant, created_at DESC);

		CREATE TABLE IF NOT EXISTS trace (
			run_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			fraction REAL NOT NULL,
			PRIMARY KEY (run_id, step)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// execer is satisfied by both *sqlx.DB and *sqlx.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertRun(x execer, run Run) error {
	var summary sql.NullFloat64
	if run.HasSummary {
		summary = sql.NullFloat64{Float64: run.Summary, Valid: true}
	}
	_, err := x.Exec(
		`INSERT INTO runs
		 (id, variant, b, c, k, n, generations, f0, seed, steps, final_fraction, summary, tail_mean)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Variant,
		run.Benefit,
		run.Cost,
		run.Selection,
		run.Size,
		run.Generations,
		run.InitialCooperation,
		run.Seed,
		run.Steps,
		run.FinalFraction,
		summary,
		run.TailMean,
	)
	return err
}

// SaveRun records a run without its trace.
// Returns the ID assigned to the run.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := insertRun(s.db, run); err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// runRow is the database form of a Run.
type runRow struct {
	ID                 string          `db:"id"`
	Variant            string          `db:"variant"`
	Benefit            float64         `db:"b"`
	Cost               float64         `db:"c"`
	Selection          float64         `db:"k"`
	Size               int             `db:"n"`
	Generations        int             `db:"generations"`
	InitialCooperation float64         `db:"f0"`
	Seed               int64           `db:"seed"`
	Steps              int             `db:"steps"`
	FinalFraction      float64         `db:"final_fraction"`
	Summary            sql.NullFloat64 `db:"summary"`
	TailMean           float64         `db:"tail_mean"`
	CreatedAt          any             `db:"created_at"`
}

func (r runRow) run() Run {
	return Run{
		ID:                 r.ID,
		Variant:            r.Variant,
		Benefit:            r.Benefit,
		Cost:               r.Cost,
		Selection:          r.Selection,
		Size:               r.Size,
		Generations:        r.Generations,
		InitialCooperation: r.InitialCooperation,
		Seed:               r.Seed,
		Steps:              r.Steps,
		FinalFraction:      r.FinalFraction,
		Summary:            r.Summary.Float64,
		HasSummary:         r.Summary.Valid,
		TailMean:           r.TailMean,
		CreatedAt:          parseTime(r.CreatedAt),
	}
}

const runColumns = `id, variant, b, c, k, n, generations, f0, seed, steps,
		        final_fraction, summary, tail_mean, created_at`

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty variant matches every variant.
func (s *Store) RecentRuns(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []runRow
	err := s.db.Select(&rows,
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR variant = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}

	runs := make([]Run, len(rows))
	for i, r := range rows {
		runs[i] = r.run()
	}
	return runs, nil
}

// RunByID retrieves a run by its ID. Returns nil if no such run exists.
func (s *Store) RunByID(id string) (*Run, error) {
	var row runRow
	err := s.db.Get(&row, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	r := row.run()
	return &r, nil
}

// RunTrace retrieves the stored trace of a run ordered by step.
// Runs saved without a trace return an empty trace.
func (s *Store) RunTrace(id string) (engine.Trace, error) {
	var trace engine.Trace
	err := s.db.Select(&trace,
		`SELECT step, fraction FROM trace WHERE run_id = ? ORDER BY step`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query trace: %w", err)
	}
	return trace, nil
}

// VariantStats contains aggregated statistics for one variant.
type VariantStats struct {
	Variant   string
	Runs      int
	MeanFinal float64
	MinFinal  float64
	MaxFinal  float64
	LastRun   time.Time
}

// VariantStats retrieves statistics for every variant with stored runs.
func (s *Store) VariantStats() (map[string]*VariantStats, error) {
	var rows []struct {
		Variant   string  `db:"variant"`
		Runs      int     `db:"runs"`
		MeanFinal float64 `db:"mean_final"`
		MinFinal  float64 `db:"min_final"`
		MaxFinal  float64 `db:"max_final"`
		LastRun   any     `db:"last_run"`
	}
	err := s.db.Select(&rows,
		`SELECT variant, COUNT(*) AS runs, AVG(final_fraction) AS mean_final,
		        MIN(final_fraction) AS min_final, MAX(final_fraction) AS max_final,
		        MAX(created_at) AS last_run
		 FROM runs
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}

	stats := make(map[string]*VariantStats, len(rows))
	for _, r := range rows {
		stats[r.Variant] = &VariantStats{
			Variant:   r.Variant,
			Runs:      r.Runs,
			MeanFinal: r.MeanFinal,
			MinFinal:  r.MinFinal,
			MaxFinal:  r.MaxFinal,
			LastRun:   parseTime(r.LastRun),
		}
	}
	return stats, nil
}

// ClearRuns deletes the runs of the given variant and their traces.
// An empty variant clears the whole catalogue.
func (s *Store) ClearRuns(variant string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM trace WHERE run_id IN (SELECT id FROM runs WHERE ? = '' OR variant = ?)`,
		variant, variant,
	); err != nil {
		return fmt.Errorf("storage: cannot clear traces: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM runs WHERE ? = '' OR variant = ?`, variant, variant); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
