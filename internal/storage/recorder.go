package storage

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
)

// Recorder is an engine sink that stores the trace of one run.
// Every record is written inside a single transaction; Commit adds the run
// row and makes the whole run visible at once, Rollback discards it.
type Recorder struct {
	id   string
	tx   *sqlx.Tx
	stmt *sqlx.Stmt
	done bool
}

// NewRecorder starts a transaction for a new run.
// The store cannot serve other queries until the recorder is finished.
func (s *Store) NewRecorder() (*Recorder, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot begin trace: %v: %w", err, core.ErrResourceUnavailable)
	}

	stmt, err := tx.Preparex(`INSERT INTO trace (run_id, step, fraction) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("storage: cannot prepare trace insert: %v: %w", err, core.ErrResourceUnavailable)
	}

	return &Recorder{id: uuid.NewString(), tx: tx, stmt: stmt}, nil
}

// ID returns the run ID the trace is stored under.
func (r *Recorder) ID() string {
	return r.id
}

// Record stores one trace sample.
func (r *Recorder) Record(step int, fraction float64) error {
	if r.done {
		return fmt.Errorf("storage: recorder for run %s already finished: %w", r.id, core.ErrResourceUnavailable)
	}
	if _, err := r.stmt.Exec(r.id, step, fraction); err != nil {
		return fmt.Errorf("storage: cannot store step %d: %v: %w", step, err, core.ErrResourceUnavailable)
	}
	return nil
}

// Commit stores run under the recorder's ID and commits the transaction.
// Returns the ID of the run.
func (r *Recorder) Commit(run Run) (string, error) {
	if r.done {
		return "", fmt.Errorf("storage: recorder for run %s already finished", r.id)
	}
	r.done = true
	r.stmt.Close()

	run.ID = r.id
	if err := insertRun(r.tx, run); err != nil {
		r.tx.Rollback()
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	if err := r.tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return r.id, nil
}

// Rollback discards everything recorded so far. It is a no-op after Commit.
func (r *Recorder) Rollback() error {
	if r.done {
		return nil
	}
	r.done = true
	r.stmt.Close()
	if err := r.tx.Rollback(); err != nil {
		return fmt.Errorf("storage: cannot roll back run: %w", err)
	}
	return nil
}

var _ engine.Sink = (*Recorder)(nil)
