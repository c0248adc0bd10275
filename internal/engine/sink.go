package engine

import "github.com/vovakirdan/coopsim/internal/core"

// Sink receives the cooperation trace, one record per step including step 0.
// Records arrive in step order and each call completes before the next step
// is computed.
type Sink interface {
	Record(step int, fraction float64) error
}

// SnapshotKind identifies which grid snapshot is being written.
type SnapshotKind string

const (
	SnapshotInitial SnapshotKind = "initial"
	SnapshotFinal   SnapshotKind = "final"
)

// SnapshotSink is implemented by sinks that also accept whole-grid snapshots.
// The engine only emits snapshots for lattice geometries.
type SnapshotSink interface {
	Snapshot(kind SnapshotKind, rows [][]core.Strategy) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(step int, fraction float64) error

// Record calls f.
func (f SinkFunc) Record(step int, fraction float64) error {
	return f(step, fraction)
}

// Discard is a Sink that drops every record.
var Discard Sink = SinkFunc(func(int, float64) error { return nil })
