package sink

import (
	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
)

// Memory keeps every record and snapshot in memory.
type Memory struct {
	Samples   engine.Trace
	Snapshots map[engine.SnapshotKind][][]core.Strategy
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{Snapshots: make(map[engine.SnapshotKind][][]core.Strategy)}
}

// Record appends a sample.
func (m *Memory) Record(step int, fraction float64) error {
	m.Samples = append(m.Samples, engine.Sample{Step: step, Fraction: fraction})
	return nil
}

// Snapshot stores rows under kind, replacing any earlier snapshot of that kind.
func (m *Memory) Snapshot(kind engine.SnapshotKind, rows [][]core.Strategy) error {
	m.Snapshots[kind] = rows
	return nil
}

// Multi fans every record and snapshot out to several sinks in order.
// The first error stops the fan-out and is returned.
type Multi []engine.Sink

// Record forwards to every sink.
func (m Multi) Record(step int, fraction float64) error {
	for _, s := range m {
		if err := s.Record(step, fraction); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot forwards to every sink that accepts snapshots.
func (m Multi) Snapshot(kind engine.SnapshotKind, rows [][]core.Strategy) error {
	for _, s := range m {
		ss, ok := s.(engine.SnapshotSink)
		if !ok {
			continue
		}
		if err := ss.Snapshot(kind, rows); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ engine.SnapshotSink = (*Memory)(nil)
	_ engine.SnapshotSink = Multi(nil)
)
