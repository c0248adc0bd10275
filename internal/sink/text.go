// Package sink provides the results sinks a run writes to: flat text
// records on disk, an in-memory recorder, and a fan-out combinator.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
)

// Text writes the trace as "<step> <fraction>" lines with six decimals and
// grid snapshots as rows of space-separated 0/1 tokens.
type Text struct {
	trace     *bufio.Writer
	snapshots map[engine.SnapshotKind]*bufio.Writer
	closers   []io.Closer
}

// NewText creates a text sink writing the trace to w.
func NewText(w io.Writer) *Text {
	return &Text{
		trace:     bufio.NewWriter(w),
		snapshots: make(map[engine.SnapshotKind]*bufio.Writer),
	}
}

// WithSnapshot routes snapshots of the given kind to w.
// Snapshots of kinds without a writer are dropped.
func (t *Text) WithSnapshot(kind engine.SnapshotKind, w io.Writer) *Text {
	t.snapshots[kind] = bufio.NewWriter(w)
	return t
}

// Record writes one trace line.
func (t *Text) Record(step int, fraction float64) error {
	if _, err := fmt.Fprintf(t.trace, "%d %f\n", step, fraction); err != nil {
		return fmt.Errorf("sink: writing step %d: %v: %w", step, err, core.ErrResourceUnavailable)
	}
	return nil
}

// Snapshot writes rows, one line per grid row, and flushes immediately.
func (t *Text) Snapshot(kind engine.SnapshotKind, rows [][]core.Strategy) error {
	w, ok := t.snapshots[kind]
	if !ok {
		return nil
	}
	if _, err := io.WriteString(w, FormatRows(rows)); err != nil {
		return fmt.Errorf("sink: writing %s snapshot: %v: %w", kind, err, core.ErrResourceUnavailable)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("sink: flushing %s snapshot: %v: %w", kind, err, core.ErrResourceUnavailable)
	}
	return nil
}

// Flush writes any buffered trace lines.
func (t *Text) Flush() error {
	if err := t.trace.Flush(); err != nil {
		return fmt.Errorf("sink: flushing trace: %v: %w", err, core.ErrResourceUnavailable)
	}
	return nil
}

// Close flushes every writer and closes the files opened by Files.
func (t *Text) Close() error {
	err := t.Flush()
	for _, w := range t.snapshots {
		if ferr := w.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("sink: flushing snapshot: %v: %w", ferr, core.ErrResourceUnavailable)
		}
	}
	for _, c := range t.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("sink: closing output: %v: %w", cerr, core.ErrResourceUnavailable)
		}
	}
	t.closers = nil
	return err
}

// FormatRows renders grid rows as space-separated 0/1 tokens, one line per row.
func FormatRows(rows [][]core.Strategy) string {
	var sb strings.Builder
	for _, row := range rows {
		for i, s := range row {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(s.Int()))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var (
	_ engine.Sink         = (*Text)(nil)
	_ engine.SnapshotSink = (*Text)(nil)
)
