package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
)

// Names holds the output file names of one run. Initial and Final are
// empty for well-mixed runs, which write no snapshots.
type Names struct {
	Trace   string
	Initial string
	Final   string
}

// FileNames returns the file names for a run. Lattice runs embed b and c
// with two decimals so sweeps over parameters do not overwrite each other.
func FileNames(lattice bool, b, c float64) Names {
	if !lattice {
		return Names{Trace: "FreqCoop.txt"}
	}
	return Names{
		Trace:   fmt.Sprintf("COOP_FREQ_B_%.2f__C_%.2f.txt", b, c),
		Initial: fmt.Sprintf("INITIAL_MATRIX_B_%.2f__C_%.2f.txt", b, c),
		Final:   fmt.Sprintf("FINAL_MATRIX_B_%.2f__C_%.2f.txt", b, c),
	}
}

// Files creates dir if needed and opens a Text sink over the named files.
// Files are truncated. The caller must Close the sink.
func Files(dir string, names Names) (*Text, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sink: cannot create directory %s: %v: %w", dir, err, core.ErrResourceUnavailable)
	}

	open := func(name string) (*os.File, error) {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("sink: cannot open %s: %v: %w", path, err, core.ErrResourceUnavailable)
		}
		return f, nil
	}

	traceFile, err := open(names.Trace)
	if err != nil {
		return nil, err
	}
	t := NewText(traceFile)
	t.closers = append(t.closers, traceFile)

	for kind, name := range map[engine.SnapshotKind]string{
		engine.SnapshotInitial: names.Initial,
		engine.SnapshotFinal:   names.Final,
	} {
		if name == "" {
			continue
		}
		f, err := open(name)
		if err != nil {
			t.Close()
			return nil, err
		}
		t.WithSnapshot(kind, f)
		t.closers = append(t.closers, f)
	}

	return t, nil
}
