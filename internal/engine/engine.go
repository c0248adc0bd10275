// Package engine runs the evolutionary update loop shared by every variant:
// sample an interaction, compute the adoption probability, maybe copy the
// model's strategy, and record the cooperation fraction.
package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/topology"
)

// Result summarises a finished run.
type Result struct {
	Model       string
	Steps       int     // update steps performed, excluding step 0
	Final       float64 // cooperation fraction after the last step
	Cooperators int     // cooperators after the last step
	Adoptions   int     // accepted adoption tests
	Flips       int     // adoptions that changed the focal agent's strategy
	Fixated     bool    // every agent plays the same strategy at the end

	// Summary is the legacy mean, set only for variants that report one.
	Summary    float64
	HasSummary bool

	// TailMean is the mean fraction over the last LegacyWindow samples.
	TailMean float64

	// Trace is nil when trace retention is disabled.
	Trace Trace
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine logs to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithProgress registers a callback invoked after each completed generation.
func WithProgress(fn func(step, total int)) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// WithTraceRetention controls whether Result.Trace is populated.
// Sinks always receive every record regardless.
func WithTraceRetention(keep bool) Option {
	return func(e *Engine) {
		e.keepTrace = keep
	}
}

// Engine drives one run. It is single-use: Run may be called once.
type Engine struct {
	rc        RunContext
	sink      Sink
	logger    *log.Logger
	progress  func(step, total int)
	keepTrace bool

	state State
	trace Trace
	stats *tally
}

// New creates an engine for rc writing to sink. A nil sink discards records.
func New(rc RunContext, sink Sink, opts ...Option) *Engine {
	if sink == nil {
		sink = Discard
	}
	e := &Engine{
		rc:        rc,
		sink:      sink,
		logger:    log.New(io.Discard),
		keepTrace: true,
		state:     StateInitializing,
		stats:     newTally(LegacyWindow),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current lifecycle stage.
func (e *Engine) State() State {
	return e.state
}

// Population exposes the population being evolved.
func (e *Engine) Population() *topology.Population {
	return e.rc.Pop
}

// Run executes the whole run. Any sink or random source failure aborts it
// immediately. Cancellation is checked between steps; a cancelled run returns
// ctx.Err() together with the partial result.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	if e.state != StateInitializing {
		return Result{}, fmt.Errorf("engine: run already %s", e.state)
	}

	if err := e.initialize(); err != nil {
		e.state = StateFinished
		return Result{}, err
	}

	e.state = StateRunning
	res, err := e.evolve(ctx)
	e.state = StateFinished
	if err != nil {
		return res, err
	}

	if err := e.snapshot(SnapshotFinal); err != nil {
		return res, err
	}

	e.logger.Info("run finished",
		"model", res.Model,
		"steps", res.Steps,
		"final", fmt.Sprintf("%.6f", res.Final),
		"adoptions", res.Adoptions,
		"fixated", res.Fixated,
	)
	return res, nil
}

// initialize seeds the population, then emits step 0 and the initial snapshot.
func (e *Engine) initialize() error {
	rc := e.rc
	if rc.Pop == nil || rc.Topology == nil || rc.Rule == nil || rc.Rng == nil {
		return fmt.Errorf("engine: incomplete run context: %w", core.ErrInvalidParameter)
	}

	f0 := rc.Params.InitialCooperation
	for i := 0; i < rc.Pop.Len(); i++ {
		u, err := core.Uniform(rc.Rng)
		if err != nil {
			return fmt.Errorf("engine: seeding population: %w", err)
		}
		s := core.Defector
		if u < f0 {
			s = core.Cooperator
		}
		rc.Pop.Set(i, s)
	}

	e.logger.Debug("population seeded",
		"model", rc.Model.ID(),
		"agents", rc.Pop.Len(),
		"cooperators", rc.Pop.Cooperators(),
	)

	if err := e.snapshot(SnapshotInitial); err != nil {
		return err
	}
	return e.record(0, rc.Pop.Fraction())
}

// evolve performs every update step.
func (e *Engine) evolve(ctx context.Context) (Result, error) {
	rc := e.rc
	total := rc.TotalSteps()
	perGen := rc.Topology.Cells()

	res := Result{Model: rc.Model.ID()}

	e.logger.Info("run started",
		"model", rc.Model.ID(),
		"topology", rc.Topology.Name(),
		"rule", rc.Rule.Name(),
		"steps", total,
	)

	for step := 1; step <= total; step++ {
		select {
		case <-ctx.Done():
			e.finish(&res)
			return res, ctx.Err()
		default:
		}

		in, err := rc.Topology.Sample(rc.Pop, rc.Matrix, rc.Rng)
		if err != nil {
			e.finish(&res)
			return res, fmt.Errorf("engine: step %d: %w", step, err)
		}

		w := rc.Rule.Probability(in.FocalPayoff, in.ModelPayoff)
		u, err := core.Uniform(rc.Rng)
		if err != nil {
			e.finish(&res)
			return res, fmt.Errorf("engine: step %d: %w", step, err)
		}

		if rc.Rule.Accept(w, u) {
			res.Adoptions++
			adopted := rc.Pop.Get(in.Model)
			if rc.Pop.Get(in.Focal) != adopted {
				res.Flips++
			}
			rc.Pop.Set(in.Focal, adopted)
		}

		res.Steps = step
		if err := e.record(step, rc.Pop.Fraction()); err != nil {
			e.finish(&res)
			return res, err
		}

		if step%perGen == 0 {
			e.logger.Debug("generation complete",
				"generation", step/perGen,
				"fraction", fmt.Sprintf("%.6f", rc.Pop.Fraction()),
			)
			if e.progress != nil {
				e.progress(step, total)
			}
		}
	}

	e.finish(&res)
	return res, nil
}

// finish fills the summary fields of res from the current state.
func (e *Engine) finish(res *Result) {
	res.Final = e.rc.Pop.Fraction()
	res.Cooperators = e.rc.Pop.Cooperators()
	res.Fixated = e.rc.Pop.Homogeneous()
	res.TailMean = e.stats.tailMean()
	if e.rc.Model.LegacySummary() {
		res.Summary = e.stats.legacyMean()
		res.HasSummary = true
	}
	if e.keepTrace {
		res.Trace = e.trace
	}
}

// record appends one sample to the trace and forwards it to the sink.
func (e *Engine) record(step int, fraction float64) error {
	e.stats.add(step, fraction)
	if e.keepTrace {
		e.trace = append(e.trace, Sample{Step: step, Fraction: fraction})
	}
	if err := e.sink.Record(step, fraction); err != nil {
		return fmt.Errorf("engine: recording step %d: %w", step, err)
	}
	return nil
}

// snapshot writes the grid to the sink for lattice geometries only.
func (e *Engine) snapshot(kind SnapshotKind) error {
	if _, ok := e.rc.Topology.(topology.Lattice); !ok {
		return nil
	}
	ss, ok := e.sink.(SnapshotSink)
	if !ok {
		return nil
	}
	if err := ss.Snapshot(kind, e.rc.Pop.Rows()); err != nil {
		return fmt.Errorf("engine: writing %s snapshot: %w", kind, err)
	}
	return nil
}
