package engine

import (
	"fmt"

	"github.com/vovakirdan/coopsim/internal/adoption"
	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/topology"
)

// Model pairs an interaction geometry with an adoption rule.
// Each simulation variant implements it and registers itself.
type Model interface {
	// ID returns a unique identifier for this variant (e.g., "wellmixed").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// NeedsSelection reports whether the variant uses the selection intensity k.
	NeedsSelection() bool

	// LegacySummary reports whether a finished run reports the legacy mean
	// as its summary statistic.
	LegacySummary() bool

	// Build constructs the geometry and rule for a validated parameter set.
	Build(p core.Params, m core.Matrix) (topology.Topology, adoption.Rule, error)
}

// RunContext carries everything a run mutates or reads. It is owned by a
// single engine for the lifetime of the run.
type RunContext struct {
	Model    Model
	Params   core.Params
	Matrix   core.Matrix
	Topology topology.Topology
	Rule     adoption.Rule
	Pop      *topology.Population
	Rng      core.Source
}

// NewRunContext validates p for model and assembles the run state.
// The population is allocated but not yet seeded; that happens when the
// engine initializes.
func NewRunContext(model Model, p core.Params, rng core.Source) (RunContext, error) {
	if model == nil {
		return RunContext{}, fmt.Errorf("engine: nil model: %w", core.ErrInvalidParameter)
	}
	if rng == nil {
		return RunContext{}, fmt.Errorf("engine: nil random source: %w", core.ErrRandomSource)
	}
	if err := p.Validate(model.NeedsSelection()); err != nil {
		return RunContext{}, fmt.Errorf("engine: %s: %w", model.ID(), err)
	}

	m, err := core.NewMatrix(p.Benefit, p.Cost)
	if err != nil {
		return RunContext{}, fmt.Errorf("engine: %s: %w", model.ID(), err)
	}

	topo, rule, err := model.Build(p, m)
	if err != nil {
		return RunContext{}, fmt.Errorf("engine: %s: %w", model.ID(), err)
	}

	return RunContext{
		Model:    model,
		Params:   p,
		Matrix:   m,
		Topology: topo,
		Rule:     rule,
		Pop:      topology.NewPopulationFor(topo),
		Rng:      rng,
	}, nil
}

// TotalSteps returns G times the population size.
func (rc RunContext) TotalSteps() int {
	return rc.Params.Generations * rc.Topology.Cells()
}
