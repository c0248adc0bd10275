// Package wellmixed registers the non-spatial variant: agents are paired
// uniformly at random and adopt with the clamped linear rule.
package wellmixed

import (
	"github.com/vovakirdan/coopsim/internal/adoption"
	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
	"github.com/vovakirdan/coopsim/internal/registry"
	"github.com/vovakirdan/coopsim/internal/topology"
)

// ID is the registry identifier of this variant.
const ID = "wellmixed"

// Model implements engine.Model for the well-mixed population.
type Model struct{}

// New creates the well-mixed variant.
func New() *Model {
	return &Model{}
}

func init() {
	registry.Register(ID, func() engine.Model {
		return New()
	})
}

// ID returns the variant identifier.
func (m *Model) ID() string { return ID }

// Title returns the display name.
func (m *Model) Title() string { return "Well-mixed population" }

// NeedsSelection is false: the linear rule has no noise parameter.
func (m *Model) NeedsSelection() bool { return false }

// LegacySummary is false: well-mixed runs only produce a trace.
func (m *Model) LegacySummary() bool { return false }

// Build returns a uniform sampler over p.Size agents and the linear rule
// normalised by mat.Range().
func (m *Model) Build(p core.Params, mat core.Matrix) (topology.Topology, adoption.Rule, error) {
	rule, err := adoption.NewClampedLinear(mat)
	if err != nil {
		return nil, nil, err
	}
	return topology.NewUniformRandom(p.Size), rule, nil
}
