// Package spatial registers the lattice variant: agents sit on a toroidal
// grid, play their four nearest neighbors, and imitate a neighbor with the
// Fermi-Dirac rule.
package spatial

import (
	"github.com/vovakirdan/coopsim/internal/adoption"
	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
	"github.com/vovakirdan/coopsim/internal/registry"
	"github.com/vovakirdan/coopsim/internal/topology"
)

// ID is the registry identifier of this variant.
const ID = "spatial"

// Model implements engine.Model for the toroidal lattice.
type Model struct{}

// New creates the spatial variant.
func New() *Model {
	return &Model{}
}

func init() {
	registry.Register(ID, func() engine.Model {
		return New()
	})
}

func (m *Model) ID() string           { return ID }
func (m *Model) Title() string        { return "Spatial lattice (toroidal)" }
func (m *Model) NeedsSelection() bool { return true }
func (m *Model) LegacySummary() bool  { return true }

// Build returns a p.Size x p.Size torus and the Fermi rule with noise p.Selection.
func (m *Model) Build(p core.Params, _ core.Matrix) (topology.Topology, adoption.Rule, error) {
	rule, err := adoption.NewFermiDirac(p.Selection)
	if err != nil {
		return nil, nil, err
	}
	return topology.NewToroidalGrid(p.Size), rule, nil
}
