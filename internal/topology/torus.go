package topology

import (
	"fmt"

	"github.com/vovakirdan/coopsim/internal/core"
)

// Neighbor directions, in the order Neighbors returns them.
const (
	Up = iota
	Down
	Left
	Right
)

// ToroidalGrid is the spatial geometry: a Side x Side lattice with periodic
// boundaries. Each agent plays its four von Neumann neighbors.
type ToroidalGrid struct {
	side int
}

// NewToroidalGrid creates a square torus with the given side length.
func NewToroidalGrid(side int) *ToroidalGrid {
	return &ToroidalGrid{side: side}
}

// Name returns the geometry identifier.
func (g *ToroidalGrid) Name() string { return "torus" }

// Side returns the grid side length.
func (g *ToroidalGrid) Side() int { return g.side }

// Cells returns Side*Side.
func (g *ToroidalGrid) Cells() int { return g.side * g.side }

// Width returns the row width, which is the side length.
func (g *ToroidalGrid) Width() int { return g.side }

// Index converts a cell to its row-major population index.
func (g *ToroidalGrid) Index(c core.Cell) int {
	return c.Row*g.side + c.Col
}

// Neighbors returns the von Neumann neighbors of c with wraparound,
// ordered up, down, left, right.
func (g *ToroidalGrid) Neighbors(c core.Cell) [4]core.Cell {
	return [4]core.Cell{
		Up:    core.C(core.Wrap(c.Row, -1, g.side), c.Col),
		Down:  core.C(core.Wrap(c.Row, 1, g.side), c.Col),
		Left:  core.C(c.Row, core.Wrap(c.Col, -1, g.side)),
		Right: core.C(c.Row, core.Wrap(c.Col, 1, g.side)),
	}
}

// NeighborPayoff sums the payoff of the agent at c against each of its
// four neighbors, using its own strategy every time.
func (g *ToroidalGrid) NeighborPayoff(pop *Population, m core.Matrix, c core.Cell) (float64, [MaxPartners]int) {
	own := pop.Get(g.Index(c))
	var partners [MaxPartners]int
	total := 0.0
	for i, n := range g.Neighbors(c) {
		j := g.Index(n)
		partners[i] = j
		total += m.Payoff(own, pop.Get(j))
	}
	return total, partners
}

// Sample picks a focal cell uniformly, then one of its four neighbors
// uniformly as the model. The model's payoff is computed over the model's
// own neighborhood.
func (g *ToroidalGrid) Sample(pop *Population, m core.Matrix, rng core.Source) (Interaction, error) {
	if pop.Len() != g.Cells() {
		return Interaction{}, fmt.Errorf("topology: population has %d agents, grid expects %d", pop.Len(), g.Cells())
	}

	row, err := core.Index(rng, g.side)
	if err != nil {
		return Interaction{}, err
	}
	col, err := core.Index(rng, g.side)
	if err != nil {
		return Interaction{}, err
	}
	focal := core.C(row, col)

	pick, err := core.Index(rng, 4)
	if err != nil {
		return Interaction{}, err
	}
	model := g.Neighbors(focal)[pick]

	in := Interaction{
		Focal:  g.Index(focal),
		Model:  g.Index(model),
		Degree: 4,
	}
	in.FocalPayoff, in.FocalPartners = g.NeighborPayoff(pop, m, focal)
	in.ModelPayoff, in.ModelPartners = g.NeighborPayoff(pop, m, model)
	return in, nil
}
