package topology

import "github.com/vovakirdan/coopsim/internal/core"

// MaxPartners is the largest number of partners any geometry pairs an agent with.
const MaxPartners = 4

// Interaction is the transient record of one update step: who is focal,
// whose strategy it may copy, and the payoffs being compared.
type Interaction struct {
	Focal int // agent whose strategy may be overwritten
	Model int // agent whose strategy may be copied

	// Partners of the focal and of the model. Only the first Degree
	// entries are meaningful.
	FocalPartners [MaxPartners]int
	ModelPartners [MaxPartners]int
	Degree        int

	FocalPayoff float64
	ModelPayoff float64
}

// Topology determines how a population is laid out and how the
// interaction of each update step is drawn.
type Topology interface {
	// Name returns the geometry identifier (e.g., "uniform", "torus").
	Name() string

	// Cells returns the population size the geometry expects.
	Cells() int

	// Width returns the row width used to lay out the population.
	Width() int

	// Sample draws the interaction of one update step.
	Sample(pop *Population, m core.Matrix, rng core.Source) (Interaction, error)
}

// Lattice is implemented by geometries whose population is a square grid.
// The engine emits grid snapshots only for these.
type Lattice interface {
	Side() int
}

// NewPopulationFor allocates an all-defector population shaped for t.
func NewPopulationFor(t Topology) *Population {
	return NewPopulation(t.Cells(), t.Width())
}
