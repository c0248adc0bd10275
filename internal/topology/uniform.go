package topology

import (
	"fmt"

	"github.com/vovakirdan/coopsim/internal/core"
)

// UniformRandom is the well-mixed geometry: every step draws four agents
// uniformly with replacement. Agents 0 and 1 form the focal pairing and
// agents 2 and 3 form the model pairing. Draws may coincide, including an
// agent playing against itself.
type UniformRandom struct {
	N int
}

// NewUniformRandom creates a well-mixed geometry over n agents.
func NewUniformRandom(n int) *UniformRandom {
	return &UniformRandom{N: n}
}

// Name returns the geometry identifier.
func (u *UniformRandom) Name() string { return "uniform" }

// Cells returns the number of agents.
func (u *UniformRandom) Cells() int { return u.N }

// Width returns N: a well-mixed population is a single row.
func (u *UniformRandom) Width() int { return u.N }

// Sample draws the four agents of one step and their pairwise payoffs.
func (u *UniformRandom) Sample(pop *Population, m core.Matrix, rng core.Source) (Interaction, error) {
	if pop.Len() != u.N {
		return Interaction{}, fmt.Errorf("topology: population has %d agents, geometry expects %d", pop.Len(), u.N)
	}

	var idx [4]int
	for i := range idx {
		v, err := core.Index(rng, u.N)
		if err != nil {
			return Interaction{}, err
		}
		idx[i] = v
	}

	in := Interaction{
		Focal:  idx[0],
		Model:  idx[2],
		Degree: 1,
	}
	in.FocalPartners[0] = idx[1]
	in.ModelPartners[0] = idx[3]
	in.FocalPayoff = m.Payoff(pop.Get(idx[0]), pop.Get(idx[1]))
	in.ModelPayoff = m.Payoff(pop.Get(idx[2]), pop.Get(idx[3]))
	return in, nil
}
