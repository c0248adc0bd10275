// Package topology holds the population container and the two interaction
// geometries: a well-mixed population sampled uniformly at random, and a
// square toroidal lattice with von Neumann neighborhoods.
package topology

import (
	"fmt"

	"github.com/vovakirdan/coopsim/internal/core"
)

// Population stores one strategy per agent in row-major order: index = row*width + col.
// A well-mixed population is a single row.
//
// The cooperator count is maintained incrementally by Set, which is
// equivalent to recounting after every step but O(1).
type Population struct {
	width int
	cells []core.Strategy
	coop  int
}

// NewPopulation creates a population of size agents laid out in rows of width.
// All agents start as defectors.
func NewPopulation(size, width int) *Population {
	if width <= 0 || size%width != 0 {
		panic(fmt.Sprintf("topology: population of %d does not fit rows of %d", size, width))
	}
	return &Population{
		width: width,
		cells: make([]core.Strategy, size),
	}
}

// Len returns the number of agents.
func (p *Population) Len() int {
	return len(p.cells)
}

// Width returns the row width.
func (p *Population) Width() int {
	return p.width
}

// Get returns the strategy of agent i.
func (p *Population) Get(i int) core.Strategy {
	return p.cells[i]
}

// Set overwrites the strategy of agent i and keeps the cooperator count in step.
func (p *Population) Set(i int, s core.Strategy) {
	if !s.Valid() {
		panic(fmt.Sprintf("topology: invalid strategy %v for agent %d", s, i))
	}
	old := p.cells[i]
	if old == s {
		return
	}
	if s == core.Cooperator {
		p.coop++
	} else {
		p.coop--
	}
	p.cells[i] = s
}

// Cooperators returns the current number of cooperators.
func (p *Population) Cooperators() int {
	return p.coop
}

// Fraction returns the share of agents currently cooperating.
func (p *Population) Fraction() float64 {
	if len(p.cells) == 0 {
		return 0
	}
	return float64(p.coop) / float64(len(p.cells))
}

// Recount counts cooperators by scanning every agent.
// It must always agree with Cooperators.
func (p *Population) Recount() int {
	n := 0
	for _, s := range p.cells {
		if s == core.Cooperator {
			n++
		}
	}
	return n
}

// Rows returns a copy of the population split into rows.
func (p *Population) Rows() [][]core.Strategy {
	rows := make([][]core.Strategy, 0, len(p.cells)/p.width)
	for start := 0; start < len(p.cells); start += p.width {
		row := make([]core.Strategy, p.width)
		copy(row, p.cells[start:start+p.width])
		rows = append(rows, row)
	}
	return rows
}

// Homogeneous reports whether every agent plays the same strategy.
func (p *Population) Homogeneous() bool {
	return p.coop == 0 || p.coop == len(p.cells)
}
