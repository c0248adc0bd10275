package topology

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/coopsim/internal/core"
)

// scripted replays fixed draws so tests can pin down exact agents.
type scripted struct {
	ints   []int
	floats []float64
}

func (s *scripted) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v
}

func (s *scripted) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func mustMatrix(t *testing.T) core.Matrix {
	t.Helper()
	m, err := core.NewMatrix(2, 1)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	return m
}

func TestPopulationCounter(t *testing.T) {
	p := NewPopulation(6, 3)
	if p.Cooperators() != 0 || p.Fraction() != 0 {
		t.Fatalf("new population should be all defectors")
	}

	p.Set(0, core.Cooperator)
	p.Set(4, core.Cooperator)
	p.Set(4, core.Cooperator) // no change
	p.Set(5, core.Defector)   // no change

	if p.Cooperators() != 2 {
		t.Errorf("Cooperators() = %d, expected 2", p.Cooperators())
	}
	if p.Recount() != p.Cooperators() {
		t.Errorf("Recount() = %d disagrees with Cooperators() = %d", p.Recount(), p.Cooperators())
	}

	p.Set(0, core.Defector)
	if p.Cooperators() != 1 || p.Recount() != 1 {
		t.Errorf("after flip back, expected 1 cooperator, got %d/%d", p.Cooperators(), p.Recount())
	}
}

func TestPopulationCounterMatchesRecountUnderRandomFlips(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := NewPopulation(100, 10)
	for i := 0; i < 5000; i++ {
		p.Set(rng.Intn(100), core.Strategy(rng.Intn(2)))
		if p.Cooperators() != p.Recount() {
			t.Fatalf("step %d: incremental %d, recount %d", i, p.Cooperators(), p.Recount())
		}
	}
}

func TestPopulationRows(t *testing.T) {
	p := NewPopulation(4, 2)
	p.Set(1, core.Cooperator)
	p.Set(2, core.Cooperator)

	rows := p.Rows()
	if len(rows) != 2 || len(rows[0]) != 2 {
		t.Fatalf("Rows() shape = %dx%d, expected 2x2", len(rows), len(rows[0]))
	}
	if rows[0][1] != core.Cooperator || rows[1][0] != core.Cooperator || rows[0][0] != core.Defector {
		t.Errorf("Rows() = %v", rows)
	}

	// Rows is a copy
	rows[0][0] = core.Cooperator
	if p.Get(0) != core.Defector {
		t.Error("mutating Rows() result should not affect population")
	}
}

func TestPopulationSetPanicsOnInvalidStrategy(t *testing.T) {
	p := NewPopulation(2, 2)
	defer func() {
		if recover() == nil {
			t.Error("Set with invalid strategy should panic")
		}
	}()
	p.Set(0, core.Strategy(3))
}

func TestUniformRandomSample(t *testing.T) {
	m := mustMatrix(t)
	p := NewPopulation(4, 4)
	p.Set(0, core.Cooperator) // agents: C D D D

	u := NewUniformRandom(4)
	rng := &scripted{ints: []int{0, 1, 2, 0}}

	in, err := u.Sample(p, m, rng)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	if in.Focal != 0 || in.FocalPartners[0] != 1 || in.Model != 2 || in.ModelPartners[0] != 0 {
		t.Errorf("unexpected agents: %+v", in)
	}
	if in.FocalPayoff != m.S {
		t.Errorf("focal payoff = %f, expected S=%f", in.FocalPayoff, m.S)
	}
	if in.ModelPayoff != m.T {
		t.Errorf("model payoff = %f, expected T=%f", in.ModelPayoff, m.T)
	}
	if in.Degree != 1 {
		t.Errorf("Degree = %d, expected 1", in.Degree)
	}
}

func TestUniformRandomAllowsCoincidingDraws(t *testing.T) {
	m := mustMatrix(t)
	p := NewPopulation(3, 3)
	p.Set(1, core.Cooperator)

	u := NewUniformRandom(3)
	in, err := u.Sample(p, m, &scripted{ints: []int{1, 1, 1, 1}})
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if in.Focal != in.Model || in.FocalPayoff != m.R || in.ModelPayoff != m.R {
		t.Errorf("self-pairing should be kept: %+v", in)
	}
}

func TestUniformRandomRejectsBadDraw(t *testing.T) {
	m := mustMatrix(t)
	p := NewPopulation(3, 3)
	_, err := NewUniformRandom(3).Sample(p, m, &scripted{ints: []int{5}})
	if !errors.Is(err, core.ErrRandomSource) {
		t.Errorf("expected ErrRandomSource, got %v", err)
	}
}

func TestToroidalNeighborsWrap(t *testing.T) {
	const n = 5
	g := NewToroidalGrid(n)

	for j := 0; j < n; j++ {
		if got := g.Neighbors(core.C(0, j))[Up]; got != core.C(n-1, j) {
			t.Errorf("up of (0,%d) = %v, expected (%d,%d)", j, got, n-1, j)
		}
		if got := g.Neighbors(core.C(n-1, j))[Down]; got != core.C(0, j) {
			t.Errorf("down of (%d,%d) = %v, expected (0,%d)", n-1, j, got, j)
		}
	}
	for i := 0; i < n; i++ {
		if got := g.Neighbors(core.C(i, 0))[Left]; got != core.C(i, n-1) {
			t.Errorf("left of (%d,0) = %v, expected (%d,%d)", i, got, i, n-1)
		}
		if got := g.Neighbors(core.C(i, n-1))[Right]; got != core.C(i, 0) {
			t.Errorf("right of (%d,%d) = %v, expected (%d,0)", i, n-1, got, i)
		}
	}
}

func TestToroidalNeighborsInterior(t *testing.T) {
	g := NewToroidalGrid(6)
	for i := 1; i < 5; i++ {
		for j := 1; j < 5; j++ {
			nb := g.Neighbors(core.C(i, j))
			expected := [4]core.Cell{core.C(i-1, j), core.C(i+1, j), core.C(i, j-1), core.C(i, j+1)}
			if nb != expected {
				t.Errorf("Neighbors(%d,%d) = %v, expected %v", i, j, nb, expected)
			}
			for _, c := range nb {
				if c.Row < 0 || c.Row >= 6 || c.Col < 0 || c.Col >= 6 {
					t.Errorf("neighbor %v out of range", c)
				}
			}
		}
	}
}

func TestToroidalSampleModelUsesOwnNeighborhood(t *testing.T) {
	m := mustMatrix(t)
	g := NewToroidalGrid(3)
	p := NewPopulationFor(g)

	// Cooperators at (0,0) and (0,2); the rest defect.
	p.Set(g.Index(core.C(0, 0)), core.Cooperator)
	p.Set(g.Index(core.C(0, 2)), core.Cooperator)

	// Focal (1,0), model is its "up" neighbor (0,0).
	in, err := g.Sample(p, m, &scripted{ints: []int{1, 0, Up}})
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	if in.Focal != g.Index(core.C(1, 0)) || in.Model != g.Index(core.C(0, 0)) {
		t.Fatalf("unexpected focal/model: %+v", in)
	}

	// Focal (1,0) is a defector; neighbors (0,0)=C, (2,0)=D, (1,2)=D, (1,1)=D.
	if in.FocalPayoff != m.T {
		t.Errorf("focal payoff = %f, expected %f", in.FocalPayoff, m.T)
	}

	// Model (0,0) is a cooperator; neighbors (2,0)=D, (1,0)=D, (0,2)=C, (0,1)=D.
	expected := m.R + 3*m.S
	if in.ModelPayoff != expected {
		t.Errorf("model payoff = %f, expected %f", in.ModelPayoff, expected)
	}
	if in.Degree != 4 {
		t.Errorf("Degree = %d, expected 4", in.Degree)
	}
}

func TestToroidalTwoByTwoAllCooperators(t *testing.T) {
	m := mustMatrix(t)
	g := NewToroidalGrid(2)
	p := NewPopulationFor(g)
	for i := 0; i < p.Len(); i++ {
		p.Set(i, core.Cooperator)
	}

	rng := rand.New(rand.NewSource(1))
	for step := 0; step < 50; step++ {
		in, err := g.Sample(p, m, rng)
		if err != nil {
			t.Fatalf("Sample failed: %v", err)
		}
		if in.FocalPayoff != 4*m.R || in.ModelPayoff != 4*m.R {
			t.Fatalf("step %d: payoffs %f/%f, expected 4R=%f", step, in.FocalPayoff, in.ModelPayoff, 4*m.R)
		}
	}
}

func TestToroidalGridIsLattice(t *testing.T) {
	var topo Topology = NewToroidalGrid(3)
	if _, ok := topo.(Lattice); !ok {
		t.Error("ToroidalGrid should implement Lattice")
	}
	topo = NewUniformRandom(3)
	if _, ok := topo.(Lattice); ok {
		t.Error("UniformRandom should not implement Lattice")
	}
}
