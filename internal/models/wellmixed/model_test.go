package wellmixed

import (
	"context"
	"math/rand"
	"testing"

	"github.com/vovakirdan/coopsim/internal/adoption"
	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
	"github.com/vovakirdan/coopsim/internal/registry"
	"github.com/vovakirdan/coopsim/internal/topology"
)

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("%q should be registered", ID)
	}
	m, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.NeedsSelection() || m.LegacySummary() {
		t.Error("well-mixed variant uses neither k nor the legacy summary")
	}
}

func TestBuild(t *testing.T) {
	mat, _ := core.NewMatrix(2, 1)
	topo, rule, err := New().Build(core.Params{Size: 10}, mat)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := topo.(*topology.UniformRandom); !ok || topo.Cells() != 10 {
		t.Errorf("expected UniformRandom over 10 agents, got %T with %d cells", topo, topo.Cells())
	}
	lin, ok := rule.(*adoption.ClampedLinear)
	if !ok || lin.Range != 3 {
		t.Errorf("expected ClampedLinear with range 3, got %#v", rule)
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name     string
		f0       float64
		expected float64
	}{
		{"all cooperators", 1.0, 1.0},
		{"all defectors", 0.0, 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := core.Params{Benefit: 2, Cost: 1, Size: 4, Generations: 1, InitialCooperation: tc.f0}
			rc, err := engine.NewRunContext(New(), p, rand.New(rand.NewSource(42)))
			if err != nil {
				t.Fatalf("NewRunContext failed: %v", err)
			}
			res, err := engine.New(rc, nil).Run(context.Background())
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if len(res.Trace) != 5 {
				t.Fatalf("expected steps 0..4, got %d samples", len(res.Trace))
			}
			for _, s := range res.Trace {
				if s.Fraction != tc.expected {
					t.Errorf("step %d: fraction %f, expected %f", s.Step, s.Fraction, tc.expected)
				}
			}
		})
	}
}

func TestMixedPopulationEvolves(t *testing.T) {
	p := core.Params{Benefit: 2, Cost: 1, Size: 200, Generations: 5, InitialCooperation: 0.5}
	rc, err := engine.NewRunContext(New(), p, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewRunContext failed: %v", err)
	}
	res, err := engine.New(rc, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Flips == 0 {
		t.Error("a mixed population should see at least one strategy change")
	}
}
