// Package adoption converts a payoff comparison into the probability that
// the focal agent copies the model's strategy.
package adoption

import (
	"fmt"
	"math"

	"github.com/vovakirdan/coopsim/internal/core"
)

// Rule maps the payoffs of the focal and model agents to an adoption
// probability and decides, given a uniform draw u, whether adoption happens.
type Rule interface {
	Name() string
	Probability(focal, model float64) float64
	Accept(w, u float64) bool
}

// ClampedLinear adopts with probability proportional to how much better the
// model did, normalised by the payoff range T-S. A worse model is never copied.
type ClampedLinear struct {
	Range float64
}

// NewClampedLinear creates the rule for matrix m.
func NewClampedLinear(m core.Matrix) (*ClampedLinear, error) {
	if !(m.Range() > 0) {
		return nil, fmt.Errorf("adoption: payoff range %g must be positive: %w", m.Range(), core.ErrInvalidParameter)
	}
	return &ClampedLinear{Range: m.Range()}, nil
}

// Name returns the rule identifier.
func (r *ClampedLinear) Name() string { return "linear" }

// Probability returns (model-focal)/Range clamped to [0,1].
// Payoffs from a single pairing never differ by more than Range, so only the
// lower bound binds in practice.
func (r *ClampedLinear) Probability(focal, model float64) float64 {
	return core.ClampF((model-focal)/r.Range, 0, 1)
}

// Accept is a strict comparison: w > u.
func (r *ClampedLinear) Accept(w, u float64) bool {
	return w > u
}

// FermiDirac is the pairwise-comparison sigmoid. K is the selection noise:
// small K approaches deterministic imitation of the better strategy, large K
// approaches random drift.
type FermiDirac struct {
	K float64
}

// NewFermiDirac creates the rule with noise k.
func NewFermiDirac(k float64) (*FermiDirac, error) {
	if !(k > 0) {
		return nil, fmt.Errorf("adoption: selection intensity %g must be positive: %w", k, core.ErrInvalidParameter)
	}
	return &FermiDirac{K: k}, nil
}

// Name returns the rule identifier.
func (r *FermiDirac) Name() string { return "fermi" }

// Probability returns 1/(1+exp((focal-model)/K)).
func (r *FermiDirac) Probability(focal, model float64) float64 {
	return 1.0 / (1.0 + math.Exp((focal-model)/r.K))
}

// Accept is a non-strict comparison: w >= u.
func (r *FermiDirac) Accept(w, u float64) bool {
	return w >= u
}
