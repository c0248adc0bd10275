package core

import "fmt"

// Matrix is the 2x2 payoff table of the donation-game form of the
// Prisoner's Dilemma: (R, T, S, P) = (b-c, b, -c, 0).
type Matrix struct {
	R float64 // Reward: both cooperate
	T float64 // Temptation: defect against a cooperator
	S float64 // Sucker: cooperate against a defector
	P float64 // Punishment: both defect
}

// NewMatrix derives the payoff matrix from benefit b and cost c.
// It fails unless b > c > 0, which is what makes T > R > P > S hold
// and keeps the normalisation constant T-S positive.
func NewMatrix(b, c float64) (Matrix, error) {
	if c <= 0 {
		return Matrix{}, fmt.Errorf("core: cost must be positive, got %g: %w", c, ErrInvalidParameter)
	}
	if b <= c {
		return Matrix{}, fmt.Errorf("core: benefit %g must exceed cost %g: %w", b, c, ErrInvalidParameter)
	}
	return Matrix{
		R: b - c,
		T: b,
		S: -c,
		P: 0,
	}, nil
}

// Payoff returns the payoff earned by own when playing against partner.
// Panics if either strategy is outside {Defector, Cooperator}.
func (m Matrix) Payoff(own, partner Strategy) float64 {
	if !own.Valid() || !partner.Valid() {
		panic(fmt.Sprintf("core: payoff lookup with invalid strategies (%v, %v)", own, partner))
	}
	switch {
	case own == Cooperator && partner == Cooperator:
		return m.R
	case own == Defector && partner == Cooperator:
		return m.T
	case own == Cooperator && partner == Defector:
		return m.S
	default:
		return m.P
	}
}

// Range returns T-S, the largest payoff spread a single pairing can produce.
func (m Matrix) Range() float64 {
	return m.T - m.S
}

// IsDilemma reports whether the strict ordering T > R > P > S holds.
func (m Matrix) IsDilemma() bool {
	return m.T > m.R && m.R > m.P && m.P > m.S
}
