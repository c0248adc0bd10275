// Package core provides the fundamental types of the simulator: strategies,
// the payoff matrix, run parameters, error classes, and grid geometry.
// It has no external dependencies so the update rules stay pure and testable.
package core

// Cell addresses one site of a square grid.
type Cell struct {
	Row, Col int
}

// C is shorthand for constructing a Cell.
func C(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// Wrap moves i by delta on a ring of n sites, so that -1 maps to n-1
// and n maps to 0. Rows and columns share this rule.
func Wrap(i, delta, n int) int {
	v := (i + delta) % n
	if v < 0 {
		v += n
	}
	return v
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
