package core

import "fmt"

// Strategy is the pure strategy an agent plays in the Prisoner's Dilemma.
// The numeric values match the 0/1 encoding used in trace and grid files.
type Strategy uint8

const (
	Defector   Strategy = 0
	Cooperator Strategy = 1
)

// Valid reports whether s is one of the two dilemma strategies.
func (s Strategy) Valid() bool {
	return s == Defector || s == Cooperator
}

// String returns a human-readable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case Defector:
		return "Defector"
	case Cooperator:
		return "Cooperator"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// Int returns the 0/1 token written to snapshot files.
func (s Strategy) Int() int {
	return int(s)
}
