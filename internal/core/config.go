package core

import (
	"fmt"
	"math"
)

// Params contains the parameters of a single run.
// They are supplied once before the run starts and never change afterwards.
type Params struct {
	Benefit            float64 // b, benefit received from a cooperator
	Cost               float64 // c, cost paid by a cooperator
	Selection          float64 // k, Fermi selection noise (spatial only)
	Size               int     // N: agent count (well-mixed) or grid side (spatial)
	Generations        int     // G: each generation is one update per agent
	InitialCooperation float64 // f0, probability an agent starts as a cooperator
	Seed               int64   // RNG seed; 0 means use current time in the CLI layer
}

// DefaultParams returns the parameters of the reference spatial run.
func DefaultParams() Params {
	return Params{
		Benefit:            2,
		Cost:               1,
		Selection:          0.1,
		Size:               50,
		Generations:        1000,
		InitialCooperation: 0.5,
	}
}

// Validate checks the parameters shared by both variants.
// needSelection additionally requires k > 0.
func (p Params) Validate(needSelection bool) error {
	if _, err := NewMatrix(p.Benefit, p.Cost); err != nil {
		return err
	}
	if p.Size <= 0 {
		return fmt.Errorf("core: population size must be positive, got %d: %w", p.Size, ErrInvalidParameter)
	}
	if p.Generations <= 0 {
		return fmt.Errorf("core: generation count must be positive, got %d: %w", p.Generations, ErrInvalidParameter)
	}
	if math.IsNaN(p.InitialCooperation) || p.InitialCooperation < 0 || p.InitialCooperation > 1 {
		return fmt.Errorf("core: initial cooperation %g outside [0,1]: %w", p.InitialCooperation, ErrInvalidParameter)
	}
	if needSelection && !(p.Selection > 0) {
		return fmt.Errorf("core: selection intensity must be positive, got %g: %w", p.Selection, ErrInvalidParameter)
	}
	return nil
}

// Ratio returns c/(b-c), the cost-to-net-benefit ratio printed alongside
// each spatial run.
func (p Params) Ratio() float64 {
	return p.Cost / (p.Benefit - p.Cost)
}
