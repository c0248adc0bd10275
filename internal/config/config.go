// Package config provides YAML-based run configuration loading and
// parameter presets for the simulator.
package config

import (
	"github.com/vovakirdan/coopsim/internal/core"
)

// SimConfig contains all configuration for one variant.
type SimConfig struct {
	Benefit            float64      `yaml:"benefit"`
	Cost               float64      `yaml:"cost"`
	Selection          float64      `yaml:"selection"` // Fermi noise k; ignored by variants without one
	Size               int          `yaml:"size"`      // agents (well-mixed) or grid side (spatial)
	Generations        int          `yaml:"generations"`
	InitialCooperation float64      `yaml:"initial_cooperation"`
	Output             OutputConfig `yaml:"output"`
}

// OutputConfig controls which result files a run writes.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Trace     bool   `yaml:"trace"`     // write the cooperation trace file
	Snapshots bool   `yaml:"snapshots"` // write initial/final grid files (spatial only)
}

// Params converts the configuration into run parameters.
func (c SimConfig) Params(seed int64) core.Params {
	return core.Params{
		Benefit:            c.Benefit,
		Cost:               c.Cost,
		Selection:          c.Selection,
		Size:               c.Size,
		Generations:        c.Generations,
		InitialCooperation: c.InitialCooperation,
		Seed:               seed,
	}
}
