package config

import (
	_ "embed"
)

//go:embed defaults/wellmixed.yaml
var defaultWellMixedYAML []byte

//go:embed defaults/spatial.yaml
var defaultSpatialYAML []byte

// DefaultWellMixedConfig returns the default well-mixed configuration.
func DefaultWellMixedConfig() SimConfig {
	return SimConfig{
		Benefit:            2.0,
		Cost:               1.0,
		Size:               1000,
		Generations:        50,
		InitialCooperation: 0.5,
		Output: OutputConfig{
			Dir:   ".",
			Trace: true,
		},
	}
}

// DefaultSpatialConfig returns the default spatial configuration.
func DefaultSpatialConfig() SimConfig {
	return SimConfig{
		Benefit:            2.0,
		Cost:               1.0,
		Selection:          0.1,
		Size:               50,
		Generations:        1000,
		InitialCooperation: 0.5,
		Output: OutputConfig{
			Dir:       ".",
			Trace:     true,
			Snapshots: true,
		},
	}
}

// Default returns the hardcoded configuration of a variant.
func Default(variant string) (SimConfig, bool) {
	switch variant {
	case "wellmixed":
		return DefaultWellMixedConfig(), true
	case "spatial":
		return DefaultSpatialConfig(), true
	default:
		return SimConfig{}, false
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case "wellmixed":
		return defaultWellMixedYAML
	case "spatial":
		return defaultSpatialYAML
	default:
		return nil
	}
}
