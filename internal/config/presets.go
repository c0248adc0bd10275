package config

import (
	"fmt"

	"github.com/vovakirdan/coopsim/internal/core"
)

// LengthPreset represents a named run length.
type LengthPreset string

const (
	LengthQuick     LengthPreset = "quick"
	LengthReference LengthPreset = "reference"
	LengthLong      LengthPreset = "long"
)

// SelectionPreset represents a named Fermi noise level.
type SelectionPreset string

const (
	SelectionStrong   SelectionPreset = "strong"
	SelectionModerate SelectionPreset = "moderate"
	SelectionWeak     SelectionPreset = "weak"
)

// GenerationScale returns the factor a length preset applies to the
// configured generation count.
func GenerationScale(preset LengthPreset) (float64, error) {
	switch preset {
	case LengthQuick:
		return 0.1, nil
	case LengthReference, "":
		return 1, nil
	case LengthLong:
		return 10, nil
	default:
		return 0, fmt.Errorf("config: unknown length preset %q: %w", preset, core.ErrInvalidParameter)
	}
}

// SelectionForPreset returns k for a selection preset.
// Small k means payoff differences dominate the imitation decision.
func SelectionForPreset(preset SelectionPreset) (float64, error) {
	switch preset {
	case SelectionStrong:
		return 0.01, nil
	case SelectionModerate:
		return 0.1, nil
	case SelectionWeak:
		return 1.0, nil
	default:
		return 0, fmt.Errorf("config: unknown selection preset %q: %w", preset, core.ErrInvalidParameter)
	}
}

// ApplyPreset modifies the config based on a preset name, which may be a
// length preset or a selection preset.
func ApplyPreset(cfg *SimConfig, name string) error {
	if k, err := SelectionForPreset(SelectionPreset(name)); err == nil {
		cfg.Selection = k
		return nil
	}

	scale, err := GenerationScale(LengthPreset(name))
	if err != nil {
		return fmt.Errorf("config: unknown preset %q: %w", name, core.ErrInvalidParameter)
	}
	g := int(float64(cfg.Generations) * scale)
	if g < 1 {
		g = 1
	}
	cfg.Generations = g
	return nil
}

// PresetNames lists every preset accepted by ApplyPreset.
func PresetNames() []string {
	return []string{
		string(LengthQuick), string(LengthReference), string(LengthLong),
		string(SelectionStrong), string(SelectionModerate), string(SelectionWeak),
	}
}
