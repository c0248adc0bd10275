package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/coopsim/internal/core"
)

// Load loads the configuration of a variant.
// Search order: customPath -> ~/.coopsim/configs/<variant>.yaml ->
// ./configs/<variant>.yaml -> embedded default -> hardcoded default.
// Keys missing from a file keep their default values.
func Load(variant, customPath string) (SimConfig, error) {
	base, ok := Default(variant)
	if !ok {
		return SimConfig{}, fmt.Errorf("config: unknown variant %q: %w", variant, core.ErrInvalidParameter)
	}
	filename := variant + ".yaml"

	// Try custom path first
	if customPath != "" {
		cfg := base
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %v: %w", customPath, err, core.ErrResourceUnavailable)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %v: %w", customPath, err, core.ErrInvalidParameter)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath, base); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(filepath.Join("configs", filename), base); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := base
	if err := yaml.Unmarshal(GetDefaultYAML(variant), &cfg); err != nil {
		return base, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile decodes path over base. Missing or malformed files are skipped.
func tryFile(path string, base SimConfig) (SimConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".coopsim", "configs", filename)
}
