package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load loads the engine configuration and applies environment overrides.
// Search order: customPath -> ~/.ghostbird/configs/ghostbird.yaml -> ./configs/ghostbird.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, err := loadYAML(customPath)
	if err != nil {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadYAML resolves the first readable config file.
func loadYAML(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath("configs", "ghostbird.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/ghostbird.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Paths holds the file locations the CLI needs besides the config itself.
type Paths struct {
	Map string `env:"GHOSTBIRD_MAP"` // Obstacle schedule; empty = embedded default
	DB  string `env:"GHOSTBIRD_DB"`  // Run history database
	Log string `env:"GHOSTBIRD_LOG"` // Log file used while the TUI owns the terminal
}

// DefaultPaths returns the default file locations under ~/.ghostbird.
func DefaultPaths() Paths {
	return Paths{
		DB:  "~/.ghostbird/runs.db",
		Log: "~/.ghostbird/ghostbird.log",
	}
}

// ApplyEnv overrides the given paths with GHOSTBIRD_* environment variables.
func (p Paths) ApplyEnv() (Paths, error) {
	if err := env.Parse(&p); err != nil {
		return p, fmt.Errorf("config: parse env: %w", err)
	}
	return p, nil
}

// UserPath returns a path under ~/.ghostbird, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, ".ghostbird"}, elem...)...)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
