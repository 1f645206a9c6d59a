package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.gridiron/configs/game.yaml -> ./configs/game.yaml -> embedded default
// Fields missing from the file keep their built-in defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()

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
	if userCfgPath := userConfigPath("game.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := Default()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "game.yaml")); err == nil {
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridiron", "configs", filename)
}

// Env holds the runtime overrides read from the environment.
type Env struct {
	DBPath      string `env:"GRIDIRON_DB"`
	Seed        int64  `env:"GRIDIRON_SEED"`
	LogLevel    string `env:"GRIDIRON_LOG_LEVEL"`
	MetricsAddr string `env:"GRIDIRON_METRICS_ADDR"`
	Workers     int    `env:"GRIDIRON_WORKERS"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyEnv overrides runtime settings with any GRIDIRON_* variables that are set.
func ApplyEnv(cfg *Config) error {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if e.DBPath != "" {
		cfg.Sim.DBPath = e.DBPath
	}
	if e.Seed != 0 {
		cfg.Sim.Seed = e.Seed
	}
	if e.LogLevel != "" {
		cfg.Sim.LogLevel = e.LogLevel
	}
	if e.MetricsAddr != "" {
		cfg.Sim.MetricsAddr = e.MetricsAddr
	}
	if e.Workers != 0 {
		cfg.Sim.Workers = e.Workers
	}
	return nil
}
