package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name searched for in standard locations.
const FileName = "tracknav.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the navigation code cannot run with.
func (c *Config) Validate() error {
	n := c.Navigation
	if n.OpenSetBase <= 0 || n.ClosedSetBase <= 0 || n.NodeBase <= 0 {
		return fmt.Errorf("navigation: search base sizes must be positive (open %d, closed %d, nodes %d)",
			n.OpenSetBase, n.ClosedSetBase, n.NodeBase)
	}
	if c.Complexity.StraightDivisor <= 0 {
		return fmt.Errorf("complexity: straight_divisor must be positive, got %v", c.Complexity.StraightDivisor)
	}
	if c.Complexity.BaseRadius <= 0 {
		return fmt.Errorf("complexity: base_radius must be positive, got %v", c.Complexity.BaseRadius)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./" + FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "KartNav")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "KartNav")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "kartnav")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "kartnav")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
