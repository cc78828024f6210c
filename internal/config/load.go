package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file when --config is not given.
const EnvConfig = "WAVYPLANE_CONFIG"

// Load builds the config from defaults, then the first config file found, then flags,
// and rejects the result if it cannot drive a render.
func Load() (*Config, error) {
	cfg := Default()

	if path := resolveConfigPath(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath picks --config, then $WAVYPLANE_CONFIG, then the standard locations.
// Explicit paths are returned even when missing so the read error reaches the user.
func resolveConfigPath() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return findConfigFile()
}

// findConfigFile returns the first of ./wavyplane.yaml, ./config.yaml and
// <ConfigDir>/config.yaml that exists.
func findConfigFile() string {
	for _, path := range []string{
		"wavyplane.yaml",
		"config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory Save writes to.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "WavyPlane")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "WavyPlane")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "wavy-plane")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "wavy-plane")
	}
}

// loadFromFile merges a YAML file over cfg. Keys absent from the file keep their value;
// a presets list in the file replaces the built-in one.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
