package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name searched for in standard locations.
const FileName = "wiresoup.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search
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

// Validate rejects settings the tools cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Bake.OutputDir == "" {
		errs = append(errs, errors.New("bake.output_dir must not be empty"))
	}
	if c.Primitive.Cells <= 0 {
		errs = append(errs, fmt.Errorf("primitive.cells must be positive, got %d", c.Primitive.Cells))
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height))
	}
	if c.Viewer.WireWidth <= 0 {
		errs = append(errs, fmt.Errorf("viewer.wire_width must be positive, got %v", c.Viewer.WireWidth))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
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
		return filepath.Join(home, "Library", "Application Support", "Wiresoup")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Wiresoup")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "wiresoup")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "wiresoup")
	}
}

// loadFromFile merges a YAML file into cfg. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}
