package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/stlview/pkg/render"
)

// FileName is the name of the config file inside the config directory
const FileName = "config.yaml"

// Export options
type Export struct {
	OutputDir    string `yaml:"output_dir"`
	NextToSource bool   `yaml:"next_to_source"`
	Caption      bool   `yaml:"caption"`
}

// LoadOptions controls how folders are opened
type LoadOptions struct {
	Recursive bool `yaml:"recursive"`
}

// Config is the persisted state of stlview
type Config struct {
	Render render.Settings `yaml:"render"`
	Export Export          `yaml:"export"`
	Load   LoadOptions     `yaml:"load"`
}

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Render: render.DefaultSettings(),
		Export: Export{NextToSource: true},
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "stlview", FileName), nil
}

// Load reads the config at path on top of the defaults. Keys missing from
// the file keep their default value and every setting is clamped to its
// valid range. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.Render = cfg.Render.Clamped()
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal encodes cfg as YAML
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
