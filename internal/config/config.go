package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const configFile = ".markselect/config.json"

// Config holds user preferences for the markselect screen.
type Config struct {
	Mouse     bool   `json:"mouse" yaml:"mouse"`
	AltScreen bool   `json:"alt_screen" yaml:"alt_screen"`
	LogFile   string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	Debug     bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	// Width fixes the dropdown panel width; 0 sizes it to the options.
	Width int `json:"width,omitempty" yaml:"width,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Mouse:     true,
		AltScreen: true,
	}
}

// Path returns the config file location under baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Load reads the config from disk
func Load(baseDir string) (*Config, error) {
	return LoadFile(Path(baseDir))
}

// isYAML reports whether path names a YAML file. Anything else is JSON.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadFile reads the config at path. A missing file yields defaults; keys
// absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// explicit records which defaulted keys the file actually sets.
	var explicit struct {
		Mouse *bool `json:"mouse" yaml:"mouse"`
	}
	unmarshal := json.Unmarshal
	if isYAML(path) {
		unmarshal = yaml.Unmarshal
	}
	if err := unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := unmarshal(data, &explicit); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Inline rendering without a mouse preference means no mouse.
	if !cfg.AltScreen && explicit.Mouse == nil {
		cfg.Mouse = false
	}
	if err := cfg.validateValues(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	return SaveFile(Path(baseDir), cfg)
}

// SaveFile writes cfg to path, creating parent directories.
func SaveFile(path string, cfg *Config) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges and that the settings can be combined.
// Callers that layer flags over a loaded file validate the result.
func (c *Config) Validate() error {
	if err := c.validateValues(); err != nil {
		return err
	}
	if c.Mouse && !c.AltScreen {
		// Mouse coordinates are screen-absolute; inline rendering has no
		// fixed origin to resolve them against.
		return fmt.Errorf("mouse requires alt_screen")
	}
	return nil
}

// validateValues checks single-field ranges only.
func (c *Config) validateValues() error {
	if c.Width < 0 {
		return fmt.Errorf("width must be >= 0, got %d", c.Width)
	}
	return nil
}
