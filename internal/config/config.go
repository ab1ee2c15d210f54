// Package config loads the generator's YAML project configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pv-generator/internal/document"
	"pv-generator/internal/rules"
)

// Config is the root of a YAML project configuration file.
type Config struct {
	// Version selects the rule table applied to every package.
	Version string `yaml:"version,omitempty"`

	// OutputDir is the directory where generated files are written.
	OutputDir string `yaml:"output_dir,omitempty"`

	// DBFile names the generated record file.
	DBFile string `yaml:"db_file,omitempty"`

	// ProtoFile names the generated protocol stub file. Setting it
	// implies stub usage.
	ProtoFile string `yaml:"proto_file,omitempty"`

	// Separator joins PV fragments along a path.
	Separator string `yaml:"separator,omitempty"`

	// PragmaKey is the tmc property name marking pragma blocks.
	PragmaKey string `yaml:"pragma_key,omitempty"`

	// DataArea is the tmc data area symbols are read from.
	DataArea string `yaml:"data_area,omitempty"`
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = rules.VersionLegacy.Name()
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	if cfg.DBFile == "" {
		cfg.DBFile = "generated.db"
	}

	if cfg.Separator == "" {
		cfg.Separator = ":"
	}

	if cfg.PragmaKey == "" {
		cfg.PragmaKey = document.DefaultPragmaKey
	}

	if cfg.DataArea == "" {
		cfg.DataArea = document.DefaultDataArea
	}
}

// RulesVersion resolves the configured version string.
func (c *Config) RulesVersion() (rules.Version, error) {
	return rules.ParseVersion(c.Version)
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
