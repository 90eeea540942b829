// Package config loads the tool's non-semantic configuration: the hoisted
// field name prefix, the control field base names, and the printer's indent
// width, all of which are left implementation-defined. It repurposes
// the same YAML dependency other parts of this module use for the MAST
// forest contract, here for tool configuration instead.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the knobs a --config file may override.
type Config struct {
	// FreshNamePrefix prefixes every name the hoister and assembler
	// generate, guaranteeing it cannot collide with a source identifier
	// so generated names stay unique.
	FreshNamePrefix string `yaml:"freshNamePrefix"`
	// HasNextField, NextField and StateField name the iterator's control
	// fields.
	HasNextField string `yaml:"hasNextField"`
	NextField    string `yaml:"nextField"`
	StateField   string `yaml:"stateField"`
	// IndentWidth is the number of spaces the printer uses per nesting
	// level (two spaces by default).
	IndentWidth int `yaml:"indentWidth"`
}

// Default returns the configuration used when no --config file is given.
func Default() *Config {
	return &Config{
		FreshNamePrefix: "$_gen_",
		HasNextField:    "hn",
		NextField:       "next",
		StateField:      "state",
		IndentWidth:     2,
	}
}

// Load reads and parses a YAML configuration file, starting from Default()
// so a partial file only overrides the fields it mentions.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	if cfg.IndentWidth <= 0 {
		return nil, fmt.Errorf("config file %q: indentWidth must be positive, got %d", path, cfg.IndentWidth)
	}
	return cfg, nil
}
