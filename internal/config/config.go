package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for configuration when --config is not
// given.
const DefaultPath = "housie.yml"

const (
	// DefaultStrips is the number of strips generated per generation.
	DefaultStrips = 10000

	// DefaultGenerations is the number of timed generations in a batch.
	DefaultGenerations = 1
)

// Output formats for generated strips.
const (
	FormatNone  = "none"
	FormatText  = "text"
	FormatJSONL = "jsonl"
	FormatJSON  = "json"
)

// BatchConfig controls how many strips are generated and how.
type BatchConfig struct {
	Strips      int     `yaml:"strips,omitempty"`      // Strips per generation (default 10000)
	Generations int     `yaml:"generations,omitempty"` // Timed generations (default 1)
	Workers     int     `yaml:"workers,omitempty"`     // Parallel workers, 0 = one per CPU
	Seed        *uint64 `yaml:"seed,omitempty"`        // Base seed; nil = non-deterministic
}

// OutputConfig controls where generated strips go.
type OutputConfig struct {
	Format  string `yaml:"format,omitempty"` // text, jsonl, json or none (default none)
	Verbose bool   `yaml:"verbose,omitempty"`
}

// HousieConfig represents the top-level housie.yml configuration
type HousieConfig struct {
	Version string        `yaml:"version"`
	Batch   *BatchConfig  `yaml:"batch,omitempty"`
	Output  *OutputConfig `yaml:"output,omitempty"`
}

// Default returns a validated configuration with every default applied.
func Default() *HousieConfig {
	cfg := &HousieConfig{Version: "1.0"}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// Validate applies defaults and checks every field.
func (c *HousieConfig) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Batch == nil {
		c.Batch = &BatchConfig{}
	}
	if err := c.Batch.Validate(); err != nil {
		return err
	}

	if c.Output == nil {
		c.Output = &OutputConfig{}
	}
	return c.Output.Validate()
}

// Validate applies batch defaults and rejects impossible values.
func (b *BatchConfig) Validate() error {
	if b.Strips == 0 {
		b.Strips = DefaultStrips
	}
	if b.Strips < 0 {
		return fmt.Errorf("batch.strips must be >= 1, got %d", b.Strips)
	}

	if b.Generations == 0 {
		b.Generations = DefaultGenerations
	}
	if b.Generations < 0 {
		return fmt.Errorf("batch.generations must be >= 1, got %d", b.Generations)
	}

	if b.Workers < 0 {
		return fmt.Errorf("batch.workers must be >= 0 (0 = one per CPU), got %d", b.Workers)
	}

	return nil
}

// Validate applies output defaults and checks the format.
func (o *OutputConfig) Validate() error {
	if o.Format == "" {
		o.Format = FormatNone
	}
	if !ValidFormat(o.Format) {
		return fmt.Errorf("invalid output.format: %s (must be '%s', '%s', '%s' or '%s')", o.Format, FormatText, FormatJSONL, FormatJSON, FormatNone)
	}
	return nil
}

// ValidFormat reports whether format names a known output format.
func ValidFormat(format string) bool {
	switch format {
	case FormatNone, FormatText, FormatJSONL, FormatJSON:
		return true
	}
	return false
}

// Load reads and validates housie.yml from the specified path
func Load(path string) (*HousieConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config HousieConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads path if it exists and falls back to Default otherwise.
// A missing explicitly named file is still an error.
func LoadOrDefault(path string, explicit bool) (*HousieConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	return Load(path)
}
