// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for skysnap configuration.
	DefaultConfigDir = ".skysnap"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
)

// Config holds the tool's defaults (read-only after init). Every value can
// be overridden per invocation on the command line.
type Config struct {
	Insert  InsertConfig  `yaml:"insert,omitempty"`
	Reports ReportsConfig `yaml:"reports,omitempty"`
}

// InsertConfig holds defaults for the insert command.
type InsertConfig struct {
	// HeightMeters is the default mounting elevation in metres.
	HeightMeters float64 `yaml:"height_meters,omitempty"`
	// AzimuthDeg is the default azimuth, counter-clockwise from +X.
	AzimuthDeg float64 `yaml:"azimuth_deg,omitempty"`
	// Output is the default output file path.
	Output string `yaml:"output,omitempty"`
}

// ReportsConfig holds defaults for the validate and psets commands.
type ReportsConfig struct {
	// MaxIssues caps the findings printed per validated file.
	MaxIssues int `yaml:"max_issues,omitempty"`
	// MaxProperties caps the property names printed per property set.
	MaxProperties int `yaml:"max_properties,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Insert: InsertConfig{
			HeightMeters: 3.0,
			AzimuthDeg:   123.0,
			Output:       "SEGMENT_WITH_ANTENNA.ifc",
		},
		Reports: ReportsConfig{
			MaxIssues:     10,
			MaxProperties: 30,
		},
	}
}

// Load loads configuration from the .skysnap directory in the given path.
// A missing config file is not an error: the defaults apply.
func Load(basePath string) (*Config, error) {
	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)

	cfg := Default()
	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", configFile, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configFile, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Insert.HeightMeters <= 0 {
		return fmt.Errorf("insert.height_meters must be > 0, got %v", c.Insert.HeightMeters)
	}
	if c.Reports.MaxIssues < 1 {
		return fmt.Errorf("reports.max_issues must be >= 1, got %d", c.Reports.MaxIssues)
	}
	if c.Reports.MaxProperties < 1 {
		return fmt.Errorf("reports.max_properties must be >= 1, got %d", c.Reports.MaxProperties)
	}
	return nil
}
