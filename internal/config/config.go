/*
PURPOSE:
  Defines the configuration structure and loading logic for Prism.
  The funnel shape (stage order, exclusion-reason vocabulary) is
  configuration, not code, so the diagram structure is data-driven.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the data location, per-figure output
    directories, the stage order, and the reason vocabulary.

  Implementation-discovered:
  - Needs YAML parsing.
  - Stage order matters; it is a slice, never a map.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Returns explicit error if a named config file is missing or invalid.
  - Falls back to defaults when no file is found during the search.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults must describe the published review table as-is.

USAGE:
  cfg, err := config.Load("prism.yaml")

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update defaults when the review protocol changes.
*/

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for Prism.
type Config struct {
	// DataDir is scanned for the first *.csv file when DataFile is unset.
	DataDir  string `yaml:"data_dir"`
	DataFile string `yaml:"data_file"`

	// Per-figure output directories. Figures accumulate across runs;
	// nothing is ever overwritten.
	FlowchartDir   string `yaml:"flowchart_dir"`
	PerformanceDir string `yaml:"performance_dir"`
	SampleSizeDir  string `yaml:"samplesize_dir"`

	// Stages is the funnel order, first to last. A record's stage must
	// be one of these values.
	Stages []string `yaml:"stages"`

	// Reasons is the exclusion-reason vocabulary. Every reason appears
	// in the flowchart at every transition, zero or not.
	Reasons []string `yaml:"reasons"`
}

// DefaultConfig returns the configuration for the published review table.
func DefaultConfig() *Config {
	return &Config{
		DataDir:        "data",
		FlowchartDir:   "figures/flowchart",
		PerformanceDir: "figures/performance",
		SampleSizeDir:  "figures/samplesize",
		Stages:         []string{"identified", "screened", "eligible", "included"},
		Reasons: []string{
			"no modality comparison",
			"wrong population",
			"not a decision task",
			"wrong publication type",
			"duplicate",
		},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file is found, returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		defaults := []string{"prism.yaml", "prism.conf"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(cfg.Stages) < 2 {
		return nil, fmt.Errorf("config %s: need at least two stages, got %d", path, len(cfg.Stages))
	}

	return cfg, nil
}
