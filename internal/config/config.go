// Package config provides YAML configuration loading for the CLI and
// the HTTP server. All values have working defaults; a config file only
// needs to name what it overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/classifier"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/cluster"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/pipeline"
)

// Config contains all analyzer configuration settings.
type Config struct {
	// Analysis contains the core pipeline settings.
	Analysis AnalysisConfig `yaml:"analysis"`
	// Logging contains logging settings.
	Logging LoggingConfig `yaml:"logging"`
}

// AnalysisConfig configures the redundancy pipeline.
type AnalysisConfig struct {
	// NumClusters is the k-means cluster count. Must be positive.
	NumClusters int `yaml:"num_clusters"`
	// Seed drives the deterministic centroid initialization.
	Seed int64 `yaml:"seed"`
	// MaxIterations caps the k-means relocation loop.
	MaxIterations int `yaml:"max_iterations"`
	// SimilarityThresholdPrimary flags any pair at or above it.
	SimilarityThresholdPrimary float64 `yaml:"similarity_threshold_primary"`
	// SimilarityThresholdPriority flags pairs at or above it when
	// either record is top priority.
	SimilarityThresholdPriority float64 `yaml:"similarity_threshold_priority"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// JSONFormat switches log output to JSON.
	JSONFormat bool `yaml:"json_format"`
	// File is the log file path; empty logs to stdout.
	File string `yaml:"file"`
}

// Default returns a Config with the standard defaults.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			NumClusters:                 cluster.DefaultNumClusters,
			Seed:                        cluster.DefaultSeed,
			MaxIterations:               cluster.DefaultMaxIterations,
			SimilarityThresholdPrimary:  classifier.DefaultPrimaryThreshold,
			SimilarityThresholdPriority: classifier.DefaultPriorityThreshold,
		},
	}
}

// Load reads a YAML config file and merges it over the defaults. A
// missing path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Pipeline converts the analysis settings to a pipeline configuration.
func (c *Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		Cluster: cluster.Config{
			NumClusters:   c.Analysis.NumClusters,
			Seed:          c.Analysis.Seed,
			MaxIterations: c.Analysis.MaxIterations,
		},
		Classifier: classifier.Config{
			PrimaryThreshold:  c.Analysis.SimilarityThresholdPrimary,
			PriorityThreshold: c.Analysis.SimilarityThresholdPriority,
		},
	}
}
