// redundancy.go
// Package testcaseredundancy flags likely-duplicate test cases in a
// large suite by comparing their titles textually. Titles are turned
// into TF-IDF term vectors, partitioned into similarity clusters with
// seeded k-means, scored pairwise by cosine similarity within each
// cluster, and classified as redundant under explicit threshold rules:
//
//	score >= 0.75
//	  OR (score >= 0.80 AND either record has a "1 -" priority)
//
// The result is a deterministic, ordered list of candidate pairs for
// human review. Similarity is purely lexical; the analyzer makes no
// semantic judgment about the test cases.
//
// This package uses the functional options pattern to allow
// configuration of the cluster count, thresholds, seed, logging and
// normalization.
package testcaseredundancy

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/logger"
	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/normalizer"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/classifier"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/cluster"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/pipeline"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// TestCase is a single test-case record under analysis.
type TestCase = domain.TestCase

// Candidate is a pair of records flagged as likely duplicates, pending
// human review.
type Candidate = domain.Candidate

// ErrEmptyCorpus is returned when the analyzer receives zero records.
var ErrEmptyCorpus = domain.ErrEmptyCorpus

// ErrInvalidConfig is returned for a non-positive cluster count or
// thresholds outside [0, 1].
var ErrInvalidConfig = domain.ErrInvalidConfig

// Default configuration values.
const (
	DefaultNumClusters       = cluster.DefaultNumClusters
	DefaultSeed              = cluster.DefaultSeed
	DefaultPrimaryThreshold  = classifier.DefaultPrimaryThreshold
	DefaultPriorityThreshold = classifier.DefaultPriorityThreshold
)

// Config holds configuration options for the redundancy analyzer.
type Config struct {
	NumClusters       int
	Seed              int64
	MaxIterations     int
	PrimaryThreshold  float64
	PriorityThreshold float64
	// Logger for tracing analysis steps.
	Logger ports.Logger
	// Normalizer applied to every title before vectorization.
	Normalizer ports.Normalizer
}

// Option defines a functional option for configuring the analyzer.
type Option func(*Config)

// WithNumClusters sets a custom k-means cluster count.
func WithNumClusters(k int) Option {
	return func(cfg *Config) {
		cfg.NumClusters = k
	}
}

// WithSeed sets a custom clustering seed.
func WithSeed(seed int64) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
	}
}

// WithMaxIterations sets a custom k-means iteration cap.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		cfg.MaxIterations = n
	}
}

// WithThresholds sets custom primary and priority thresholds.
func WithThresholds(primary, priority float64) Option {
	return func(cfg *Config) {
		cfg.PrimaryThreshold = primary
		cfg.PriorityThreshold = priority
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom title normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *Config) {
		cfg.Normalizer = n
	}
}

// Analyzer runs the redundancy analysis with configurable parameters.
type Analyzer struct {
	pipeline *pipeline.Pipeline
}

// New creates a new Analyzer with the provided functional options.
// If no logger is provided, a default logger is created. Returns an
// error if the configuration is invalid.
func New(opts ...Option) (*Analyzer, error) {
	cfg := Config{
		NumClusters:       cluster.DefaultNumClusters,
		Seed:              cluster.DefaultSeed,
		MaxIterations:     cluster.DefaultMaxIterations,
		PrimaryThreshold:  classifier.DefaultPrimaryThreshold,
		PriorityThreshold: classifier.DefaultPriorityThreshold,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	// If no logger is set, create a default logger.
	if cfg.Logger == nil {
		lg, err := createDefaultLogger()
		if err != nil {
			return nil, err
		}
		cfg.Logger = logger.FromExisting(lg)
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}

	p, err := pipeline.New(pipeline.Config{
		Cluster: cluster.Config{
			NumClusters:   cfg.NumClusters,
			Seed:          cfg.Seed,
			MaxIterations: cfg.MaxIterations,
		},
		Classifier: classifier.Config{
			PrimaryThreshold:  cfg.PrimaryThreshold,
			PriorityThreshold: cfg.PriorityThreshold,
		},
	}, cfg.Logger, cfg.Normalizer)
	if err != nil {
		return nil, err
	}
	return &Analyzer{pipeline: p}, nil
}

// Analyze runs the full analysis over the corpus and returns the
// ordered candidate list. Identical input and configuration always
// produce an identical candidate sequence.
func (a *Analyzer) Analyze(ctx context.Context, cases []TestCase) ([]Candidate, error) {
	return a.pipeline.Analyze(ctx, cases)
}
