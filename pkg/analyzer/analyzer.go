package analyzer

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/logger"
	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/normalizer"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/pipeline"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
	"github.com/baditaflorin/go_testcase_redundancy/internal/warmup"
)

// Analyzer provides the structured API for redundancy analysis.
type Analyzer struct {
	pipeline   *pipeline.Pipeline
	logger     ports.Logger
	normalizer ports.Normalizer
	warmed     bool
}

// Option defines a functional option for configuring the Analyzer.
type Option func(*analyzerConfig)

type analyzerConfig struct {
	Pipeline     pipeline.Config
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	WarmUp       bool
	WarmUpConfig warmup.Config
}

// WithNumClusters sets a custom k-means cluster count.
func WithNumClusters(k int) Option {
	return func(cfg *analyzerConfig) {
		cfg.Pipeline.Cluster.NumClusters = k
	}
}

// WithSeed sets a custom clustering seed.
func WithSeed(seed int64) Option {
	return func(cfg *analyzerConfig) {
		cfg.Pipeline.Cluster.Seed = seed
	}
}

// WithMaxIterations sets a custom k-means iteration cap.
func WithMaxIterations(n int) Option {
	return func(cfg *analyzerConfig) {
		cfg.Pipeline.Cluster.MaxIterations = n
	}
}

// WithThresholds sets custom primary and priority thresholds.
func WithThresholds(primary, priority float64) Option {
	return func(cfg *analyzerConfig) {
		cfg.Pipeline.Classifier.PrimaryThreshold = primary
		cfg.Pipeline.Classifier.PriorityThreshold = priority
	}
}

// WithPipelineConfig sets the whole pipeline configuration at once.
func WithPipelineConfig(pc pipeline.Config) Option {
	return func(cfg *analyzerConfig) {
		cfg.Pipeline = pc
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *analyzerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithPortLogger sets a custom ports.Logger directly.
func WithPortLogger(lg ports.Logger) Option {
	return func(cfg *analyzerConfig) {
		cfg.Logger = lg
	}
}

// WithNormalizer sets a custom title normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *analyzerConfig) {
		cfg.Normalizer = n
	}
}

// WithOptimizedNormalizer sets the pooled ASCII fast-path normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *analyzerConfig) {
		cfg.Normalizer = normalizer.NewOptimizedNormalizer()
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *analyzerConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.Config) Option {
	return func(cfg *analyzerConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Analyzer instance.
func New(opts ...Option) (*Analyzer, error) {
	config := &analyzerConfig{
		Pipeline:     pipeline.DefaultConfig(),
		WarmUp:       false,
		WarmUpConfig: warmup.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	p, err := pipeline.New(config.Pipeline, config.Logger, config.Normalizer)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		pipeline:   p,
		logger:     config.Logger,
		normalizer: config.Normalizer,
	}

	if config.WarmUp {
		a.WarmUp(context.Background(), config.WarmUpConfig)
	}
	return a, nil
}

// Analyze runs the full redundancy analysis over the corpus.
func (a *Analyzer) Analyze(ctx context.Context, cases []domain.TestCase) ([]domain.Candidate, error) {
	return a.pipeline.Analyze(ctx, cases)
}

// WarmUp exercises the analysis components ahead of real traffic.
func (a *Analyzer) WarmUp(ctx context.Context, config warmup.Config) {
	if a.warmed {
		a.logger.Debug("System already warmed up, skipping")
		return
	}

	mgr := warmup.NewManager(a.logger, config)
	mgr.RegisterAnalyzer(a)
	mgr.RegisterNormalizer(a.normalizer)
	mgr.WarmUp(ctx)
	a.warmed = true
}
