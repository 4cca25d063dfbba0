// Package warmup exercises the analysis components before serving
// traffic so allocator and scheduler warm-up does not land on the first
// request.
package warmup

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// Config defines configuration for warming up the system.
type Config struct {
	// Number of concurrent warmup routines to run.
	Concurrency int
	// Number of iterations per routine.
	Iterations int
	// Warmup duration (0 means no time limit).
	Duration time.Duration
	// Whether to perform GC after warmup.
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
		Iterations:  50,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations.
type Manager struct {
	logger      ports.Logger
	analyzers   []ports.RedundancyAnalyzer
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{logger: logger, config: config}
}

// RegisterAnalyzer adds an analyzer to be warmed up.
func (wm *Manager) RegisterAnalyzer(a ports.RedundancyAnalyzer) {
	wm.analyzers = append(wm.analyzers, a)
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (wm *Manager) RegisterNormalizer(n ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, n)
}

// WarmUp runs the warmup process for all registered components.
func (wm *Manager) WarmUp(ctx context.Context) {
	start := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.analyzers)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	corpus := sampleCorpus()

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-warmupCtx.Done():
					return
				default:
				}
				for _, n := range wm.normalizers {
					for _, tc := range corpus {
						n.Normalize(tc.Title)
					}
				}
				for _, a := range wm.analyzers {
					if _, err := a.Analyze(warmupCtx, corpus); err != nil {
						wm.logger.Warn("Warmup analysis failed", "error", err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed", "duration", time.Since(start))
}

// sampleCorpus builds a small synthetic corpus that exercises every
// pipeline stage, including at least one near-duplicate pair.
func sampleCorpus() []domain.TestCase {
	titles := []string{
		"user login succeeds with valid credentials",
		"user login succeeds with valid credentials and remember me",
		"user login fails with invalid password",
		"password reset email is delivered",
		"session expires after configured timeout",
		"profile page renders saved settings",
	}
	corpus := make([]domain.TestCase, len(titles))
	for i, title := range titles {
		corpus[i] = domain.TestCase{
			ID:           fmt.Sprintf("WARM-%d", i+1),
			Title:        title,
			Priority:     "2 - High",
			TestingLevel: "N/A",
		}
	}
	return corpus
}
