package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/normalizer"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
	"github.com/baditaflorin/go_testcase_redundancy/pkg/analyzer"
)

// mockLogger implements a minimal logger for benchmarking.
type mockLogger struct{}

func (l *mockLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (l *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
func (l *mockLogger) Close() error                                   { return nil }

// generateCorpus builds a synthetic corpus of the given size. Titles are
// drawn from a fixed set of templates so the corpus contains both
// near-duplicates and unrelated records, like a real export.
func generateCorpus(size int) []domain.TestCase {
	templates := []string{
		"user login succeeds with valid credentials for account %d",
		"user login fails with invalid password for account %d",
		"password reset email is delivered to user %d",
		"session expires after timeout for user %d",
		"profile page renders saved settings for user %d",
		"checkout completes with saved payment method %d",
		"search returns results for query variant %d",
		"report export generates file for dataset %d",
	}
	corpus := make([]domain.TestCase, size)
	for i := 0; i < size; i++ {
		corpus[i] = domain.TestCase{
			ID:           fmt.Sprintf("TC-%d", i+1),
			Title:        fmt.Sprintf(templates[i%len(templates)], i/len(templates)),
			Priority:     "2 - High",
			TestingLevel: "N/A",
		}
	}
	return corpus
}

// BenchmarkAnalyze measures the full pipeline over growing corpus sizes.
func BenchmarkAnalyze(b *testing.B) {
	sizes := []int{50, 200, 1000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("corpus_%d", size), func(b *testing.B) {
			a, err := analyzer.New(analyzer.WithPortLogger(&mockLogger{}))
			if err != nil {
				b.Fatalf("failed to create analyzer: %v", err)
			}
			corpus := generateCorpus(size)
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := a.Analyze(ctx, corpus); err != nil {
					b.Fatalf("analysis failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkAnalyzeClusterCounts measures pipeline cost as k grows.
func BenchmarkAnalyzeClusterCounts(b *testing.B) {
	corpus := generateCorpus(500)
	ctx := context.Background()

	for _, k := range []int{2, 5, 20} {
		b.Run(fmt.Sprintf("k_%d", k), func(b *testing.B) {
			a, err := analyzer.New(
				analyzer.WithPortLogger(&mockLogger{}),
				analyzer.WithNumClusters(k),
			)
			if err != nil {
				b.Fatalf("failed to create analyzer: %v", err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := a.Analyze(ctx, corpus); err != nil {
					b.Fatalf("analysis failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkNormalizers compares the default and the pooled optimized
// normalizer over representative titles.
func BenchmarkNormalizers(b *testing.B) {
	titles := []string{
		"Login fails with invalid password",
		"Export report (CSV) - includes \"Testing level\" & labels!",
		"Verify user_profile.settings persist across sessions, browsers, and devices",
	}

	normalizers := map[string]ports.Normalizer{
		"default":   normalizer.NewDefaultNormalizer(),
		"optimized": normalizer.NewOptimizedNormalizer(),
	}

	for name, n := range normalizers {
		b.Run(name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for _, title := range titles {
					n.Normalize(title)
				}
			}
		})
	}
}
