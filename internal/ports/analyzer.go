package ports

import (
	"context"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
)

// RedundancyAnalyzer defines the interface for running the full
// redundancy analysis over a corpus of test cases.
type RedundancyAnalyzer interface {
	Analyze(ctx context.Context, cases []domain.TestCase) ([]domain.Candidate, error)
}
