// Package classifier applies the redundancy threshold rules to scored
// pairs. A pair is redundant when
//
//	score >= PrimaryThreshold
//	  OR (score >= PriorityThreshold AND either record is top priority)
//
// With the default thresholds (0.75 and 0.80) the second disjunct is
// mathematically subsumed by the first. The rule is kept in this form
// on purpose: the thresholds are configurable, and downstream review
// documentation describes the rule exactly this way.
package classifier

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/scorer"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// Default configuration values.
const (
	DefaultPrimaryThreshold  = 0.75
	DefaultPriorityThreshold = 0.80

	// topPriorityPrefix marks a record as top priority; priorities are
	// formatted "<rank> - <label>".
	topPriorityPrefix = "1 -"
)

// Config holds the classification thresholds.
type Config struct {
	// PrimaryThreshold flags any pair scoring at or above it.
	PrimaryThreshold float64
	// PriorityThreshold flags pairs at or above it when either record
	// is top priority.
	PriorityThreshold float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		PrimaryThreshold:  DefaultPrimaryThreshold,
		PriorityThreshold: DefaultPriorityThreshold,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.PrimaryThreshold < 0 || c.PrimaryThreshold > 1 {
		return fmt.Errorf("%w: primary threshold must be between 0 and 1, got %v",
			domain.ErrInvalidConfig, c.PrimaryThreshold)
	}
	if c.PriorityThreshold < 0 || c.PriorityThreshold > 1 {
		return fmt.Errorf("%w: priority threshold must be between 0 and 1, got %v",
			domain.ErrInvalidConfig, c.PriorityThreshold)
	}
	return nil
}

// Classifier labels scored pairs as redundancy candidates.
type Classifier struct {
	config Config
	logger ports.Logger
}

// New creates a new Classifier. Returns an error if the configuration
// is invalid.
func New(config Config, logger ports.Logger) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{config: config, logger: logger}, nil
}

// IsTopPriority reports whether a priority string marks a top-priority
// record.
func IsTopPriority(priority string) bool {
	return strings.HasPrefix(priority, topPriorityPrefix)
}

// Classify turns every qualifying scored pair into one Candidate
// carrying both full record snapshots, the raw score, and the fixed
// annotation fields. Non-qualifying pairs are discarded silently.
func (c *Classifier) Classify(cases []domain.TestCase, scores []scorer.PairScore) []domain.Candidate {
	var candidates []domain.Candidate
	for _, ps := range scores {
		case1, case2 := cases[ps.Index1], cases[ps.Index2]
		if !c.redundant(ps.Score, case1, case2) {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			ClusterID:    ps.ClusterID,
			Case1:        case1,
			Case2:        case2,
			Score:        ps.Score,
			Reason:       domain.DefaultReason,
			ReviewStatus: domain.DefaultReviewStatus,
			Resolution:   domain.DefaultResolution,
			ToRemove:     "",
		})
	}

	c.logger.Debug("Classified scored pairs",
		"pairs", len(scores),
		"candidates", len(candidates),
	)
	return candidates
}

func (c *Classifier) redundant(score float64, case1, case2 domain.TestCase) bool {
	if score >= c.config.PrimaryThreshold {
		return true
	}
	return score >= c.config.PriorityThreshold &&
		(IsTopPriority(case1.Priority) || IsTopPriority(case2.Priority))
}
