// Package pipeline sequences the redundancy analysis: vectorize all
// titles, cluster the vectors, score intra-cluster pairs, classify each
// score, and collect the resulting candidates. Any stage failure aborts
// the whole run; no partial output is produced.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/classifier"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/cluster"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/scorer"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/vectorizer"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// Config aggregates the per-stage configuration.
type Config struct {
	Cluster    cluster.Config
	Classifier classifier.Config
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Cluster:    cluster.DefaultConfig(),
		Classifier: classifier.DefaultConfig(),
	}
}

// Pipeline runs the four analysis stages in order.
type Pipeline struct {
	vectorizer *vectorizer.Vectorizer
	clusterer  *cluster.Clusterer
	scorer     *scorer.Scorer
	classifier *classifier.Classifier
	normalizer ports.Normalizer
	logger     ports.Logger
}

// New creates a new Pipeline. Returns an error if any stage
// configuration is invalid.
func New(config Config, logger ports.Logger, normalizer ports.Normalizer) (*Pipeline, error) {
	clusterer, err := cluster.New(config.Cluster, logger)
	if err != nil {
		return nil, err
	}
	clf, err := classifier.New(config.Classifier, logger)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		vectorizer: vectorizer.New(logger),
		clusterer:  clusterer,
		scorer:     scorer.New(logger),
		classifier: clf,
		normalizer: normalizer,
		logger:     logger,
	}, nil
}

// Analyze runs the full analysis over the corpus and returns the
// ordered candidate list. Output order is the concatenation of
// per-cluster pair lists in cluster index order, so identical input and
// configuration always produce an identical candidate sequence.
func (p *Pipeline) Analyze(ctx context.Context, cases []domain.TestCase) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	p.logger.Info("Starting redundancy analysis", "records", len(cases))

	// Candidates snapshot the input records with labels lowercased,
	// the same folding applied to titles.
	records := make([]domain.TestCase, len(cases))
	titles := make([]string, len(cases))
	for i, tc := range cases {
		titles[i] = p.normalizer.Normalize(tc.Title)
		tc.Labels = strings.ToLower(tc.Labels)
		records[i] = tc
	}

	set, err := p.vectorizer.Vectorize(titles)
	if err != nil {
		return nil, err
	}

	assignment, err := p.clusterer.Cluster(set)
	if err != nil {
		return nil, err
	}

	scores := p.scorer.Score(set, assignment)
	candidates := p.classifier.Classify(records, scores)

	p.logger.Info("Redundancy analysis complete",
		"records", len(cases),
		"candidates", len(candidates),
	)
	return candidates, nil
}
