// Package scorer computes pairwise cosine similarity between test-case
// vectors within each cluster. Inter-cluster pairs are never scored;
// this bounds pairwise cost to the sum of squared cluster sizes at the
// deliberate cost of missing cross-cluster duplicates.
package scorer

import (
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// PairScore is the cosine similarity of one unordered intra-cluster
// pair. Index1 and Index2 are record positions in the input corpus,
// Index1 strictly less than Index2.
type PairScore struct {
	ClusterID int
	Index1    int
	Index2    int
	Score     float64
}

// Scorer enumerates and scores intra-cluster pairs.
type Scorer struct {
	logger ports.Logger
}

// New creates a new Scorer.
func New(logger ports.Logger) *Scorer {
	return &Scorer{logger: logger}
}

// Score returns the cosine similarity for every unordered pair of
// distinct records sharing a cluster. Clusters are processed in index
// order and members in input-record order, so the output order is
// deterministic for a fixed clustering. Vectors are unit-normalized, so
// cosine similarity is their dot product.
func (s *Scorer) Score(set domain.VectorSet, assignment domain.Assignment) []PairScore {
	var scores []PairScore
	for clusterID, members := range assignment.Members() {
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := members[i], members[j]
				scores = append(scores, PairScore{
					ClusterID: clusterID,
					Index1:    a,
					Index2:    b,
					Score:     domain.Dot(set.Vectors[a], set.Vectors[b]),
				})
			}
		}
	}

	s.logger.Debug("Scored intra-cluster pairs", "pairs", len(scores))
	return scores
}
