// Package cluster partitions TF-IDF vectors into a fixed number of
// groups by iterative centroid relocation (k-means) under Euclidean
// distance. Initialization is driven by a fixed seed so that, for a
// given input and k, the grouping is reproducible run to run.
package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// Default configuration values.
const (
	DefaultNumClusters   = 5
	DefaultSeed          = 42
	DefaultMaxIterations = 100
)

// Config holds configuration for the k-means clusterer.
type Config struct {
	// NumClusters is the target cluster count k; must be positive.
	NumClusters int
	// Seed drives centroid initialization.
	Seed int64
	// MaxIterations caps the relocation loop so clustering terminates
	// even without full convergence.
	MaxIterations int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		NumClusters:   DefaultNumClusters,
		Seed:          DefaultSeed,
		MaxIterations: DefaultMaxIterations,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.NumClusters <= 0 {
		return fmt.Errorf("%w: num_clusters must be greater than 0, got %d",
			domain.ErrInvalidConfig, c.NumClusters)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be greater than 0, got %d",
			domain.ErrInvalidConfig, c.MaxIterations)
	}
	return nil
}

// Clusterer implements seeded k-means over sparse vectors.
type Clusterer struct {
	config Config
	logger ports.Logger
}

// New creates a new Clusterer. Returns an error if the configuration is
// invalid.
func New(config Config, logger ports.Logger) (*Clusterer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Clusterer{config: config, logger: logger}, nil
}

// Cluster assigns every vector to exactly one of k clusters. Clusters
// may end up empty when k exceeds the number of distinguishable points;
// that is not an error. Ties on the nearest centroid go to the lowest
// cluster index, which keeps assignments deterministic.
func (c *Clusterer) Cluster(set domain.VectorSet) (domain.Assignment, error) {
	n := len(set.Vectors)
	if n == 0 {
		return domain.Assignment{}, fmt.Errorf("cluster: %w", domain.ErrEmptyCorpus)
	}
	k := c.config.NumClusters

	centroids := c.initCentroids(set, k)

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}

	iterations := 0
	for ; iterations < c.config.MaxIterations; iterations++ {
		changed := false
		for i, vec := range set.Vectors {
			best := nearest(vec, centroids)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		recompute(centroids, set.Vectors, assignments)
	}

	c.logger.Debug("Clustered corpus",
		"records", n,
		"num_clusters", k,
		"iterations", iterations,
	)

	return domain.Assignment{Clusters: assignments, K: k}, nil
}

// initCentroids seeds the k centroids from a deterministic permutation
// of the input points. When k exceeds the point count the surplus
// centroids duplicate existing points; duplicates never win the
// lowest-index tie-break, so their clusters simply stay empty.
func (c *Clusterer) initCentroids(set domain.VectorSet, k int) []*centroid {
	rng := rand.New(rand.NewSource(c.config.Seed))
	perm := rng.Perm(len(set.Vectors))

	centroids := make([]*centroid, k)
	for j := 0; j < k; j++ {
		centroids[j] = newCentroid(set.Vectors[perm[j%len(perm)]], len(set.Vocabulary))
	}
	return centroids
}

// centroid is a dense cluster center with a cached squared norm.
type centroid struct {
	coords []float64
	normSq float64
}

func newCentroid(vec domain.TermVector, dim int) *centroid {
	ct := &centroid{coords: make([]float64, dim)}
	for _, t := range vec {
		ct.coords[t.Index] = t.Weight
	}
	ct.refresh()
	return ct
}

func (ct *centroid) refresh() {
	var sum float64
	for _, w := range ct.coords {
		sum += w * w
	}
	ct.normSq = sum
}

// distSq returns the squared Euclidean distance between a sparse point
// and the centroid: ||x||^2 + ||c||^2 - 2*x.c.
func (ct *centroid) distSq(vec domain.TermVector) float64 {
	var dot, xNormSq float64
	for _, t := range vec {
		dot += t.Weight * ct.coords[t.Index]
		xNormSq += t.Weight * t.Weight
	}
	return xNormSq + ct.normSq - 2*dot
}

// nearest returns the index of the closest centroid, lowest index first
// on ties.
func nearest(vec domain.TermVector, centroids []*centroid) int {
	best := 0
	bestDist := math.Inf(1)
	for j, ct := range centroids {
		if d := ct.distSq(vec); d < bestDist {
			best = j
			bestDist = d
		}
	}
	return best
}

// recompute replaces each non-empty cluster's centroid with the mean of
// its members. Empty clusters keep their previous centroid.
func recompute(centroids []*centroid, vectors []domain.TermVector, assignments []int) {
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))

	for i, vec := range vectors {
		j := assignments[i]
		if sums[j] == nil {
			sums[j] = make([]float64, len(centroids[j].coords))
		}
		counts[j]++
		for _, t := range vec {
			sums[j][t.Index] += t.Weight
		}
	}

	for j, ct := range centroids {
		if counts[j] == 0 {
			continue
		}
		inv := 1 / float64(counts[j])
		for idx := range sums[j] {
			sums[j][idx] *= inv
		}
		ct.coords = sums[j]
		ct.refresh()
	}
}
