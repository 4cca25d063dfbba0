package cluster

import (
	"errors"
	"reflect"
	"testing"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Close() error                                   { return nil }

// twoGroupSet builds six unit vectors forming two well-separated
// groups on disjoint term sets.
func twoGroupSet() domain.VectorSet {
	return domain.VectorSet{
		Vocabulary: []string{"fails", "login", "logout", "succeeds"},
		Vectors: []domain.TermVector{
			{{Index: 0, Weight: 0.8}, {Index: 1, Weight: 0.6}},
			{{Index: 0, Weight: 0.6}, {Index: 1, Weight: 0.8}},
			{{Index: 2, Weight: 0.8}, {Index: 3, Weight: 0.6}},
			{{Index: 0, Weight: 0.7071}, {Index: 1, Weight: 0.7071}},
			{{Index: 2, Weight: 0.6}, {Index: 3, Weight: 0.8}},
			{{Index: 2, Weight: 0.7071}, {Index: 3, Weight: 0.7071}},
		},
	}
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name:   "zero clusters",
			config: Config{NumClusters: 0, Seed: 42, MaxIterations: 100},
		},
		{
			name:   "negative clusters",
			config: Config{NumClusters: -3, Seed: 42, MaxIterations: 100},
		},
		{
			name:   "zero iteration cap",
			config: Config{NumClusters: 5, Seed: 42, MaxIterations: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.config, noopLogger{})
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestClusterAssignsEveryRecord(t *testing.T) {
	c, err := New(DefaultConfig(), noopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set := twoGroupSet()
	assignment, err := c.Cluster(set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(assignment.Clusters) != len(set.Vectors) {
		t.Fatalf("expected %d assignments, got %d", len(set.Vectors), len(assignment.Clusters))
	}
	for i, cl := range assignment.Clusters {
		if cl < 0 || cl >= assignment.K {
			t.Errorf("record %d assigned to out-of-range cluster %d", i, cl)
		}
	}
}

func TestClusterSeparatesGroups(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumClusters = 2
	c, err := New(cfg, noopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assignment, err := c.Cluster(twoGroupSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Records 0, 1, 3 share terms, as do 2, 4, 5.
	a := assignment.Clusters
	if a[0] != a[1] || a[0] != a[3] {
		t.Errorf("login group split across clusters: %v", a)
	}
	if a[2] != a[4] || a[2] != a[5] {
		t.Errorf("logout group split across clusters: %v", a)
	}
	if a[0] == a[2] {
		t.Errorf("distinct groups merged into one cluster: %v", a)
	}
}

func TestClusterMoreClustersThanPoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumClusters = 10
	c, err := New(cfg, noopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set := domain.VectorSet{
		Vocabulary: []string{"fails", "login"},
		Vectors: []domain.TermVector{
			{{Index: 0, Weight: 1}},
			{{Index: 1, Weight: 1}},
		},
	}
	assignment, err := c.Cluster(set)
	if err != nil {
		t.Fatalf("expected empty clusters, got error: %v", err)
	}
	if assignment.K != 10 {
		t.Fatalf("expected K=10, got %d", assignment.K)
	}
	for i, cl := range assignment.Clusters {
		if cl < 0 || cl >= 10 {
			t.Errorf("record %d assigned to out-of-range cluster %d", i, cl)
		}
	}
}

func TestClusterIdenticalVectorsShareCluster(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumClusters = 2
	c, err := New(cfg, noopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set := domain.VectorSet{
		Vocabulary: []string{"fails", "login", "logout", "succeeds"},
		Vectors: []domain.TermVector{
			{{Index: 0, Weight: 0.7071}, {Index: 1, Weight: 0.7071}},
			{{Index: 0, Weight: 0.7071}, {Index: 1, Weight: 0.7071}},
			{{Index: 2, Weight: 0.7071}, {Index: 3, Weight: 0.7071}},
		},
	}
	assignment, err := c.Cluster(set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assignment.Clusters[0] != assignment.Clusters[1] {
		t.Errorf("identical vectors in different clusters: %v", assignment.Clusters)
	}
}

func TestClusterDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumClusters = 3

	set := twoGroupSet()
	var first []int
	for run := 0; run < 3; run++ {
		c, err := New(cfg, noopLogger{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assignment, err := c.Cluster(set)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run == 0 {
			first = assignment.Clusters
			continue
		}
		if !reflect.DeepEqual(first, assignment.Clusters) {
			t.Fatalf("run %d differs: %v vs %v", run, assignment.Clusters, first)
		}
	}
}

func TestClusterEmptyInput(t *testing.T) {
	c, err := New(DefaultConfig(), noopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = c.Cluster(domain.VectorSet{})
	if !errors.Is(err, domain.ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestAssignmentMembers(t *testing.T) {
	a := domain.Assignment{Clusters: []int{1, 0, 1, 2, 0}, K: 4}
	members := a.Members()
	want := [][]int{{1, 4}, {0, 2}, {3}, nil}
	if !reflect.DeepEqual(members, want) {
		t.Errorf("Members() = %v, want %v", members, want)
	}
}
