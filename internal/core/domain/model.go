package domain

import "math"

// TestCase is a single test-case record as supplied by an ingestion source.
type TestCase struct {
	// ID uniquely identifies the record within a corpus.
	ID string
	// Title is the test-case title; comparison is purely lexical on this field.
	Title string
	// Priority is formatted as "<rank> - <label>", e.g. "1 - Critical".
	Priority string
	// CoreDependency is optional; empty when the record has none.
	CoreDependency string
	// Labels is a comma-joined label list.
	Labels string
	// TestingLevel is "N/A" when absent from the source.
	TestingLevel string
}

// Term is one entry of a sparse vector: a vocabulary index and its
// weight.
type Term struct {
	Index  int
	Weight float64
}

// TermVector is a sparse TF-IDF vector, entries ordered by ascending
// term index. Vectors for titles with at least one term have unit L2
// norm; a title with no terms yields the zero vector (empty slice).
// The fixed entry order keeps every accumulation over a vector
// bit-for-bit reproducible, which the pipeline's determinism guarantee
// depends on.
type TermVector []Term

// Dot returns the dot product of two sparse vectors by merging their
// index-ordered entries. For unit vectors this is the cosine
// similarity.
func Dot(a, b TermVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index < b[j].Index:
			i++
		case a[i].Index > b[j].Index:
			j++
		default:
			sum += a[i].Weight * b[j].Weight
			i++
			j++
		}
	}
	return sum
}

// Norm returns the L2 norm of the vector.
func (v TermVector) Norm() float64 {
	var sum float64
	for _, t := range v {
		sum += t.Weight * t.Weight
	}
	return math.Sqrt(sum)
}

// VectorSet holds the vectorized corpus: one vector per input document,
// positionally aligned with input order, plus the shared vocabulary.
type VectorSet struct {
	// Vocabulary is the sorted list of distinct corpus terms; vector
	// indices refer to positions in this slice.
	Vocabulary []string
	// Vectors holds one sparse vector per input document.
	Vectors []TermVector
}

// Assignment maps each record position to a cluster index in [0, K).
type Assignment struct {
	// Clusters[i] is the cluster index of record i.
	Clusters []int
	// K is the configured cluster count; clusters may be empty when K
	// exceeds the number of distinguishable records.
	K int
}

// Members returns the record positions assigned to each cluster, in
// input order. The outer slice is indexed by cluster id.
func (a Assignment) Members() [][]int {
	members := make([][]int, a.K)
	for i, c := range a.Clusters {
		members[c] = append(members[c], i)
	}
	return members
}

// Fixed annotation values carried by every emitted candidate. They are
// placeholders for downstream manual triage, not computed judgments.
const (
	DefaultReason       = "Functional overlap"
	DefaultReviewStatus = "Not Started"
	DefaultResolution   = "Keep both"
)

// Candidate is a pair of records flagged as likely duplicates, pending
// human review. Immutable once emitted.
type Candidate struct {
	ClusterID    int
	Case1        TestCase
	Case2        TestCase
	Score        float64
	Reason       string
	ReviewStatus string
	Resolution   string
	ToRemove     string
}
