// Package vectorizer converts normalized test-case titles into weighted
// term vectors using smoothed TF-IDF:
//
//	idf(t) = ln((1+N)/(1+df(t))) + 1
//
// where N is the corpus size and df(t) the number of documents
// containing term t. Each document vector is the raw term counts scaled
// by idf and then L2-normalized, so cosine similarity between two
// vectors reduces to their dot product.
package vectorizer

import (
	"fmt"
	"math"
	"sort"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// Vectorizer builds TF-IDF vectors over a whole corpus of titles.
type Vectorizer struct {
	logger ports.Logger
}

// New creates a new Vectorizer.
func New(logger ports.Logger) *Vectorizer {
	return &Vectorizer{logger: logger}
}

// Vectorize builds the corpus vocabulary and one sparse unit-norm vector
// per title, positionally aligned with the input order. Titles are
// expected to be lowercase-normalized already. The vocabulary and the
// weights do not depend on document order. Returns ErrEmptyCorpus when
// given zero titles; an all-empty-title corpus yields all-zero vectors.
func (v *Vectorizer) Vectorize(titles []string) (domain.VectorSet, error) {
	if len(titles) == 0 {
		return domain.VectorSet{}, fmt.Errorf("vectorize: %w", domain.ErrEmptyCorpus)
	}

	n := len(titles)
	docs := make([][]string, n)
	for i, title := range titles {
		docs[i] = Tokenize(title)
	}

	// Document frequency per term, independent of document order.
	df := make(map[string]int)
	for _, terms := range docs {
		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for t := range df {
		vocab = append(vocab, t)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	for i, t := range vocab {
		index[t] = i
	}

	idf := make([]float64, len(vocab))
	for i, t := range vocab {
		idf[i] = math.Log(float64(1+n)/float64(1+df[t])) + 1
	}

	vectors := make([]domain.TermVector, n)
	for i, terms := range docs {
		counts := make(map[int]float64, len(terms))
		for _, t := range terms {
			counts[index[t]]++
		}

		// Emit entries in ascending index order so every later
		// accumulation over the vector is reproducible.
		vec := make(domain.TermVector, 0, len(counts))
		for j := range counts {
			vec = append(vec, domain.Term{Index: j})
		}
		sort.Slice(vec, func(a, b int) bool { return vec[a].Index < vec[b].Index })
		for j := range vec {
			vec[j].Weight = counts[vec[j].Index] * idf[vec[j].Index]
		}
		normalize(vec)
		vectors[i] = vec
	}

	v.logger.Debug("Vectorized corpus",
		"documents", n,
		"vocabulary_size", len(vocab),
	)

	return domain.VectorSet{Vocabulary: vocab, Vectors: vectors}, nil
}

// normalize scales vec to unit L2 norm in place. The zero vector is
// left untouched.
func normalize(vec domain.TermVector) {
	norm := vec.Norm()
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i].Weight /= norm
	}
}
