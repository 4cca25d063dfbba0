package domain

import (
	"math"
	"testing"
)

func TestDotBitStableAcrossCalls(t *testing.T) {
	// Dot sums by merging index-ordered entries, so repeated calls on
	// the same inputs must produce the same bits, not just nearly
	// equal values.
	a := TermVector{
		{Index: 2, Weight: 0.11}, {Index: 5, Weight: 0.23},
		{Index: 9, Weight: 0.31}, {Index: 14, Weight: 0.07},
		{Index: 21, Weight: 0.42}, {Index: 33, Weight: 0.19},
		{Index: 40, Weight: 0.27}, {Index: 52, Weight: 0.13},
		{Index: 61, Weight: 0.36},
	}
	b := TermVector{
		{Index: 2, Weight: 0.29}, {Index: 5, Weight: 0.17},
		{Index: 9, Weight: 0.05}, {Index: 14, Weight: 0.44},
		{Index: 21, Weight: 0.21}, {Index: 33, Weight: 0.33},
		{Index: 40, Weight: 0.09}, {Index: 52, Weight: 0.25},
		{Index: 61, Weight: 0.12},
	}

	first := math.Float64bits(Dot(a, b))
	for i := 0; i < 20000; i++ {
		if got := math.Float64bits(Dot(a, b)); got != first {
			t.Fatalf("call %d: %016x, want %016x", i, got, first)
		}
	}
}

func TestNormBitStableAcrossCalls(t *testing.T) {
	v := TermVector{
		{Index: 1, Weight: 0.31}, {Index: 4, Weight: 0.18},
		{Index: 7, Weight: 0.26}, {Index: 12, Weight: 0.41},
		{Index: 19, Weight: 0.09}, {Index: 27, Weight: 0.35},
		{Index: 38, Weight: 0.22},
	}

	first := math.Float64bits(v.Norm())
	for i := 0; i < 20000; i++ {
		if got := math.Float64bits(v.Norm()); got != first {
			t.Fatalf("call %d: %016x, want %016x", i, got, first)
		}
	}
}

func TestDotDisjointAndPartialOverlap(t *testing.T) {
	a := TermVector{{Index: 0, Weight: 0.6}, {Index: 2, Weight: 0.8}}
	b := TermVector{{Index: 1, Weight: 1}}
	if got := Dot(a, b); got != 0 {
		t.Errorf("disjoint vectors: dot = %v, want 0", got)
	}

	c := TermVector{{Index: 2, Weight: 0.5}, {Index: 3, Weight: 0.5}}
	if got, want := Dot(a, c), 0.8*0.5; math.Abs(got-want) > 1e-15 {
		t.Errorf("partial overlap: dot = %v, want %v", got, want)
	}
}
