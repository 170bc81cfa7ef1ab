// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"math/rand/v2"
	"testing"
)

// TestSelectorIndexBounds verifies the draw always reduces into [0, n).
func TestSelectorIndexBounds(t *testing.T) {
	sel := NewSelector(nil)
	for n := 1; n <= 7; n++ {
		for i := 0; i < 10000; i++ {
			idx := sel.Index(n)
			if idx < 0 || idx >= n {
				t.Fatalf("Index(%d) = %d, out of range", n, idx)
			}
		}
	}
}

// TestSelectorSingleElement verifies a single group or item is always
// picked at index 0.
func TestSelectorSingleElement(t *testing.T) {
	sel := NewSelector(nil)
	for i := 0; i < 10000; i++ {
		if idx := sel.Index(1); idx != 0 {
			t.Fatalf("Index(1) = %d, want 0", idx)
		}
	}
}

// TestSelectorCoversAllIndexes is a sanity check that the wide-draw
// reduction does not starve any index.
func TestSelectorCoversAllIndexes(t *testing.T) {
	sel := NewSelector(nil)
	hits := make(map[int]int)
	for i := 0; i < 10000; i++ {
		hits[sel.Index(5)]++
	}
	for idx := 0; idx < 5; idx++ {
		if hits[idx] == 0 {
			t.Errorf("index %d never selected in 10000 draws", idx)
		}
	}
}

// TestSelectorDeterministic verifies that a fixed source reproduces the
// same index sequence.
func TestSelectorDeterministic(t *testing.T) {
	a := NewSelector(rand.NewPCG(7, 11))
	b := NewSelector(rand.NewPCG(7, 11))
	for i := 0; i < 100; i++ {
		ia, ib := a.Index(4), b.Index(4)
		if ia != ib {
			t.Fatalf("draw %d diverged: %d vs %d", i, ia, ib)
		}
	}
}

func TestSelectorZeroLength(t *testing.T) {
	sel := NewSelector(nil)
	if idx := sel.Index(0); idx != 0 {
		t.Errorf("Index(0) = %d, want 0", idx)
	}
}
