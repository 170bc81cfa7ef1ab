// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "math/rand/v2"

// Selector draws indexes for the two-stage fair selection. Instead of
// drawing directly in [0, n) it draws from [n*10000, n*90000] and reduces
// by modulus. Low-entropy sources visibly favor first/last elements on
// small direct ranges; the wide draw avoids that and is kept for
// behavioral compatibility with the original service.
//
// A Selector is not safe for concurrent use. Each Session owns one and
// calls it under the session lock.
type Selector struct {
	rng *rand.Rand
}

// NewSelector returns a Selector backed by src, or by a freshly seeded
// PCG source when src is nil. Selection is deliberately not
// cryptographic; it only needs to be uniform.
func NewSelector(src rand.Source) *Selector {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Selector{rng: rand.New(src)}
}

// Index returns a uniform index in [0, n). n must be positive.
func (sel *Selector) Index(n int) int {
	if n <= 0 {
		return 0
	}
	lo := int64(n) * 10000
	hi := int64(n) * 90000
	rnd := lo + sel.rng.Int64N(hi-lo+1)
	return int(rnd % int64(n))
}
