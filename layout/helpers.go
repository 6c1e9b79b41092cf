// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

// Package layout is the sole source of geometric truth for a Cheby tree:
// it assigns absolute byte addresses, sizes and alignments to every node,
// validates fields, widths, access modes, overlap and naming uniqueness,
// and reports the first violation of an invariant as a *cherr.LayoutError
// (duplicate sibling names in one composite come back together as a
// cherr.ErrorList).
package layout

import "fmt"

// Ilog2 returns the smallest n such that 2^n >= v. It panics with a
// DomainError-style message for v<=0, matching the source's assertion
// (layout.py's ilog2 asserts val > 0).
func Ilog2(v int) int {
	if v <= 0 {
		panic(fmt.Sprintf("layout: ilog2: domain error, v=%d must be > 0", v))
	}
	n := 0
	p := 1
	for p < v {
		p *= 2
		n++
	}
	return n
}

// RoundPow2 rounds v up to the next power of two (1 if v<=0 would panic
// via Ilog2, so callers must only pass v>0).
func RoundPow2(v int) int {
	return 1 << Ilog2(v)
}

// Align rounds n up to the next multiple of mul.
func Align(n, mul int) int {
	return (n + mul - 1) / mul * mul
}

// IsPow2 reports whether v is an exact power of two (v > 0).
func IsPow2(v int) bool {
	return v > 0 && v&(v-1) == 0
}
