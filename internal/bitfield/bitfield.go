// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

// Package bitfield tracks bit occupancy within a register during layout
// (spec §4.2: "allocate a bit-occupancy vector of length width"). It is a
// thin, named wrapper over github.com/bits-and-blooms/bitset — the same
// dependency the teacher repository (github.com/gaissmai/bart) uses for
// its own occupancy tracking in allot_tbl.go and fatnode.go — so that the
// occupant-tracking call sites in package layout read as "mark these bits
// occupied" rather than raw word-mask arithmetic.
package bitfield

import "github.com/bits-and-blooms/bitset"

// Occupancy tracks, for a single register, which bit positions are
// already claimed by a field, and by which one (for overlap diagnostics).
type Occupancy struct {
	set   *bitset.BitSet
	owner []string // owner[i] is the field name that claimed bit i, if any.
}

// NewOccupancy allocates an occupancy vector for a register of the given
// bit width.
func NewOccupancy(width int) *Occupancy {
	return &Occupancy{
		set:   bitset.New(uint(width)),
		owner: make([]string, width),
	}
}

// Claim marks bits lo..hi (inclusive) as owned by name. It returns the
// name of the first already-owned bit in that range, or "" if the whole
// range was free and is now claimed.
func (o *Occupancy) Claim(lo, hi int, name string) (conflictOwner string, conflictBit int) {
	for i := lo; i <= hi; i++ {
		if o.set.Test(uint(i)) {
			return o.owner[i], i
		}
	}
	for i := lo; i <= hi; i++ {
		o.set.Set(uint(i))
		o.owner[i] = name
	}
	return "", -1
}

// Width reports the number of bits tracked.
func (o *Occupancy) Width() int { return len(o.owner) }
