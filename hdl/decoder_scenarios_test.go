// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package hdl

import (
	"fmt"
	"testing"

	"github.com/cheby-hdl/cheby/hdlir"
	"github.com/cheby-hdl/cheby/tree"
)

func wbRoot(endian string) *tree.Root {
	r := tree.NewRoot()
	r.NodeName = "Top"
	r.CWordSize = 4
	r.CAddrWordBits = 2
	r.CWordBits = 32
	r.CWordEndian = endian
	if endian == "" {
		r.CWordEndian = "little"
	}
	return r
}

func regLeaf(name string, sizeBytes, addr int) Leaf {
	reg := tree.NewRegister()
	reg.NodeName = name
	reg.CSize = sizeBytes
	reg.CAlign = sizeBytes
	reg.Width = sizeBytes * byteSize
	reg.Access = tree.AccessRW
	return Leaf{Node: reg, AbsAddr: addr}
}

// branch records one call of the test's emit callback, keyed by the leaf's
// name ("" on the default branch) and the bit offset it was given.
type branch struct {
	name   string
	offset int
}

func recordBranches(t *testing.T, root *tree.Root, leaves []Leaf, hi int) []branch {
	t.Helper()
	var got []branch
	emit := func(out hdlir.StmtSink, leaf tree.Node, bitOffset int) error {
		name := ""
		if leaf != nil {
			name = leaf.Name()
		}
		got = append(got, branch{name: name, offset: bitOffset})
		return nil
	}
	out := &hdlir.StmtList{}
	addr := hdlir.NewRef("addr")
	if err := AddBlockDecoder(root, out, addr, leaves, hi, emit, 0); err != nil {
		t.Fatalf("AddBlockDecoder: %v", err)
	}
	return got
}

// S1: two 32-bit registers at 0 and 4 decode to two branches plus default,
// both at bit_offset 0.
func TestDecoderS1TwoAdjacentRegisters(t *testing.T) {
	root := wbRoot("little")
	leaves := []Leaf{regLeaf("A", 4, 0), regLeaf("B", 4, 4)}
	got := recordBranches(t, root, leaves, 4)

	want := []branch{{"A", 0}, {"B", 0}, {"", 0}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("branches = %v, want %v", got, want)
	}
}

// S2: same but B moved to byte offset 8 — still two branches plus default,
// decoded against the same address window.
func TestDecoderS2RegisterGap(t *testing.T) {
	root := wbRoot("little")
	leaves := []Leaf{regLeaf("A", 4, 0), regLeaf("B", 4, 8)}
	got := recordBranches(t, root, leaves, 4)

	want := []branch{{"A", 0}, {"B", 0}, {"", 0}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("branches = %v, want %v", got, want)
	}
}

// S3: a single 64-bit register splits across two words; little-endian
// gives bit_offset 0 then 32.
func TestDecoderS3MultiWordLittleEndian(t *testing.T) {
	root := wbRoot("little")
	leaves := []Leaf{regLeaf("R", 8, 0)}
	got := recordBranches(t, root, leaves, 4)

	want := []branch{{"R", 0}, {"R", 32}, {"", 0}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("branches = %v, want %v", got, want)
	}
}

// S4: S3 with word_endian=big reverses the bit_offset order.
func TestDecoderS4MultiWordBigEndian(t *testing.T) {
	root := wbRoot("big")
	leaves := []Leaf{regLeaf("R", 8, 0)}
	got := recordBranches(t, root, leaves, 4)

	want := []branch{{"R", 32}, {"R", 0}, {"", 0}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("branches = %v, want %v", got, want)
	}
}

// Universal property 3 (coverage): every leaf appears in exactly one
// branch, and a default branch is always emitted.
func TestDecoderCoverage(t *testing.T) {
	root := wbRoot("little")
	leaves := []Leaf{regLeaf("A", 4, 0), regLeaf("B", 4, 4), regLeaf("C", 4, 12)}
	got := recordBranches(t, root, leaves, 4)

	seen := map[string]int{}
	for _, b := range got {
		seen[b.name]++
	}
	for _, want := range []string{"A", "B", "C"} {
		if seen[want] != 1 {
			t.Errorf("leaf %q emitted %d times, want 1", want, seen[want])
		}
	}
	if seen[""] != 1 {
		t.Errorf("default branch emitted %d times, want 1", seen[""])
	}
}

// Universal property 6 (deterministic output): running the decoder twice
// over the same tree produces the same branch sequence.
func TestDecoderDeterministic(t *testing.T) {
	root := wbRoot("little")
	leaves := []Leaf{regLeaf("A", 4, 0), regLeaf("B", 4, 4), regLeaf("C", 4, 12)}
	got1 := recordBranches(t, root, leaves, 4)
	got2 := recordBranches(t, root, leaves, 4)
	if fmt.Sprint(got1) != fmt.Sprint(got2) {
		t.Errorf("non-deterministic decode: %v vs %v", got1, got2)
	}
}
