// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package layout

import (
	"errors"
	"testing"

	"github.com/cheby-hdl/cheby/cherr"
	"github.com/cheby-hdl/cheby/tree"
)

func newTestRoot(children ...tree.Node) *tree.Root {
	r := tree.NewRoot()
	r.NodeName = "Top"
	r.Bus = "wb-32-be"
	for _, c := range children {
		r.AddChild(c)
	}
	return r
}

func newReg(name string, width int, access tree.AccessMode) *tree.Register {
	reg := tree.NewRegister()
	reg.NodeName = name
	reg.Width = width
	reg.Access = access
	return reg
}

func field(name string, lo int, hi *int) *tree.Field {
	f := tree.NewField()
	f.NodeName = name
	f.Lo = lo
	f.Hi = hi
	return f
}

func intp(v int) *int { return &v }

// S5: a register with two disjoint fields lays out cleanly.
func TestLayoutS5FieldsDisjoint(t *testing.T) {
	r := newReg("R", 32, tree.AccessRW)
	f0 := field("f0", 0, nil)
	f1 := field("f1", 4, intp(7))
	r.AddField(f0)
	r.AddField(f1)
	root := newTestRoot(r)

	if err := Layout(root); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if f0.CWidth != 1 {
		t.Errorf("f0.CWidth = %d, want 1", f0.CWidth)
	}
	if f1.CWidth != 4 {
		t.Errorf("f1.CWidth = %d, want 4", f1.CWidth)
	}
}

// S6: a third field overlapping f1 fails with FieldOverlap.
func TestLayoutS6FieldOverlap(t *testing.T) {
	r := newReg("R", 32, tree.AccessRW)
	f0 := field("f0", 0, nil)
	f1 := field("f1", 4, intp(7))
	f2 := field("f2", 3, intp(5))
	r.AddField(f0)
	r.AddField(f1)
	r.AddField(f2)
	root := newTestRoot(r)

	err := Layout(root)
	if err == nil {
		t.Fatal("Layout: want FieldOverlap error, got nil")
	}
	var lerr *cherr.LayoutError
	if !errors.As(err, &lerr) {
		t.Fatalf("Layout: error %v is not a *cherr.LayoutError", err)
	}
	if lerr.Kind != cherr.FieldOverlap {
		t.Errorf("Kind = %v, want FieldOverlap", lerr.Kind)
	}
}

// S7: an aligned Block rounds its size and alignment to the next power of
// two and places children at the cursor.
func TestLayoutS7BlockAlignment(t *testing.T) {
	a := newReg("A", 32, tree.AccessRW)
	c := newReg("C", 64, tree.AccessRW)

	b := tree.NewBlock()
	b.NodeName = "B"
	b.AddChild(a)
	b.AddChild(c)

	root := newTestRoot(b)
	if err := Layout(root); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if b.CSize != 16 {
		t.Errorf("B.CSize = %d, want 16", b.CSize)
	}
	if b.CAlign != 16 {
		t.Errorf("B.CAlign = %d, want 16", b.CAlign)
	}
	if a.CAddress != 0 {
		t.Errorf("A.CAddress = %d, want 0", a.CAddress)
	}
	if c.CAddress != 8 {
		t.Errorf("C.CAddress = %d, want 8", c.CAddress)
	}
}

// Universal property: totality of layout. Every computed attribute is a
// non-negative, alignment-respecting integer.
func TestLayoutTotality(t *testing.T) {
	a := newReg("A", 32, tree.AccessRW)
	bb := newReg("B", 32, tree.AccessRW)
	root := newTestRoot(a, bb)

	if err := Layout(root); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	for _, n := range []tree.Node{root, a, bb} {
		align := alignOf(n)
		if align <= 0 || !IsPow2(align) {
			t.Errorf("%s: CAlign = %d, not a positive power of two", tree.Path(n), align)
		}
	}
	if a.CAddress%a.CAlign != 0 {
		t.Errorf("A.CAddress %d not a multiple of CAlign %d", a.CAddress, a.CAlign)
	}
	if bb.CAddress%bb.CAlign != 0 {
		t.Errorf("B.CAddress %d not a multiple of CAlign %d", bb.CAddress, bb.CAlign)
	}
}

// Universal property: non-overlap among laid-out siblings, sorted by
// address.
func TestLayoutNonOverlap(t *testing.T) {
	a := newReg("A", 32, tree.AccessRW)
	bb := newReg("B", 64, tree.AccessRW)
	cc := newReg("C", 32, tree.AccessRW)
	root := newTestRoot(a, bb, cc)

	if err := Layout(root); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	children := root.Children()
	for i := 0; i+1 < len(children); i++ {
		lo := addressOf(children[i])
		loSize := sizeOf(children[i])
		hi := addressOf(children[i+1])
		if hi < lo+loSize {
			t.Errorf("children[%d] (end %d) overlaps children[%d] (start %d)", i, lo+loSize, i+1, hi)
		}
	}
}

func TestLayoutUnknownBus(t *testing.T) {
	root := newTestRoot(newReg("A", 32, tree.AccessRW))
	root.Bus = "not-a-real-bus"
	err := Layout(root)
	if err == nil {
		t.Fatal("want UnknownBus error, got nil")
	}
	var lerr *cherr.LayoutError
	if errors.As(err, &lerr) && lerr.Kind != cherr.UnknownBus {
		t.Errorf("Kind = %v, want UnknownBus", lerr.Kind)
	}
}

func TestLayoutDuplicateSiblingName(t *testing.T) {
	a1 := newReg("A", 32, tree.AccessRW)
	a2 := newReg("A", 32, tree.AccessRW)
	root := newTestRoot(a1, a2)
	err := Layout(root)
	if err == nil {
		t.Fatal("want DuplicateName error, got nil")
	}
	var lerr *cherr.LayoutError
	if errors.As(err, &lerr) && lerr.Kind != cherr.DuplicateName {
		t.Errorf("Kind = %v, want DuplicateName", lerr.Kind)
	}
}
