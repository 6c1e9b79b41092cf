// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package layout

import (
	"sort"

	"github.com/cheby-hdl/cheby/cherr"
	"github.com/cheby-hdl/cheby/internal/bitfield"
	"github.com/cheby-hdl/cheby/tree"
)

const byteSize = 8

// busWordSize maps a root's declared bus name to its word size in bytes.
// wb-32-be is the only reference bus, and an empty name selects it too;
// any other name is a layout error (spec §4.2 "Root bus binding").
func busWordSize(bus string) (int, bool) {
	switch bus {
	case "", "wb-32-be":
		return 4, true
	default:
		return 0, false
	}
}

// Layout performs the full layout pass over root, filling every
// descendant's computed attributes in place. It returns the first error
// encountered (spec §7: "All errors are fatal"), with one exception:
// duplicate sibling names within one composite are all collected and
// returned together as a cherr.ErrorList.
func Layout(root *tree.Root) error {
	wordSize, ok := busWordSize(root.Bus)
	if !ok {
		return cherr.New(cherr.UnknownBus, tree.Path(root), "unknown bus %q", root.Bus)
	}
	root.CWordSize = wordSize
	root.CAddrWordBits = Ilog2(wordSize)
	root.CWordBits = wordSize * byteSize
	switch root.WordEndian {
	case "", "little":
		root.CWordEndian = "little"
	case "big":
		root.CWordEndian = "big"
	default:
		return cherr.New(cherr.StructuralInvariantViolation, tree.Path(root),
			"unknown word_endian %q", root.WordEndian)
	}

	if err := layoutNode(root, wordSize); err != nil {
		return err
	}
	// The root's size is the power of two that covers its content.
	root.CSize = RoundPow2(root.CSize)
	return nil
}

// layoutNode dispatches on the concrete variant, the Go equivalent of the
// source's Layout.visit dispatch table; the switch must stay exhaustive.
func layoutNode(n tree.Node, wordSize int) error {
	switch v := n.(type) {
	case *tree.Register:
		return layoutRegister(v, wordSize)
	case *tree.Block:
		return layoutBlock(v, wordSize)
	case *tree.RepeatBlock:
		return layoutComposite(v, wordSize)
	case *tree.Repeat:
		return layoutRepeat(v, wordSize)
	case *tree.Memory:
		return layoutMemory(v, wordSize)
	case *tree.Submap:
		return layoutSubmap(v, wordSize)
	case *tree.Root:
		return layoutComposite(v, wordSize)
	default:
		return cherr.New(cherr.StructuralInvariantViolation, tree.Path(n),
			"layout: unhandled node kind %T", n)
	}
}

func layoutNamed(n tree.Node) error {
	if n.Name() == "" {
		return cherr.New(cherr.MissingName, tree.Path(n), "missing name")
	}
	return nil
}

// layoutRegister validates a Register and, when it has fields, lays out
// each one in a fresh bit-occupancy vector (spec §4.2 "Register").
func layoutRegister(r *tree.Register, wordSize int) error {
	if r.Width != 8 && r.Width != 16 && r.Width != 32 && r.Width != 64 {
		return cherr.New(cherr.BadRegisterWidth, tree.Path(r), "register width %d not in {8,16,32,64}", r.Width)
	}
	if err := layoutNamed(r); err != nil {
		return err
	}
	if r.Access == tree.AccessUnset {
		return cherr.New(cherr.MissingAccess, tree.Path(r), "missing access")
	}

	r.CSize = r.Width / byteSize
	r.CAlign = Align(r.CSize, wordSize)

	if r.HasFields() {
		if r.Type != nil {
			return cherr.New(cherr.TypeAndFields, tree.Path(r), "register has both a type and fields")
		}
		r.CType = tree.TypeUnset
		occ := bitfield.NewOccupancy(r.Width)
		names := make(map[string]bool, len(r.Fields))
		for _, f := range r.Fields {
			if names[f.Name()] {
				return cherr.New(cherr.DuplicateName, tree.Path(f), "field %q reuses a name in register %s", f.Name(), r.Name())
			}
			names[f.Name()] = true
			if err := layoutField(f, r, occ); err != nil {
				return err
			}
		}
		return nil
	}

	if r.Type == nil {
		r.CType = tree.TypeUnsigned
		return nil
	}
	switch *r.Type {
	case tree.TypeSigned, tree.TypeUnsigned:
		r.CType = *r.Type
	case tree.TypeFloat:
		if r.Width != 32 && r.Width != 64 {
			return cherr.New(cherr.BadRegisterWidth, tree.Path(r), "float register width %d not in {32,64}", r.Width)
		}
		r.CType = tree.TypeFloat
	default:
		return cherr.New(cherr.BadType, tree.Path(r), "unrecognised register type")
	}
	return nil
}

func layoutField(f *tree.Field, parent *tree.Register, occ *bitfield.Occupancy) error {
	if err := layoutNamed(f); err != nil {
		return err
	}
	hi := f.HiOrLo()
	if f.Hi != nil {
		if *f.Hi < f.Lo {
			return cherr.New(cherr.BadFieldRange, tree.Path(f), "hi (%d) < lo (%d)", *f.Hi, f.Lo)
		}
		if *f.Hi == f.Lo {
			return cherr.New(cherr.BadFieldRange, tree.Path(f), "one-bit field must omit hi")
		}
	}
	f.CWidth = hi - f.Lo + 1

	if hi >= parent.CSize*byteSize {
		return cherr.New(cherr.FieldOverflow, tree.Path(f), "field overflows register size (hi=%d, reg bits=%d)", hi, parent.CSize*byteSize)
	}
	if owner, bit := occ.Claim(f.Lo, hi, f.Name()); owner != "" {
		return cherr.New(cherr.FieldOverlap, tree.Path(f), "field %q overlaps field %q at bit %d", f.Name(), owner, bit)
	}
	if f.Preset != nil && *f.Preset >= (uint64(1)<<uint(f.CWidth)) {
		return cherr.New(cherr.BadPreset, tree.Path(f), "preset 0x%x does not fit in %d bits", *f.Preset, f.CWidth)
	}
	return nil
}

// layoutBlock lays out a Block's children, then — unless explicitly
// non-aligned — rounds both size and alignment up to the next power of
// two (spec invariant 6).
func layoutBlock(b *tree.Block, wordSize int) error {
	if err := layoutComposite(b, wordSize); err != nil {
		return err
	}
	if b.IsAligned() {
		b.CSize = RoundPow2(b.CSize)
		b.CAlign = RoundPow2(b.CSize)
	}
	return nil
}

// layoutRepeat computes the per-element stride and overall span of a
// Repeat (spec §4.2 "Repeat").
func layoutRepeat(r *tree.Repeat, wordSize int) error {
	if err := layoutComposite(r, wordSize); err != nil {
		return err
	}
	if r.Count < 1 {
		return cherr.New(cherr.MissingRepeatCount, tree.Path(r), "repeat count must be >= 1")
	}
	r.CElSize = Align(r.CSize, r.CAlign)
	if r.IsAligned() {
		r.CElSize = RoundPow2(r.CElSize)
		r.CSize = r.CElSize * RoundPow2(r.Count)
		r.CAlign = r.CSize
	} else {
		r.CSize = r.CElSize * r.Count
	}
	return nil
}

// layoutMemory computes a Memory leaf's depth and width (spec §4.2
// "Memory").
func layoutMemory(m *tree.Memory, wordSize int) error {
	if err := layoutNamed(m); err != nil {
		return err
	}
	if m.MemDepth <= 0 {
		return cherr.New(cherr.StructuralInvariantViolation, tree.Path(m), "memory depth must be > 0")
	}
	m.CDepth = Ilog2(m.MemDepth)
	m.CWidth = m.ElementSize * byteSize
	m.CSize = m.MemDepth * m.ElementSize
	m.CAlign = RoundPow2(m.CSize)
	return nil
}

// layoutSubmap resolves a Submap's geometry from its foreign tree when
// present (the resolver's job is out of scope here — see spec §1); an
// unresolved Submap defaults to a single word, just large enough to be
// addressable.
func layoutSubmap(s *tree.Submap, wordSize int) error {
	if err := layoutNamed(s); err != nil {
		return err
	}
	if s.CSubmap != nil {
		s.CSize = s.CSubmap.CSize
		s.CAlign = s.CSubmap.CAlign
	} else {
		s.CSize = wordSize
		s.CAlign = wordSize
	}
	return nil
}

// layoutComposite implements steps (a)-(i) of spec §4.2's "Composite"
// rules, shared by Root, Block, RepeatBlock and Repeat.
func layoutComposite(n tree.Composite, wordSize int) error {
	children := n.Children()
	if len(children) == 0 {
		return cherr.New(cherr.EmptyComposite, tree.Path(n), "composite has no children")
	}
	if err := layoutNamedComposite(n); err != nil {
		return err
	}

	var dup cherr.Collector
	names := make(map[string]bool, len(children))
	for _, c := range children {
		if names[c.Name()] {
			dup.Errorf(tree.Path(c), cherr.DuplicateName, "reuses sibling name %q", c.Name())
			continue
		}
		names[c.Name()] = true
	}
	if err := dup.Err(); err != nil {
		return err
	}

	maxAlign := 0
	for _, c := range children {
		if err := layoutNode(c, wordSize); err != nil {
			return err
		}
		if a := alignOf(c); a > maxAlign {
			maxAlign = a
		}
	}

	hasAligned := false
	for _, c := range children {
		if align, ok := complexAlignment(c); ok && align {
			setAlign(c, maxAlign)
			hasAligned = true
		}
	}

	cur := &cursor{}
	size := 0
	for _, c := range children {
		addr, err := cur.place(tree.Path(c), addressSpecOf(c), alignOf(c), sizeOf(c))
		if err != nil {
			return cherr.Wrap(err, cherr.UnalignedAddress, tree.Path(c), "cannot place child %q", c.Name())
		}
		setAddress(c, addr)
		if end := addr + sizeOf(c); end > size {
			size = end
		}
	}

	switch v := n.(type) {
	case *tree.Root:
		v.CSize = size
		v.CAlign = maxAlign
		if hasAligned {
			v.CBlkBits = Ilog2(maxAlign)
			v.CSelBits = Ilog2(v.CSize) - v.CBlkBits
		} else {
			v.CBlkBits = Ilog2(v.CSize)
			v.CSelBits = 0
		}
	case *tree.Block:
		v.CSize = size
		v.CAlign = maxAlign
	case *tree.RepeatBlock:
		v.CSize = size
		v.CAlign = maxAlign
	case *tree.Repeat:
		v.CSize = size
		v.CAlign = maxAlign
	}

	sort.SliceStable(children, func(i, j int) bool {
		return addressOf(children[i]) < addressOf(children[j])
	})
	n.SetChildren(children)

	lastEnd, lastPath := 0, ""
	for i, c := range children {
		if i > 0 && addressOf(c) < lastEnd {
			return cherr.New(cherr.NodeOverlap, tree.Path(c), "overlaps %s", lastPath)
		}
		lastEnd = addressOf(c) + sizeOf(c)
		lastPath = tree.Path(c)
	}
	return nil
}

func layoutNamedComposite(n tree.Node) error { return layoutNamed(n) }
