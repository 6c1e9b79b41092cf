// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package layout

import "github.com/cheby-hdl/cheby/tree"

// These small accessors exist because Geometry and Address are embedded
// per-variant rather than behind a single polymorphic getter/setter on
// tree.Node (see SPEC_FULL.md §5's Open Question): a type switch here is
// the one place that needs to know every variant's concrete shape.

func sizeOf(n tree.Node) int {
	switch v := n.(type) {
	case *tree.Root:
		return v.CSize
	case *tree.Block:
		return v.CSize
	case *tree.RepeatBlock:
		return v.CSize
	case *tree.Repeat:
		return v.CSize
	case *tree.Submap:
		return v.CSize
	case *tree.Memory:
		return v.CSize
	case *tree.Register:
		return v.CSize
	default:
		return 0
	}
}

func alignOf(n tree.Node) int {
	switch v := n.(type) {
	case *tree.Root:
		return v.CAlign
	case *tree.Block:
		return v.CAlign
	case *tree.RepeatBlock:
		return v.CAlign
	case *tree.Repeat:
		return v.CAlign
	case *tree.Submap:
		return v.CAlign
	case *tree.Memory:
		return v.CAlign
	case *tree.Register:
		return v.CAlign
	default:
		return 1
	}
}

func addressOf(n tree.Node) int {
	switch v := n.(type) {
	case *tree.Block:
		return v.CAddress
	case *tree.RepeatBlock:
		return v.CAddress
	case *tree.Repeat:
		return v.CAddress
	case *tree.Submap:
		return v.CAddress
	case *tree.Memory:
		return v.CAddress
	case *tree.Register:
		return v.CAddress
	default:
		return 0
	}
}

func setAddress(n tree.Node, addr int) {
	switch v := n.(type) {
	case *tree.Block:
		v.CAddress = addr
	case *tree.RepeatBlock:
		v.CAddress = addr
	case *tree.Repeat:
		v.CAddress = addr
	case *tree.Submap:
		v.CAddress = addr
	case *tree.Memory:
		v.CAddress = addr
	case *tree.Register:
		v.CAddress = addr
	}
}

func addressSpecOf(n tree.Node) tree.Address {
	switch v := n.(type) {
	case *tree.Block:
		return v.Address
	case *tree.RepeatBlock:
		return v.Address
	case *tree.Repeat:
		return v.Address
	case *tree.Submap:
		return v.Address
	case *tree.Memory:
		return v.Address
	case *tree.Register:
		return v.Address
	default:
		return tree.Auto
	}
}

// aligned is implemented by every variant that carries a user Align flag:
// Block, RepeatBlock (via Block) and Repeat.
type aligned interface {
	IsAligned() bool
}

func setAlign(n tree.Node, align int) {
	switch v := n.(type) {
	case *tree.Block:
		v.CAlign = align
	case *tree.RepeatBlock:
		v.CAlign = align
	case *tree.Repeat:
		v.CAlign = align
	}
}

// complexAlignment reports whether n is a composite node that carries a
// user Align flag, and if so, its current value. Submap and Memory are
// composite-ish but have no Align attribute (spec §3) and so never
// participate in alignment promotion.
func complexAlignment(n tree.Node) (align, ok bool) {
	a, isAligned := n.(aligned)
	if !isAligned {
		return false, false
	}
	if _, isComposite := n.(tree.Composite); !isComposite {
		return false, false
	}
	return a.IsAligned(), true
}
