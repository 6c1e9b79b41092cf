// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package hdl

import "github.com/cheby-hdl/cheby/tree"

// leafSizeAlign reads the computed size/alignment of a decoder leaf
// (Register, Memory or opaque Submap). Every leaf variant carries these
// fields, but — per SPEC_FULL.md §5 — not behind one polymorphic getter,
// so a type switch is needed at this one boundary.
func leafSizeAlign(n tree.Node) (size, align int) {
	switch v := n.(type) {
	case *tree.Register:
		return v.CSize, v.CAlign
	case *tree.Memory:
		return v.CSize, v.CAlign
	case *tree.Submap:
		return v.CSize, v.CAlign
	default:
		return 0, 1
	}
}
