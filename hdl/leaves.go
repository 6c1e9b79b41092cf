// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

// Package hdl is the decoder-synthesis pass: it walks a laid-out tree,
// gathers addressable leaves, recursively partitions them by address
// bits, and emits the hierarchical switch/case IR that dispatches each
// word-aligned read or write to the correct leaf (spec §4.3-§4.6).
package hdl

import (
	"fmt"

	"github.com/cheby-hdl/cheby/tree"
)

// Leaf pairs a decodable leaf node with its absolute byte address from
// the root. Layout only computes each node's address relative to its
// immediate parent composite, so GatherLeaves accumulates the absolute
// address while it flattens transparent Blocks and inlined Submaps —
// this is the Go stand-in for the source's el.c_abs_addr, which the
// original computes elsewhere (not part of the retrieved tree.py/layout.py
// pair) but which add_block_decoder assumes is already present.
type Leaf struct {
	Node    tree.Node
	AbsAddr int
}

// GatherLeaves returns the ordered list of decodable descendants of n: a
// Register or Memory is itself a leaf; an included Submap recurses into
// its resolved foreign tree as if inlined; an opaque Submap is a single
// leaf; Root and Block contribute the concatenation of their children's
// leaves in declared order (spec §4.3).
//
// Any other variant reaching this function — in particular a bare Repeat,
// which must have been expanded into a RepeatBlock before synthesis runs
// (spec §9 Open Question) — is a structural-invariant violation.
func GatherLeaves(n tree.Node) ([]Leaf, error) {
	return gatherLeaves(n, 0)
}

func gatherLeaves(n tree.Node, base int) ([]Leaf, error) {
	switch v := n.(type) {
	case *tree.Register:
		return []Leaf{{Node: v, AbsAddr: base + v.CAddress}}, nil
	case *tree.Memory:
		return []Leaf{{Node: v, AbsAddr: base + v.CAddress}}, nil
	case *tree.Submap:
		if v.Include {
			if v.CSubmap == nil {
				return nil, fmt.Errorf("hdl: included submap %s has no resolved tree", tree.Path(v))
			}
			return gatherLeaves(v.CSubmap, base+v.CAddress)
		}
		return []Leaf{{Node: v, AbsAddr: base + v.CAddress}}, nil
	case *tree.Root:
		return gatherChildren(v.Children(), base)
	case *tree.Block:
		return gatherChildren(v.Children(), base+v.CAddress)
	case *tree.RepeatBlock:
		return gatherChildren(v.Children(), base+v.CAddress)
	default:
		return nil, fmt.Errorf("hdl: gather_leaves: unexpected node kind %T at %s", n, tree.Path(n))
	}
}

func gatherChildren(children []tree.Node, base int) ([]Leaf, error) {
	var out []Leaf
	for _, c := range children {
		leaves, err := gatherLeaves(c, base)
		if err != nil {
			return nil, err
		}
		out = append(out, leaves...)
	}
	return out, nil
}
