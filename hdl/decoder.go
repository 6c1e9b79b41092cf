// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package hdl

import (
	"fmt"
	"sort"

	"github.com/cheby-hdl/cheby/hdlir"
	"github.com/cheby-hdl/cheby/layout"
	"github.com/cheby-hdl/cheby/tree"
)

const byteSize = 8

// EmitFunc is called exactly once per reachable branch of the decoder:
// with leaf set to the Register/Memory/Submap that owns that branch, or
// nil on the default (unassigned-address) branch. bitOffset is the bit
// position within a register's logical value that corresponds to the
// word currently being accessed (spec glossary "Bit offset").
type EmitFunc func(out hdlir.StmtSink, leaf tree.Node, bitOffset int) error

// AddBlockDecoder appends to out an IR switch-tree that, for any value of
// addr[0..hi], calls emit exactly once (spec §4.4, the add_block_decoder
// algorithm).
//
// hi is the highest address-bit index currently under consideration; the
// top-level caller initialises it to ilog2(root.CSize). addr is at word
// granularity — the low root.CAddrWordBits bits are implicit. off is the
// byte offset of the base of the current decode window.
func AddBlockDecoder(root *tree.Root, out hdlir.StmtSink, addr hdlir.Expr, children []Leaf, hi int, emit EmitFunc, off int) error {
	if len(children) == 1 {
		el := children[0]
		if reg, ok := el.Node.(*tree.Register); ok {
			if hi == root.CAddrWordBits {
				foff := off & (reg.CSize - 1)
				if root.CWordEndian == "big" {
					foff = reg.CSize - root.CWordSize - foff
				}
				return emit(out, reg, foff*byteSize)
			}
			// Multi-word register: not yet at word granularity, so keep
			// splitting at word boundaries until it is.
			return addBlockDecoderRecurse(root, out, addr, children, hi, emit, off, 1<<root.CAddrWordBits)
		}
		return emit(out, el.Node, 0)
	}

	maxsz := 0
	for _, c := range children {
		_, align := leafSizeAlign(c.Node)
		if align > maxsz {
			maxsz = align
		}
	}
	return addBlockDecoderRecurse(root, out, addr, children, hi, emit, off, maxsz)
}

func addBlockDecoderRecurse(root *tree.Root, out hdlir.StmtSink, addr hdlir.Expr, children []Leaf, hi int, emit EmitFunc, off, maxsz int) error {
	maxszl2 := layout.Ilog2(maxsz)
	if maxszl2 >= hi {
		return fmt.Errorf("hdl: decoder window 1<<%d does not fit under hi=%d", maxszl2, hi)
	}
	mask := ^(maxsz - 1)

	sw := hdlir.NewSwitch(hdlir.NewSlice(addr, maxszl2, hi-maxszl2))
	out.Append(sw)

	// The source mutates children in place, popping from the front; a
	// local, address-sorted copy gives the same effect without aliasing
	// the caller's slice.
	queue := make([]Leaf, len(children))
	copy(queue, children)
	sort.SliceStable(queue, func(i, j int) bool { return queue[i].AbsAddr < queue[j].AbsAddr })

	nextBase := off
	for len(queue) > 0 {
		first := queue[0]
		queue = queue[1:]
		bucket := []Leaf{first}

		base := first.AbsAddr & mask
		if base < nextBase {
			base = nextBase
		}
		nextBase = base + maxsz

		choice := hdlir.NewChoiceExpr(hdlir.NewConst(base>>maxszl2, hi-maxszl2))
		sw.AddChoice(choice)

		last := first
		for len(queue) > 0 && (queue[0].AbsAddr&mask) == base {
			last = queue[0]
			bucket = append(bucket, queue[0])
			queue = queue[1:]
		}

		lastSize, _ := leafSizeAlign(last.Node)
		if ((last.AbsAddr+lastSize-1)&mask) != base {
			// The last-absorbed child's span crosses this window's upper
			// boundary: push it back so its tail gets decoded again in
			// the next bucket.
			queue = append([]Leaf{last}, queue...)
		}

		if err := AddBlockDecoder(root, choice, addr, bucket, maxszl2, emit, base); err != nil {
			return err
		}
	}

	def := hdlir.NewChoiceDefault()
	sw.AddChoice(def)
	return emit(def, nil, 0)
}
