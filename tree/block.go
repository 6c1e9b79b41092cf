// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package tree

// Block groups children under one sub-address-space. When Align is unset
// or true, layout rounds its size and alignment up to a power of two
// (spec invariant 6); when explicitly false, it packs children tightly.
type Block struct {
	Common
	Geometry

	Address   Address
	Align     *bool // nil means "aligned" (the default).
	Children_ []Node
}

func NewBlock() *Block { return &Block{} }

func (b *Block) Kind() Kind           { return KindBlock }
func (b *Block) Children() []Node     { return b.Children_ }
func (b *Block) SetChildren(c []Node) { b.Children_ = c }
func (b *Block) Path() string         { return Path(b) }

func (b *Block) AddChild(n Node) {
	setParentOf(n, b)
	b.Children_ = append(b.Children_, n)
}

// IsAligned reports whether this block should be rounded up to a power of
// two (Align == nil or *Align == true).
func (b *Block) IsAligned() bool { return b.Align == nil || *b.Align }

// RepeatBlock is a Block expanded from a Repeat's single template element;
// it is produced by an expansion pass that runs before synthesis (spec
// §9 Open Question) and carries a reference back to its originating Repeat
// purely for diagnostics.
type RepeatBlock struct {
	Block
	Origin *Repeat
}

func NewRepeatBlock(origin *Repeat) *RepeatBlock {
	return &RepeatBlock{Origin: origin}
}

func (b *RepeatBlock) Kind() Kind { return KindRepeatBlock }
func (b *RepeatBlock) Path() string { return Path(b) }
