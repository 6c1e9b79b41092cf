// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package tree

// Root is the top of a Cheby tree: the memory map for one bus interface.
type Root struct {
	Common
	Geometry

	// User attributes.
	Bus         string // selects the word size, e.g. "wb-32-be".
	WordEndian  string // "little", "big", or "" (defaults to "little").
	Children_   []Node

	// Computed attributes, filled in by package layout.
	CWordSize    int // word size in bytes.
	CAddrWordBits int // log2(CWordSize).
	CWordBits    int // CWordSize * 8.
	CBlkBits     int // log2(max child alignment), when any child is aligned.
	CSelBits     int // log2(CSize) - CBlkBits.
	CWordEndian  string // resolved endianness ("little" or "big").
}

func NewRoot() *Root { return &Root{} }

func (r *Root) Kind() Kind           { return KindRoot }
func (r *Root) Children() []Node     { return r.Children_ }
func (r *Root) SetChildren(c []Node) { r.Children_ = c }
func (r *Root) Path() string         { return Path(r) }

// AddChild appends a child and wires its parent back-link. Callers must
// build the tree this way rather than appending to Children_ directly, so
// that Parent() is always correct.
func (r *Root) AddChild(n Node) {
	setParentOf(n, r)
	r.Children_ = append(r.Children_, n)
}
