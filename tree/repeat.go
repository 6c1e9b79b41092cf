// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package tree

// Repeat declares a homogeneous array of its (single, implicit) element
// repeated Count times. Synthesis never sees a Repeat directly: per the
// source, Repeat nodes are expanded into RepeatBlocks before the decoder
// runs (spec §9 Open Question); layout, however, operates on Repeat itself
// to compute the per-element stride and overall size.
type Repeat struct {
	Common
	Geometry

	Address   Address
	Count     int
	Align     *bool
	Children_ []Node

	// Computed.
	CElSize int // per-element stride in bytes.
}

func NewRepeat() *Repeat { return &Repeat{} }

func (r *Repeat) Kind() Kind           { return KindRepeat }
func (r *Repeat) Children() []Node     { return r.Children_ }
func (r *Repeat) SetChildren(c []Node) { r.Children_ = c }
func (r *Repeat) Path() string         { return Path(r) }

func (r *Repeat) AddChild(n Node) {
	setParentOf(n, r)
	r.Children_ = append(r.Children_, n)
}

func (r *Repeat) IsAligned() bool { return r.Align == nil || *r.Align }
