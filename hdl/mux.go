// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package hdl

import (
	"github.com/cheby-hdl/cheby/hdlir"
	"github.com/cheby-hdl/cheby/layout"
	"github.com/cheby-hdl/cheby/tree"
)

// AddDecoder gathers root's leaves and drives AddBlockDecoder with the
// top-level window (hi = ilog2(root.CSize), off = 0), calling emit for
// every leaf and for the default branch (spec §4.4 add_decoder).
func AddDecoder(root *tree.Root, out hdlir.StmtSink, addr hdlir.Expr, emit EmitFunc) error {
	leaves, err := GatherLeaves(root)
	if err != nil {
		return err
	}
	return AddBlockDecoder(root, out, addr, leaves, layout.Ilog2(root.CSize), emit, 0)
}

// Bus is the minimal set of bus signals the mux drivers need: the
// read/write address and request lines, and the corresponding
// acknowledge/data lines driven back to the bus (spec §4.5).
type Bus struct {
	RdAdr, RdReq, RdAck, RdDat hdlir.Expr
	WrAdr, WrReq, WrAck, WrDat hdlir.Expr
}

// AddReadMuxProcess builds a combinational process that muxes the read
// data and acknowledge signals across every leaf, driving an all-X
// default before the decoder runs (spec §4.5).
func AddReadMuxProcess(root *tree.Root, module *hdlir.Module, bus *Bus, emitRead func(out hdlir.StmtSink, leaf tree.Node, off int, bus *Bus, proc *hdlir.Comb) error) error {
	module.Stmts = append(module.Stmts, hdlir.NewComment("Process for read requests."))

	proc := &hdlir.Comb{}
	if bus.RdAdr != nil {
		proc.Sensitivity = append(proc.Sensitivity, bus.RdAdr)
	}
	proc.Sensitivity = append(proc.Sensitivity, bus.RdReq)
	module.Stmts = append(module.Stmts, proc)

	proc.Append(hdlir.NewComment("By default drive read data to X"))
	proc.Append(&hdlir.Assign{LHS: bus.RdDat, RHS: hdlir.NewReplicate(hdlir.BitX, root.CWordBits)})

	emit := func(out hdlir.StmtSink, leaf tree.Node, off int) error {
		if leaf == nil {
			out.Append(&hdlir.Assign{LHS: bus.RdAck, RHS: bus.RdReq})
			return nil
		}
		out.Append(hdlir.NewComment(commentFor(leaf)))
		return emitRead(out, leaf, off, bus, proc)
	}

	stmts := &hdlir.StmtList{}
	if err := AddDecoder(root, stmts, bus.RdAdr, emit); err != nil {
		return err
	}
	proc.Append(stmts.Stmts...)
	return nil
}

// AddWriteMuxProcess builds a combinational process that muxes the write
// acknowledge signal and regenerates per-leaf write requests (spec §4.5).
// Unlike the read mux, there is no default-assignment preamble: unknown
// addresses are ack'ed only from the decoder's default branch.
func AddWriteMuxProcess(root *tree.Root, module *hdlir.Module, bus *Bus, emitWrite func(out hdlir.StmtSink, leaf tree.Node, off int, bus *Bus, proc *hdlir.Comb) error) error {
	module.Stmts = append(module.Stmts, hdlir.NewComment("Process for write requests."))

	proc := &hdlir.Comb{}
	if bus.WrAdr != nil {
		proc.Sensitivity = append(proc.Sensitivity, bus.WrAdr)
	}
	proc.Sensitivity = append(proc.Sensitivity, bus.WrReq)
	module.Stmts = append(module.Stmts, proc)

	emit := func(out hdlir.StmtSink, leaf tree.Node, off int) error {
		if leaf == nil {
			out.Append(&hdlir.Assign{LHS: bus.WrAck, RHS: bus.WrReq})
			return nil
		}
		out.Append(hdlir.NewComment(commentFor(leaf)))
		return emitWrite(out, leaf, off, bus, proc)
	}

	stmts := &hdlir.StmtList{}
	if err := AddDecoder(root, stmts, bus.WrAdr, emit); err != nil {
		return err
	}
	proc.Append(stmts.Stmts...)
	return nil
}

func commentFor(n tree.Node) string {
	switch n.(type) {
	case *tree.Register:
		return n.Name()
	case *tree.Memory:
		return "RAM " + n.Name()
	case *tree.Submap:
		return "Submap " + n.Name()
	default:
		return n.Name()
	}
}
