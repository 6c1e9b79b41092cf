// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package hdl

import (
	"github.com/cheby-hdl/cheby/hdlir"
	"github.com/cheby-hdl/cheby/tree"
)

// RegisterEmitter is the CodeEmitter for an addressable Register leaf. It
// is a minimal but real implementation of the "opaque capability" spec §1
// describes as an external collaborator: a storage signal per register,
// wired to the decoder's read/write mux arms at the bit offset the
// decoder computes.
type RegisterEmitter struct {
	root   *tree.Root
	module *hdlir.Module
	reg    *tree.Register
	signal *hdlir.Signal
}

func NewRegisterEmitter(root *tree.Root, module *hdlir.Module, reg *tree.Register) *RegisterEmitter {
	return &RegisterEmitter{root: root, module: module, reg: reg}
}

func (e *RegisterEmitter) GenPorts(module *hdlir.Module) error {
	if e.reg.Access == tree.AccessCST {
		return nil
	}
	dir := hdlir.DirOut
	if e.reg.Access == tree.AccessWO {
		dir = hdlir.DirIn
	}
	module.Ports = append(module.Ports, hdlir.NewPort(e.reg.Name()+"_o", dir, e.reg.Width))
	if e.reg.Access == tree.AccessRW || e.reg.Access == tree.AccessWO {
		module.Ports = append(module.Ports, hdlir.NewPort(e.reg.Name()+"_i", hdlir.DirIn, e.reg.Width))
	}
	return nil
}

func (e *RegisterEmitter) GenProcesses(module *hdlir.Module, bus *Bus) error {
	e.signal = hdlir.NewSignal(e.reg.Name()+"_reg", e.reg.Width)
	module.Signals = append(module.Signals, e.signal)
	return nil
}

// GenRead drives the bus read-data output with this register's storage
// bits, starting at bitOffset (the decoder's computed word offset into
// the register's logical value — spec glossary "Bit offset").
func (e *RegisterEmitter) GenRead(out hdlir.StmtSink, bitOffset int, bus *Bus, proc *hdlir.Comb) error {
	if e.reg.Access == tree.AccessWO {
		out.Append(&hdlir.Assign{LHS: bus.RdAck, RHS: bus.RdReq})
		return nil
	}
	src := hdlir.Expr(hdlir.NewRef(e.reg.Name() + "_reg"))
	if bitOffset != 0 || e.reg.CSize*byteSize != e.root.CWordBits {
		src = hdlir.NewSlice(src, bitOffset, e.root.CWordBits)
	}
	out.Append(&hdlir.Assign{LHS: bus.RdDat, RHS: src})
	out.Append(&hdlir.Assign{LHS: bus.RdAck, RHS: bus.RdReq})
	return nil
}

// GenWrite drives this register's storage bits from the bus write data at
// bitOffset; a read-only register silently ack's writes without storing
// anything.
func (e *RegisterEmitter) GenWrite(out hdlir.StmtSink, bitOffset int, bus *Bus, proc *hdlir.Comb) error {
	out.Append(&hdlir.Assign{LHS: bus.WrAck, RHS: bus.WrReq})
	if e.reg.Access == tree.AccessRO || e.reg.Access == tree.AccessCST {
		return nil
	}
	dst := hdlir.Expr(hdlir.NewRef(e.reg.Name() + "_reg"))
	if bitOffset != 0 || e.reg.CSize*byteSize != e.root.CWordBits {
		dst = hdlir.NewSlice(dst, bitOffset, e.root.CWordBits)
	}
	proc.Append(&hdlir.IfElse{
		Cond: bus.WrReq,
		Then: []hdlir.Stmt{&hdlir.Sync{LHS: dst, RHS: bus.WrDat}},
	})
	return nil
}

// RamEmitter is the CodeEmitter for a Memory leaf with no declared bus
// interface: a plain single-port RAM driven directly by the bus.
type RamEmitter struct {
	root   *tree.Root
	module *hdlir.Module
	mem    *tree.Memory
}

func NewRamEmitter(root *tree.Root, module *hdlir.Module, mem *tree.Memory) *RamEmitter {
	return &RamEmitter{root: root, module: module, mem: mem}
}

func (e *RamEmitter) GenPorts(module *hdlir.Module) error { return nil }

func (e *RamEmitter) GenProcesses(module *hdlir.Module, bus *Bus) error {
	module.Signals = append(module.Signals, hdlir.NewSignal(e.mem.Name()+"_adr", e.mem.CDepth))
	return nil
}

func (e *RamEmitter) GenRead(out hdlir.StmtSink, bitOffset int, bus *Bus, proc *hdlir.Comb) error {
	out.Append(&hdlir.Assign{LHS: bus.RdDat, RHS: hdlir.NewRef(e.mem.Name() + "_rd_dat")})
	out.Append(&hdlir.Assign{LHS: bus.RdAck, RHS: bus.RdReq})
	return nil
}

func (e *RamEmitter) GenWrite(out hdlir.StmtSink, bitOffset int, bus *Bus, proc *hdlir.Comb) error {
	out.Append(&hdlir.Assign{LHS: hdlir.NewRef(e.mem.Name() + "_we"), RHS: bus.WrReq})
	out.Append(&hdlir.Assign{LHS: hdlir.NewRef(e.mem.Name() + "_wr_dat"), RHS: bus.WrDat})
	out.Append(&hdlir.Assign{LHS: bus.WrAck, RHS: bus.WrReq})
	return nil
}

// BusSlaveEmitter is the CodeEmitter for a node that bridges onto a
// downstream bus: a Memory with a declared interface, or an opaque
// Submap without a foreign file (spec §4.6). Rather than driving storage
// directly, it passes bus data to and from the downstream dat_o/dat_i
// ports and acknowledges the request in the same branch; the
// decoder-supplied offset is not used and adr_o is not driven.
type BusSlaveEmitter struct {
	root   *tree.Root
	module *hdlir.Module
	node   tree.Node
	prefix string
}

func NewBusSlaveEmitter(root *tree.Root, module *hdlir.Module, n tree.Node) *BusSlaveEmitter {
	return &BusSlaveEmitter{root: root, module: module, node: n, prefix: busGroupPrefix(n, n.Name()) + "_"}
}

func (e *BusSlaveEmitter) GenPorts(module *hdlir.Module) error {
	module.Ports = append(module.Ports,
		hdlir.NewPort(e.prefix+"adr_o", hdlir.DirOut, e.root.CWordBits),
		hdlir.NewPort(e.prefix+"dat_o", hdlir.DirOut, e.root.CWordBits),
		hdlir.NewPort(e.prefix+"dat_i", hdlir.DirIn, e.root.CWordBits),
	)
	return nil
}

func (e *BusSlaveEmitter) GenProcesses(module *hdlir.Module, bus *Bus) error { return nil }

func (e *BusSlaveEmitter) GenRead(out hdlir.StmtSink, bitOffset int, bus *Bus, proc *hdlir.Comb) error {
	out.Append(&hdlir.Assign{LHS: bus.RdDat, RHS: hdlir.NewRef(e.prefix + "dat_i")})
	out.Append(&hdlir.Assign{LHS: bus.RdAck, RHS: bus.RdReq})
	return nil
}

func (e *BusSlaveEmitter) GenWrite(out hdlir.StmtSink, bitOffset int, bus *Bus, proc *hdlir.Comb) error {
	out.Append(&hdlir.Assign{LHS: hdlir.NewRef(e.prefix + "dat_o"), RHS: bus.WrDat})
	out.Append(&hdlir.Assign{LHS: bus.WrAck, RHS: bus.WrReq})
	return nil
}

// ForeignMapEmitter is the CodeEmitter for a Submap that names a filename:
// an opaque sub-map resolved from another description file, bridged the
// same way as BusSlaveEmitter but labelled distinctly so a downstream
// serialiser can tell the two apart (spec §4.6).
type ForeignMapEmitter struct {
	BusSlaveEmitter
}

func NewForeignMapEmitter(root *tree.Root, module *hdlir.Module, n *tree.Submap) *ForeignMapEmitter {
	return &ForeignMapEmitter{BusSlaveEmitter: BusSlaveEmitter{root: root, module: module, node: n, prefix: busGroupPrefix(n, n.Name()) + "_"}}
}
