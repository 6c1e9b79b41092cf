// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package hdl

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/cheby-hdl/cheby/hdlir"
	"github.com/cheby-hdl/cheby/tree"
)

// CodeEmitter is the per-node code-generation capability attached by
// SetGen before synthesis runs (spec §4.6, §9: "Do *not* make it a base-
// class method on the node"). Register, Memory and Submap leaves each get
// a concrete implementation; Block never does (it is transparent).
type CodeEmitter interface {
	GenPorts(module *hdlir.Module) error
	GenProcesses(module *hdlir.Module, bus *Bus) error
	GenRead(out hdlir.StmtSink, bitOffset int, bus *Bus, proc *hdlir.Comb) error
	GenWrite(out hdlir.StmtSink, bitOffset int, bus *Bus, proc *hdlir.Comb) error
}

// Emitters is the parallel table from node to its CodeEmitter, keyed by
// the node's own identity (a pointer, wrapped in the tree.Node interface)
// rather than stored on the node itself. It is owned by one Compile call
// and discarded afterwards — there is no package-scoped emitter state.
type Emitters map[tree.Node]CodeEmitter

// SetGen walks the tree rooted at n and attaches a CodeEmitter to every
// Register, Memory and non-inlined Submap leaf (spec §4.6):
//
//   - Register              -> RegisterEmitter
//   - Memory, no interface  -> RamEmitter
//   - Memory, with interface-> BusSlaveEmitter
//   - Submap, include=true  -> skipped (transparent, walked into)
//   - Submap, filename set  -> ForeignMapEmitter
//   - Submap, otherwise     -> BusSlaveEmitter
//   - Block                 -> transparent, recurse only
func SetGen(root *tree.Root, module *hdlir.Module, n tree.Node, out Emitters) error {
	var children []tree.Node
	switch v := n.(type) {
	case *tree.Root:
		children = v.Children()
	case *tree.Block:
		children = v.Children()
	case *tree.RepeatBlock:
		children = v.Children()
	default:
		return fmt.Errorf("hdl: SetGen called on non-composite %T", n)
	}

	for _, c := range children {
		switch v := c.(type) {
		case *tree.Block:
			if len(v.Children()) > 0 {
				if err := SetGen(root, module, v, out); err != nil {
					return err
				}
			}
		case *tree.RepeatBlock:
			if len(v.Children()) > 0 {
				if err := SetGen(root, module, v, out); err != nil {
					return err
				}
			}
		case *tree.Submap:
			if v.Include {
				if v.CSubmap == nil {
					return fmt.Errorf("hdl: included submap %s has no resolved tree", tree.Path(v))
				}
				glog.V(1).Infof("hdl: %s: included submap inlined, recursing into its tree", tree.Path(v))
				if err := SetGen(root, module, v.CSubmap, out); err != nil {
					return err
				}
			} else if v.Filename != nil {
				glog.V(1).Infof("hdl: %s: submap names filename %q, dispatched to ForeignMapEmitter", tree.Path(v), *v.Filename)
				out[v] = NewForeignMapEmitter(root, module, v)
			} else {
				glog.V(1).Infof("hdl: %s: opaque submap with no filename, dispatched to BusSlaveEmitter", tree.Path(v))
				out[v] = NewBusSlaveEmitter(root, module, v)
			}
		case *tree.Memory:
			if v.Interface != nil {
				glog.V(1).Infof("hdl: %s: memory declares interface %q, dispatched to BusSlaveEmitter", tree.Path(v), *v.Interface)
				out[v] = NewBusSlaveEmitter(root, module, v)
			} else {
				glog.V(1).Infof("hdl: %s: memory has no interface, dispatched to RamEmitter", tree.Path(v))
				out[v] = NewRamEmitter(root, module, v)
			}
		case *tree.Register:
			glog.V(2).Infof("hdl: %s: dispatched to RegisterEmitter", tree.Path(v))
			out[v] = NewRegisterEmitter(root, module, v)
		default:
			return fmt.Errorf("hdl: SetGen: unexpected node kind %T at %s", c, tree.Path(c))
		}
	}
	return nil
}
