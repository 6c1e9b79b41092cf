// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package hdl

import (
	"fmt"

	"github.com/cheby-hdl/cheby/hdlir"
	"github.com/cheby-hdl/cheby/tree"
)

// AddPorts walks n the same way GatherLeaves does — transparent through
// Block/RepeatBlock and an included Submap — calling GenPorts on every
// leaf's emitter (gen_hdl.py's add_ports, spec.md Non-goals silent on it).
func AddPorts(n tree.Node, module *hdlir.Module, gen Emitters) error {
	return walkGen(n, gen, func(e CodeEmitter) error { return e.GenPorts(module) })
}

// AddProcesses walks n the same way AddPorts does, calling GenProcesses on
// every leaf's emitter so register storage signals and RAM address signals
// exist before the read/write mux processes reference them.
func AddProcesses(n tree.Node, module *hdlir.Module, bus *Bus, gen Emitters) error {
	return walkGen(n, gen, func(e CodeEmitter) error { return e.GenProcesses(module, bus) })
}

func walkGen(n tree.Node, gen Emitters, visit func(CodeEmitter) error) error {
	var children []tree.Node
	switch v := n.(type) {
	case *tree.Root:
		children = v.Children()
	case *tree.Block:
		children = v.Children()
	case *tree.RepeatBlock:
		children = v.Children()
	default:
		return fmt.Errorf("hdl: walkGen called on non-composite %T", n)
	}

	for _, c := range children {
		switch v := c.(type) {
		case *tree.Block:
			if len(v.Children()) > 0 {
				if err := walkGen(v, gen, visit); err != nil {
					return err
				}
			}
		case *tree.RepeatBlock:
			if len(v.Children()) > 0 {
				if err := walkGen(v, gen, visit); err != nil {
					return err
				}
			}
		case *tree.Submap:
			if v.Include {
				if v.CSubmap != nil {
					if err := walkGen(v.CSubmap, gen, visit); err != nil {
						return err
					}
				}
				continue
			}
			if e, ok := gen[v]; ok {
				if err := visit(e); err != nil {
					return err
				}
			}
		default:
			if e, ok := gen[c]; ok {
				if err := visit(e); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
