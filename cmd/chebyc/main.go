// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log"

	"github.com/cheby-hdl/cheby/hdl"
	"github.com/cheby-hdl/cheby/tree"
)

var demo = flag.String("demo", "counters", "built-in tree to compile: counters, mixed")

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	var root *tree.Root
	switch *demo {
	case "counters":
		root = countersDemo()
	case "mixed":
		root = mixedDemo()
	default:
		log.Fatalf("unknown -demo %q", *demo)
	}

	module, err := hdl.Compile(root)
	if err != nil {
		log.Fatalf("compile: %v", err)
	}

	log.Printf("compiled module %q: %d ports, %d signals, %d top-level statements",
		module.Name, len(module.Ports), len(module.Signals), len(module.Stmts))
	for _, p := range module.Ports {
		log.Printf("  port %-20s dir=%d width=%d", p.Name, p.Dir, p.Width)
	}
}

// countersDemo builds a small root with two 32-bit registers: a
// read/write control register and a read-only status register.
func countersDemo() *tree.Root {
	root := tree.NewRoot()
	root.NodeName = "counters"
	root.Bus = "wb-32-be"

	ctrl := tree.NewRegister()
	ctrl.NodeName = "ctrl"
	ctrl.Width = 32
	ctrl.Access = tree.AccessRW
	root.AddChild(ctrl)

	status := tree.NewRegister()
	status.NodeName = "status"
	status.Width = 32
	status.Access = tree.AccessRO
	root.AddChild(status)

	return root
}

// mixedDemo adds a RAM and a 64-bit register to exercise the RAM emitter
// and the multi-word decoder split in the same tree.
func mixedDemo() *tree.Root {
	root := countersDemo()
	root.NodeName = "mixed"

	counter := tree.NewRegister()
	counter.NodeName = "wide_counter"
	counter.Width = 64
	counter.Access = tree.AccessRO
	root.AddChild(counter)

	mem := tree.NewMemory()
	mem.NodeName = "buffer"
	mem.MemDepth = 256
	mem.ElementSize = 4
	root.AddChild(mem)

	return root
}
