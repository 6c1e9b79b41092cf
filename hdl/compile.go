// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package hdl

import (
	"github.com/golang/glog"

	"github.com/cheby-hdl/cheby/hdl/wbbus"
	"github.com/cheby-hdl/cheby/hdlir"
	"github.com/cheby-hdl/cheby/layout"
	"github.com/cheby-hdl/cheby/tree"
)

// Compile runs the full pipeline over root — bus binding, layout,
// generator dispatch, port synthesis, process synthesis, write mux, read
// mux — in that order (spec §5). It is single-threaded and non-reentrant
// over one root; the only state it carries across calls is wbbus.pkg,
// which it resets before using.
func Compile(root *tree.Root) (*hdlir.Module, error) {
	glog.V(1).Infof("hdl: compiling %s (bus=%q, word_endian=%q)", tree.Path(root), root.Bus, root.WordEndian)
	wbbus.ResetPackage()

	if err := layout.Layout(root); err != nil {
		return nil, err
	}
	glog.V(1).Infof("hdl: %s: layout done, c_size=0x%x c_word_bits=%d", tree.Path(root), root.CSize, root.CWordBits)

	name := root.Name()
	if name == "" {
		name = "cheby_map"
	}
	module := hdlir.NewModule(name)

	gen := make(Emitters)
	if err := SetGen(root, module, root, gen); err != nil {
		return nil, err
	}
	glog.V(1).Infof("hdl: %s: generator dispatch done, %d leaves", tree.Path(root), len(gen))

	if err := AddPorts(root, module, gen); err != nil {
		return nil, err
	}

	rdAdr, rdReq, wrAdr, wrReq, wrDat := wbbus.Bus(root.CAddrWordBits)
	bus := &Bus{
		RdAdr: rdAdr, RdReq: rdReq, RdAck: hdlir.NewRef("wb_ack_o"), RdDat: hdlir.NewRef("wb_dat_o"),
		WrAdr: wrAdr, WrReq: wrReq, WrAck: hdlir.NewRef("wb_ack_o"), WrDat: wrDat,
	}
	module.Ports = append(module.Ports, wbbus.Ports(32-root.CAddrWordBits, root.CWordBits)...)

	if err := AddProcesses(root, module, bus, gen); err != nil {
		return nil, err
	}

	emitWrite := func(out hdlir.StmtSink, leaf tree.Node, off int, bus *Bus, proc *hdlir.Comb) error {
		return gen[leaf].GenWrite(out, off, bus, proc)
	}
	if err := AddWriteMuxProcess(root, module, bus, emitWrite); err != nil {
		return nil, err
	}

	emitRead := func(out hdlir.StmtSink, leaf tree.Node, off int, bus *Bus, proc *hdlir.Comb) error {
		return gen[leaf].GenRead(out, off, bus, proc)
	}
	if err := AddReadMuxProcess(root, module, bus, emitRead); err != nil {
		return nil, err
	}

	if iogroup, ok := root.Ext()["iogroup"].(string); ok {
		GroupPorts(module, iogroup)
	}

	return module, nil
}
