// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package hdl

import "github.com/cheby-hdl/cheby/hdlir"

// GroupPorts moves every port module already carries into an interface
// named t_<iogroup>, the shape gen_hdl.py's generate_hdl produces when the
// root's x_hdl bag names an iogroup: instead of loose ports on the module,
// callers see one input and one output record bundled behind an
// Interface. Ports already attached directly (module.Ports) are left
// alone when iogroup is empty.
func GroupPorts(module *hdlir.Module, iogroup string) {
	if iogroup == "" || len(module.Ports) == 0 {
		return
	}
	itf := hdlir.NewInterface("t_" + iogroup)
	in := module.AddPortGroup(iogroup+"_i", itf, false)
	out := module.AddPortGroup(iogroup+"_o", itf, true)

	var kept []*hdlir.Port
	for _, p := range module.Ports {
		switch p.Dir {
		case hdlir.DirIn:
			in.AddPort(p)
			itf.Ports = append(itf.Ports, p)
		case hdlir.DirOut:
			out.AddPort(p)
			itf.Ports = append(itf.Ports, p)
		default:
			kept = append(kept, p)
		}
	}
	module.Ports = kept
	module.GlobalDecls = append(module.GlobalDecls, itf)
}

// busGroupPrefix returns the x_hdl:busgroup override for n's emitted port
// names, or the node's own name if none is set (gen_hdl.py WBBus port
// naming, threaded through BusSlaveEmitter/ForeignMapEmitter construction).
func busGroupPrefix(n interface{ Ext() map[string]any }, fallback string) string {
	if v, ok := n.Ext()["busgroup"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
