// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

// Package wbbus builds the Wishbone bus-interface port set and record
// package shared across a compiled tree's register/RAM/bus-slave leaves
// (gen_hdl.py's WBBus, the one generator-specific bus binding named in
// spec.md §4.2's "reference bus wb-32-be").
package wbbus

import "github.com/cheby-hdl/cheby/hdlir"

// pkg is the one WBBus record-type package shared by every module built in
// a single Compile call. It exists because the Wishbone address/data
// record types are generated once and referenced by every port using them,
// not once per leaf; ResetPackage, called at the start of every Compile,
// keeps this the single piece of package-scoped mutable state the module carries
// (spec §5/§9's explicit exception).
var pkg *hdlir.Package

// ResetPackage clears the shared record-type package. Compile calls this
// once at the start of every run so that two back-to-back Compile calls on
// different roots never observe each other's record type (spec.md
// Testable Property 7, bus-package idempotence). Not needed outside of
// Compile and its tests.
func ResetPackage() { pkg = nil }

// Package returns the shared WBBus record-type package, building it on
// first use within the current Compile call.
func Package() *hdlir.Package {
	if pkg == nil {
		pkg = hdlir.NewPackage("wishbone_pkg")
	}
	return pkg
}

// Ports returns the standard Wishbone slave port set at the given address
// and data width, in the declaration order gen_hdl.py emits them.
func Ports(addrWidth, dataWidth int) []*hdlir.Port {
	return []*hdlir.Port{
		hdlir.NewPort("wb_cyc_i", hdlir.DirIn, 1),
		hdlir.NewPort("wb_stb_i", hdlir.DirIn, 1),
		hdlir.NewPort("wb_adr_i", hdlir.DirIn, addrWidth),
		hdlir.NewPort("wb_dat_i", hdlir.DirIn, dataWidth),
		hdlir.NewPort("wb_we_i", hdlir.DirIn, 1),
		hdlir.NewPort("wb_dat_o", hdlir.DirOut, dataWidth),
		hdlir.NewPort("wb_ack_o", hdlir.DirOut, 1),
		hdlir.NewPort("wb_stall_o", hdlir.DirOut, 1),
	}
}

// Bus wires the standard Wishbone slave ports above into the read/write
// signal set the mux drivers and decoder expect (spec §4.5's Bus struct).
func Bus(addrWordBits int) (rdAdr, rdReq, wrAdr, wrReq, wrDat hdlir.Expr) {
	adr := hdlir.NewRef("wb_adr_i")
	word := hdlir.NewSlice(adr, addrWordBits, 32-addrWordBits)
	cycStb := &hdlir.And{Left: hdlir.NewRef("wb_cyc_i"), Right: hdlir.NewRef("wb_stb_i")}
	rd := &hdlir.And{Left: cycStb, Right: &hdlir.Not{Operand: hdlir.NewRef("wb_we_i")}}
	wr := &hdlir.And{Left: cycStb, Right: hdlir.NewRef("wb_we_i")}
	return word, rd, word, wr, hdlir.NewRef("wb_dat_i")
}
