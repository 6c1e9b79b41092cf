// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package layout

import (
	"github.com/cheby-hdl/cheby/cherr"
	"github.com/cheby-hdl/cheby/tree"
)

// cursor assigns successive addresses to the children of one composite
// node, the Go equivalent of Layout.compute_address in layout.py.
type cursor struct {
	addr int
}

// place assigns addr/size to n given its declared address and alignment,
// then advances the cursor past it.
func (c *cursor) place(path string, addr tree.Address, align, size int) (int, error) {
	var a int
	switch addr.Mode {
	case tree.AddressAuto, tree.AddressNext:
		a = Align(c.addr, align)
	case tree.AddressFixed:
		if addr.Value%align != 0 {
			return 0, cherr.New(cherr.UnalignedAddress, path,
				"explicit address 0x%x is not a multiple of alignment 0x%x", addr.Value, align)
		}
		a = addr.Value
	}
	c.addr = a + size
	return a, nil
}
