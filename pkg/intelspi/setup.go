// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/linuxboot/intelspi/pkg/ifd"
	"github.com/linuxboot/intelspi/pkg/mmio"
)

// Setup reads the descriptor registers and decodes the flash size and the
// region map. It needs an open window.
func (c *Controller) Setup() error {
	if err := c.Probe(); err != nil {
		return err
	}
	regs, err := c.regs()
	if err != nil {
		return err
	}

	if c.cfg.Verbose {
		dumpRegisters(regs, func(offset, value uint32) {
			c.log.Infof("SPIBAR[0x%02x] = 0x%x", offset, value)
		})
	}

	desc := readDescriptorRegisters(regs)
	geom := ifd.NewGeometry(desc.FLCOMP, desc.FREG, desc.FLMSTR, c.cfg.Kind.legacyMasters(), c.log)
	c.desc, c.geom = desc, geom

	c.log.Debugf("%s flash: %s (%d bytes), %d regions",
		c.cfg.Kind, humanize.IBytes(geom.TotalSize), geom.TotalSize, len(geom.Regions))
	return nil
}

func dumpRegisters(regs mmio.Registers, fn func(offset, value uint32)) {
	for i := uint32(0); i < numRegisters; i += 4 {
		fn(i, regs.Read32(i))
	}
}

// Descriptor returns the registers read by Setup, or nil before Setup.
func (c *Controller) Descriptor() *Descriptor {
	return c.desc
}

// Geometry returns the decoded flash size and regions, or nil before Setup.
func (c *Controller) Geometry() *ifd.Geometry {
	return c.geom
}

// FirmwareSize is the decoded flash capacity in bytes.
func (c *Controller) FirmwareSize() uint64 {
	if c.geom == nil {
		return 0
	}
	return c.geom.TotalSize
}

// Regions returns the populated regions, each carrying its own access
// rights. The slice must not be modified.
func (c *Controller) Regions() []ifd.FlashRegion {
	if c.geom == nil {
		return nil
	}
	return c.geom.Regions
}

func (c *Controller) geometry() (*ifd.Geometry, error) {
	if c.geom == nil {
		return nil, fmt.Errorf("descriptor not decoded: %w", ErrNotSupported)
	}
	return c.geom, nil
}
