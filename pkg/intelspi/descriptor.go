// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

import (
	"github.com/linuxboot/intelspi/pkg/mmio"
)

// Descriptor sections reachable through FDOC/FDOD.
const (
	sectionMap       = 0
	sectionComponent = 1
	sectionMaster    = 3
)

// Descriptor is the raw register state read during Setup.
type Descriptor struct {
	HSFS uint16
	FRAP uint16
	FREG [4]uint32

	FLVALSIG uint32
	FLMAP0   uint32
	FLMAP1   uint32
	FLMAP2   uint32

	FLCOMP uint32
	FLILL  uint32
	FLPB   uint32

	FLMSTR [4]uint32
}

// readDescriptor reads register index of a descriptor section. The
// descriptor is not memory mapped; the section and index are written to FDOC
// and the value appears in FDOD.
func readDescriptor(regs mmio.Registers, section uint8, index uint16) uint32 {
	var control uint32
	control |= (uint32(section) << 12) & fdocFDSS
	control |= (uint32(index) << 2) & fdocFDSI
	regs.Write32(regFDOC, control)
	return regs.Read32(regFDOD)
}

func readDescriptorRegisters(regs mmio.Registers) *Descriptor {
	d := &Descriptor{
		HSFS: regs.Read16(regHSFS),
		FRAP: regs.Read16(regFRAP),
	}
	for i := range d.FREG {
		d.FREG[i] = regs.Read32(regFREG0 + uint32(i)*4)
	}
	d.FLVALSIG = readDescriptor(regs, sectionMap, 0)
	d.FLMAP0 = readDescriptor(regs, sectionMap, 1)
	d.FLMAP1 = readDescriptor(regs, sectionMap, 2)
	d.FLMAP2 = readDescriptor(regs, sectionMap, 3)
	d.FLCOMP = readDescriptor(regs, sectionComponent, 0)
	d.FLILL = readDescriptor(regs, sectionComponent, 1)
	d.FLPB = readDescriptor(regs, sectionComponent, 2)
	for i := range d.FLMSTR {
		d.FLMSTR[i] = readDescriptor(regs, sectionMaster, uint16(i))
	}
	return d
}
