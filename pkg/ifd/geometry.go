// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ifd

import (
	"fmt"

	"github.com/linuxboot/intelspi/pkg/log"
)

const (
	// DensityAbsent marks an unpopulated flash component in FLCOMP.
	DensityAbsent = 0xf

	densityShift = 19

	fregBaseMask = 0x00007fff
	fregBlock    = 12
)

// ComponentSize returns the size in bytes encoded by a 4-bit FLCOMP density
// code. DensityAbsent yields zero.
func ComponentSize(density uint8) uint64 {
	density &= 0xf
	if density == DensityAbsent {
		return 0
	}
	return 1 << (densityShift + uint64(density))
}

// TotalSize sums the two component densities in bits [3:0] and [7:4] of
// FLCOMP. Any further components are not taken into account.
func TotalSize(flcomp uint32) uint64 {
	return ComponentSize(uint8(flcomp&0x0f)) + ComponentSize(uint8((flcomp&0xf0)>>4))
}

// DecodeFREG unpacks a FREGx register into the first and last byte offset
// of the region. Both fields count 4KiB blocks.
func DecodeFREG(freg uint32) (base, limit uint32) {
	base = (freg & fregBaseMask) << fregBlock
	limit = ((freg>>16)&fregBaseMask)<<fregBlock | (1<<fregBlock - 1)
	return base, limit
}

// FlashRegion is a populated region together with the access rights the
// flash masters hold on it.
type FlashRegion struct {
	Region Region
	// Base is the offset of the first byte.
	Base uint32
	// Limit is the offset of the last byte.
	Limit uint32
	// Masters holds the grant of each master, indexed by Master-1.
	Masters [NumMasters]Access
	// Access is the union of Masters.
	Access Access
}

// Size returns the number of bytes in the region.
func (r *FlashRegion) Size() uint64 {
	if r.Limit < r.Base {
		return 0
	}
	return uint64(r.Limit) - uint64(r.Base) + 1
}

// EndOffset returns the offset just past the last byte of the region.
func (r *FlashRegion) EndOffset() uint64 {
	return uint64(r.Base) + r.Size()
}

// MasterAccess returns the grant of master m on this region.
func (r *FlashRegion) MasterAccess(m Master) Access {
	if m < MasterHost || int(m) > NumMasters {
		return AccessNone
	}
	return r.Masters[m-1]
}

func (r *FlashRegion) String() string {
	return fmt.Sprintf("%s[%#x, %#x]{%s}", r.Region, r.Base, r.Limit, r.Access)
}

// Geometry is the decoded capacity and region map of the flash.
type Geometry struct {
	TotalSize uint64
	Regions   []FlashRegion
}

// NewGeometry decodes FLCOMP, the FREG0..3 registers and the FLMSTR words.
// Regions with a zero FREG are absent; the descriptor region is never part
// of the list. Only the first NumMasters entries of flmstr are consulted.
// Regions reaching past the flash are clamped and reported to l, which
// defaults to log.DefaultLogger.
func NewGeometry(flcomp uint32, freg [4]uint32, flmstr [4]uint32, legacy bool, l log.Logger) *Geometry {
	if l == nil {
		l = log.DefaultLogger
	}
	g := &Geometry{TotalSize: TotalSize(flcomp)}
	for i := RegionBIOS; int(i) < len(freg); i++ {
		if freg[i] == 0 {
			continue
		}
		fr := FlashRegion{Region: i}
		fr.Base, fr.Limit = DecodeFREG(freg[i])
		if g.TotalSize > 0 && uint64(fr.Limit) >= g.TotalSize {
			l.Warnf("region %s (%d, %#x) out of bounds: limit %#x, flash size %#x, clamping",
				i, i, freg[i], fr.Limit, g.TotalSize)
			fr.Limit = uint32(g.TotalSize - 1)
			// A region starting past the flash keeps no bytes and ends
			// at the flash size.
			if uint64(fr.Base) > g.TotalSize {
				fr.Base = uint32(g.TotalSize)
			}
		}
		for j := 0; j < NumMasters; j++ {
			fr.Masters[j] = MasterAccess(i, flmstr[j], legacy)
			fr.Access |= fr.Masters[j]
		}
		g.Regions = append(g.Regions, fr)
	}
	return g
}

// Region returns the decoded region r, if present.
func (g *Geometry) Region(r Region) (*FlashRegion, bool) {
	for i := range g.Regions {
		if g.Regions[i].Region == r {
			return &g.Regions[i], true
		}
	}
	return nil, false
}
