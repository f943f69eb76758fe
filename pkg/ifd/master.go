// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ifd

// Master identifies a flash master, i.e. the bus agent an FLMSTRx register
// describes. FLMSTR1 belongs to MasterHost, FLMSTR2 to MasterME and so on.
type Master int

// Flash masters with a permission word in descriptor section 3.
const (
	MasterHost Master = iota + 1
	MasterME
	MasterGbE
)

// NumMasters is the number of masters whose grants are combined into the
// access rights of a region.
const NumMasters = 3

var masterNames = map[Master]string{
	MasterHost: "BIOS",
	MasterME:   "ME",
	MasterGbE:  "GbE",
}

func (m Master) String() string {
	return masterNames[m]
}

// Legacy FLMSTR layout (ICH8 to ICH10): read grants in bits 16..19 and write
// grants in bits 24..27, one bit per region 0..3.
const (
	legacyReadShift  = 16
	legacyWriteShift = 24
)

// Modern FLMSTR layout: read grants in bits 8..19 and write grants in bits
// 20..31, one bit per region index.
const (
	readShift  = 8
	writeShift = 20
)

// MasterAccess decodes the grant a single FLMSTR word gives on region r.
// Regions the layout has no bit for yield AccessNone.
func MasterAccess(r Region, flmstr uint32, legacy bool) Access {
	var rbit, wbit uint
	if legacy {
		if r < RegionDesc || r > RegionGbE {
			return AccessNone
		}
		rbit = legacyReadShift + uint(r)
		wbit = legacyWriteShift + uint(r)
	} else {
		if r < RegionDesc || r >= writeShift-readShift {
			return AccessNone
		}
		rbit = readShift + uint(r)
		wbit = writeShift + uint(r)
	}

	access := AccessNone
	if (flmstr>>rbit)&1 != 0 {
		access |= AccessRead
	}
	if (flmstr>>wbit)&1 != 0 {
		access |= AccessWrite
	}
	return access
}
