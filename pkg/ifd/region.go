// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ifd models the Intel Flash Descriptor as seen through the SPI
// controller registers: regions, their byte ranges, and which flash masters
// may read or write them.
package ifd

import (
	"fmt"
)

// Region identifies a flash region. The value is the region index used by
// the FREGx and FLMSTRx registers.
type Region int

// IFD regions. Not every index is allocated.
const (
	RegionDesc     Region = 0x0
	RegionBIOS     Region = 0x1
	RegionME       Region = 0x2
	RegionGbE      Region = 0x3
	RegionPlatform Region = 0x4
	RegionDevExp   Region = 0x5
	RegionBIOS2    Region = 0x6
	RegionEC       Region = 0x8
	RegionIE       Region = 0xa
	RegionTenGbE   Region = 0xb
)

var regionIDs = map[Region]string{
	RegionDesc:     "desc",
	RegionBIOS:     "bios",
	RegionME:       "me",
	RegionGbE:      "gbe",
	RegionPlatform: "platform",
	RegionDevExp:   "devexp",
	RegionBIOS2:    "bios2",
	RegionEC:       "ec",
	RegionIE:       "ie",
	RegionTenGbE:   "10gbe",
}

var regionNames = map[Region]string{
	RegionDesc:     "IFD descriptor region",
	RegionBIOS:     "BIOS",
	RegionME:       "Intel Management Engine",
	RegionGbE:      "Gigabit Ethernet",
	RegionPlatform: "Platform firmware",
	RegionDevExp:   "Device Firmware",
	RegionBIOS2:    "BIOS Backup",
	RegionEC:       "Embedded Controller",
	RegionIE:       "Innovation Engine",
	RegionTenGbE:   "10 Gigabit Ethernet",
}

// String returns the short identifier of the region, e.g. "bios", or an
// empty string for an unallocated index.
func (r Region) String() string {
	return regionIDs[r]
}

// Name returns a name the user might recognize, e.g. "Intel Management
// Engine", or an empty string for an unallocated index.
func (r Region) Name() string {
	return regionNames[r]
}

// Valid reports whether r is an allocated region index.
func (r Region) Valid() bool {
	_, ok := regionIDs[r]
	return ok
}

// ParseRegion is the inverse of Region.String.
func ParseRegion(s string) (Region, error) {
	for r, id := range regionIDs {
		if id == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown region %q", s)
}
