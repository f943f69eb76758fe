// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regions

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/linuxboot/intelspi/pkg/ifd"
	"github.com/linuxboot/intelspi/pkg/log"
	"github.com/stretchr/testify/require"
)

func testRegions() []ifd.FlashRegion {
	return ifd.NewGeometry(0x4,
		[4]uint32{0, 0x07ff0200, 0x01ff0003, 0x00020001},
		[4]uint32{1<<9 | 1<<21 | 1<<11, 1<<10 | 1<<22, 1<<11 | 1<<23, 0},
		false, log.Discard).Regions
}

func TestFilter(t *testing.T) {
	regions := testRegions()
	require.Len(t, Filter(regions, nil), 3)

	got := Filter(regions, map[ifd.Region]bool{ifd.RegionME: true})
	require.Len(t, got, 1)
	require.Equal(t, ifd.RegionME, got[0].Region)

	require.Empty(t, Filter(regions, map[ifd.Region]bool{ifd.RegionEC: true}))
}

func TestPrint(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, testRegions()))
	s := buf.String()
	require.Contains(t, s, "Flash Regions")
	require.Contains(t, s, "Intel Management Engine")
	require.Contains(t, s, "0x200000")
	require.Contains(t, s, "--")
	require.NotContains(t, s, "\x1b[")

	buf.Reset()
	require.NoError(t, Print(&buf, nil))
	require.Equal(t, "no regions\n", buf.String())
}

func TestColorAccess(t *testing.T) {
	color.NoColor = false
	defer func() { color.NoColor = true }()
	require.Equal(t, colorRW.Sprint("rw"), colorAccess("rw"))
	require.Equal(t, colorRO.Sprint("ro"), colorAccess("ro"))
	require.Equal(t, colorNone.Sprint("--"), colorAccess("--"))
	require.Contains(t, colorAccess("rw"), "\x1b[")
}
