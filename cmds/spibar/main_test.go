// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/linuxboot/intelspi/pkg/intelspi"
	"github.com/linuxboot/intelspi/pkg/mmio"
	"github.com/stretchr/testify/require"
)

func TestPrintRegisters(t *testing.T) {
	regs := mmio.NewBuffer(intelspi.SPIBARSize)
	regs.Write32(0x04, 0xe008)
	regs.Write32(0x54, 0x00000fff)

	var buf bytes.Buffer
	printRegisters(&buf, regs, 0x100)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 64)
	require.Equal(t, "SPIBAR[0x00] = 0x0", lines[0])
	require.Equal(t, "SPIBAR[0x04] = 0xe008", lines[1])
	require.Equal(t, "SPIBAR[0x54] = 0xfff", lines[0x54/4])

	buf.Reset()
	printRegisters(&buf, regs, 6)
	require.Equal(t, "SPIBAR[0x00] = 0x0\n", buf.String())
}
