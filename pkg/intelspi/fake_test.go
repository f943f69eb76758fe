// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

import (
	"testing"
	"time"

	"github.com/linuxboot/intelspi/pkg/log"
	"github.com/linuxboot/intelspi/pkg/mmio"
	"github.com/stretchr/testify/require"
)

type cycle struct {
	addr   uint32
	n      uint32
	fcycle uint16
}

// fakeSPI emulates the hardware sequencing part of a PCH SPI controller on
// top of a plain register buffer.
type fakeSPI struct {
	*mmio.Buffer

	flash []byte
	desc  map[[2]uint32]uint32

	failAt map[uint32]bool
	hangAt map[uint32]bool
	// failAfter makes the cycle at an address report FCERR on the given
	// HSFS poll, with neither status bit set before it.
	failAfter map[uint32]int
	pending   int
	// readErr makes every register read panic, as DevMem does when the
	// kernel refuses an access.
	readErr error

	cycles   []cycle
	fdoc     []uint32
	closed   int
	closeErr error
}

var _ Window = (*fakeSPI)(nil)

func newFakeSPI(flash []byte) *fakeSPI {
	return &fakeSPI{
		Buffer:    mmio.NewBuffer(SPIBARSize),
		flash:     flash,
		desc:      map[[2]uint32]uint32{},
		failAt:    map[uint32]bool{},
		hangAt:    map[uint32]bool{},
		failAfter: map[uint32]int{},
	}
}

func (f *fakeSPI) setDescriptor(section, index, value uint32) {
	f.desc[[2]uint32{section, index}] = value
}

func (f *fakeSPI) Read16(offset uint32) uint16 {
	if f.readErr != nil {
		panic(&mmio.Error{Op: "read", Base: uint64(offset), Kind: mmio.ErrAccessDenied, Err: f.readErr})
	}
	if offset == regHSFS && f.pending > 0 {
		f.pending--
		if f.pending == 0 {
			f.Buffer.Write16(regHSFS, f.Buffer.Read16(regHSFS)|hsfsFCERR)
		}
	}
	return f.Buffer.Read16(offset)
}

func (f *fakeSPI) Read32(offset uint32) uint32 {
	if f.readErr != nil {
		panic(&mmio.Error{Op: "read", Base: uint64(offset), Kind: mmio.ErrAccessDenied, Err: f.readErr})
	}
	return f.Buffer.Read32(offset)
}

func (f *fakeSPI) Write16(offset uint32, value uint16) {
	switch offset {
	case regHSFS:
		w1c := value & (hsfsFDONE | hsfsFCERR | hsfsAEL)
		f.Buffer.Write16(regHSFS, f.Buffer.Read16(regHSFS)&^w1c)
	case regHSFC:
		f.Buffer.Write16(regHSFC, value&^hsfcFGO)
		if value&hsfcFGO != 0 {
			f.cycle(value)
		}
	default:
		f.Buffer.Write16(offset, value)
	}
}

func (f *fakeSPI) Write32(offset uint32, value uint32) {
	f.Buffer.Write32(offset, value)
	if offset == regFDOC {
		f.fdoc = append(f.fdoc, value)
		section := (value & fdocFDSS) >> 12
		index := (value & fdocFDSI) >> 2
		f.Buffer.Write32(regFDOD, f.desc[[2]uint32{section, index}])
	}
}

func (f *fakeSPI) cycle(hsfc uint16) {
	addr := f.Buffer.Read32(regFADDR) & faddrFLA
	c := cycle{
		addr:   addr,
		n:      uint32(hsfc&hsfcFDBC)>>8 + 1,
		fcycle: (hsfc & hsfcFCYCLE) >> 1,
	}
	f.cycles = append(f.cycles, c)

	hsfs := f.Buffer.Read16(regHSFS)
	switch {
	case f.hangAt[addr]:
		return
	case f.failAfter[addr] > 0:
		f.pending = f.failAfter[addr]
		return
	case f.failAt[addr]:
		hsfs |= hsfsFCERR | hsfsFDONE
	default:
		for i := uint32(0); i < BlockSize; i += 4 {
			var word uint32
			for j := uint32(0); j < 4; j++ {
				b := byte(0xff)
				if k := addr + i + j; i+j < c.n && int(k) < len(f.flash) {
					b = f.flash[k]
				}
				word |= uint32(b) << (8 * j)
			}
			f.Buffer.Write32(regFDATA0+i, word)
		}
		hsfs |= hsfsFDONE
	}
	f.Buffer.Write16(regHSFS, hsfs)
}

func (f *fakeSPI) Close() error {
	f.closed++
	return f.closeErr
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

type sleepCounter struct {
	calls int
	total time.Duration
}

func (s *sleepCounter) sleep(d time.Duration) {
	s.calls++
	s.total += d
}

func testConfig(f *fakeSPI, sc *sleepCounter) Config {
	return Config{
		Kind:   KindPCH300,
		SPIBAR: 0xfe010000,
		Open: func(base uint64, size int) (Window, error) {
			if base != 0xfe010000 || size != SPIBARSize {
				panic("unexpected SPIBAR mapping")
			}
			return f, nil
		},
		Logger: log.Discard,
		Read:   ReadConfig{Sleep: sc.sleep},
	}
}

// openController returns an opened Controller on top of f.
func openController(t *testing.T, f *fakeSPI) (*Controller, *sleepCounter) {
	t.Helper()
	sc := &sleepCounter{}
	c := New(testConfig(f, sc))
	require.NoError(t, c.Open())
	t.Cleanup(func() { _ = c.Close() })
	return c, sc
}
