// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

// SPIBARSize is the length of the mapped register window.
const SPIBARSize = 0x10000

// SPIBAR register offsets.
const (
	regHSFS   = 0x04 // hardware sequencing flash status (16 bit)
	regHSFC   = 0x06 // hardware sequencing flash control (16 bit)
	regFADDR  = 0x08 // flash address
	regFDATA0 = 0x10 // first of sixteen data registers
	regFRAP   = 0x50 // flash region access permissions (16 bit)
	regFREG0  = 0x54 // first of the region base/limit registers
	regFDOC   = 0xb4 // flash descriptor observability control
	regFDOD   = 0xb8 // flash descriptor observability data
)

// HSFS bits.
const (
	hsfsFDONE = 1 << 0 // cycle done, write 1 to clear
	hsfsFCERR = 1 << 1 // cycle error, write 1 to clear
	hsfsAEL   = 1 << 2 // access error log, write 1 to clear
)

// HSFC bits.
const (
	hsfcFGO    = 1 << 0
	hsfcFCYCLE = 0xf << 1
	hsfcFDBC   = 0x3f << 8
)

const (
	faddrFLA = 0x07ffffff

	fdocFDSI = 0x3f << 2
	fdocFDSS = 0x3 << 12
)

// BlockSize is the width of the hardware data FIFO, FDATA0..FDATA15.
const BlockSize = 0x40

// numRegisters is how far the verbose register dump reaches.
const numRegisters = 0x100
