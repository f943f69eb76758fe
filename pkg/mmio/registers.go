// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmio provides typed access to memory-mapped register banks such as
// the SPIBAR of an Intel PCH.
//
// Register values are little-endian in memory and are converted to host order
// on every access. Offsets are constants tied to a controller generation, so
// an offset outside the window or not aligned to its width is a programming
// error and panics.
package mmio

import (
	"encoding/binary"
	"fmt"
)

// Registers is a bank of 16- and 32-bit registers addressed by byte offset.
type Registers interface {
	Read16(offset uint32) uint16
	Read32(offset uint32) uint32
	Write16(offset uint32, value uint16)
	Write32(offset uint32, value uint32)
}

func checkOffset(offset uint32, width uint32, size int) {
	if offset%width != 0 {
		panic(fmt.Sprintf("mmio: offset %#x not aligned to %d bytes", offset, width))
	}
	if uint64(offset)+uint64(width) > uint64(size) {
		panic(fmt.Sprintf("mmio: offset %#x out of range for %#x byte window", offset, size))
	}
}

// toLE32 converts a value loaded in host order into the little-endian value
// it represents.
func toLE32(v uint32) uint32 {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], v)
	return binary.LittleEndian.Uint32(b[:])
}

func toLE16(v uint16) uint16 {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], v)
	return binary.LittleEndian.Uint16(b[:])
}

// fromLE32 is the inverse of toLE32.
func fromLE32(v uint32) uint32 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return binary.NativeEndian.Uint32(b[:])
}

func fromLE16(v uint16) uint16 {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return binary.NativeEndian.Uint16(b[:])
}
