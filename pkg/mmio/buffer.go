// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmio

import (
	"encoding/binary"
)

// Buffer is a register bank backed by ordinary memory. It is used to replay
// a saved SPIBAR snapshot and to build fake controllers.
type Buffer struct {
	mem []byte
}

var _ Registers = (*Buffer)(nil)

// NewBuffer returns a zeroed Buffer of size bytes.
func NewBuffer(size int) *Buffer {
	return &Buffer{mem: make([]byte, size)}
}

// NewBufferFrom wraps an existing snapshot without copying it.
func NewBufferFrom(mem []byte) *Buffer {
	return &Buffer{mem: mem}
}

// Bytes returns the backing memory.
func (b *Buffer) Bytes() []byte {
	return b.mem
}

// Read16 implements Registers.
func (b *Buffer) Read16(offset uint32) uint16 {
	checkOffset(offset, 2, len(b.mem))
	return binary.LittleEndian.Uint16(b.mem[offset:])
}

// Read32 implements Registers.
func (b *Buffer) Read32(offset uint32) uint32 {
	checkOffset(offset, 4, len(b.mem))
	return binary.LittleEndian.Uint32(b.mem[offset:])
}

// Write16 implements Registers.
func (b *Buffer) Write16(offset uint32, value uint16) {
	checkOffset(offset, 2, len(b.mem))
	binary.LittleEndian.PutUint16(b.mem[offset:], value)
}

// Write32 implements Registers.
func (b *Buffer) Write32(offset uint32, value uint32) {
	checkOffset(offset, 4, len(b.mem))
	binary.LittleEndian.PutUint32(b.mem[offset:], value)
}
