// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux
// +build linux

package mmio

import (
	"fmt"
	"os"

	"github.com/u-root/u-root/pkg/memio"
)

// DevMem accesses physical memory with seek and read/write on /dev/mem
// instead of a mapping. It is slower than Window but works on kernels that
// refuse to mmap the range. Each access panics if the kernel rejects it.
type DevMem struct {
	base   uint64
	size   int
	closed bool
}

var _ Registers = (*DevMem)(nil)

// OpenDevMem claims the physical range [base, base+size). It fails with
// ErrAccessDenied if DevMemPath cannot be opened for writing, as on a
// locked down kernel.
func OpenDevMem(base uint64, size int) (*DevMem, error) {
	if err := acquire(base); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(DevMemPath, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		release(base)
		return nil, newError("open", base, err)
	}
	if err := f.Close(); err != nil {
		release(base)
		return nil, newError("open", base, err)
	}
	return &DevMem{base: base, size: size}, nil
}

// Close releases the range. Closing twice does nothing.
func (d *DevMem) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	release(d.base)
	return nil
}

func (d *DevMem) addr(offset uint32, width uint32) int64 {
	if d.closed {
		panic(fmt.Sprintf("mmio: access to closed window at %#x", d.base))
	}
	checkOffset(offset, width, d.size)
	return int64(d.base) + int64(offset)
}

// Read16 implements Registers.
func (d *DevMem) Read16(offset uint32) uint16 {
	var v memio.Uint16
	if err := memio.Read(d.addr(offset, 2), &v); err != nil {
		panic(newError("read", d.base+uint64(offset), err))
	}
	return uint16(v)
}

// Read32 implements Registers.
func (d *DevMem) Read32(offset uint32) uint32 {
	var v memio.Uint32
	if err := memio.Read(d.addr(offset, 4), &v); err != nil {
		panic(newError("read", d.base+uint64(offset), err))
	}
	return uint32(v)
}

// Write16 implements Registers.
func (d *DevMem) Write16(offset uint32, value uint16) {
	v := memio.Uint16(value)
	if err := memio.Write(d.addr(offset, 2), &v); err != nil {
		panic(newError("write", d.base+uint64(offset), err))
	}
}

// Write32 implements Registers.
func (d *DevMem) Write32(offset uint32, value uint32) {
	v := memio.Uint32(value)
	if err := memio.Write(d.addr(offset, 4), &v); err != nil {
		panic(newError("write", d.base+uint64(offset), err))
	}
}
