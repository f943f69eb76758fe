// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux
// +build !linux

package mmio

// DevMem is only implemented on linux.
type DevMem struct{}

// OpenDevMem always fails on this platform.
func OpenDevMem(base uint64, size int) (*DevMem, error) {
	return nil, &Error{Op: "open", Base: base, Kind: ErrIO, Err: errUnsupported}
}

// Close implements io.Closer.
func (d *DevMem) Close() error                    { return nil }
func (d *DevMem) Read16(offset uint32) uint16     { panic(errUnsupported) }
func (d *DevMem) Read32(offset uint32) uint32     { panic(errUnsupported) }
func (d *DevMem) Write16(offset uint32, v uint16) { panic(errUnsupported) }
func (d *DevMem) Write32(offset uint32, v uint32) { panic(errUnsupported) }
