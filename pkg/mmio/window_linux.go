// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux
// +build linux

package mmio

import (
	"os"

	"golang.org/x/sys/unix"
)

func mmap(base uint64, size int) ([]byte, error) {
	// This will fail if the kernel is locked down.
	f, err := os.OpenFile(DevMemPath, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, newError("open", base, err)
	}
	// The mapping outlives the descriptor.
	defer f.Close()

	mem, err := unix.Mmap(int(f.Fd()), int64(base), size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, newError("mmap", base, err)
	}
	return mem, nil
}

func munmap(mem []byte) error {
	return unix.Munmap(mem)
}
