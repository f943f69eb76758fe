// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux
// +build !linux

package mmio

import (
	"errors"
)

var errUnsupported = errors.New("physical memory mapping is only implemented on linux")

func mmap(base uint64, size int) ([]byte, error) {
	return nil, &Error{Op: "mmap", Base: base, Kind: ErrIO, Err: errUnsupported}
}

func munmap(mem []byte) error {
	return errUnsupported
}
