// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmio

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferLittleEndian(t *testing.T) {
	b := NewBuffer(0x100)
	b.Write32(0x10, 0x11223344)
	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, b.Bytes()[0x10:0x14])
	require.Equal(t, uint32(0x11223344), b.Read32(0x10))
	require.Equal(t, uint16(0x3344), b.Read16(0x10))
	require.Equal(t, uint16(0x1122), b.Read16(0x12))

	b.Write16(0x04, 0xbeef)
	require.Equal(t, []byte{0xef, 0xbe}, b.Bytes()[0x04:0x06])
	require.Equal(t, uint32(0xbeef), b.Read32(0x04))
}

func TestBufferBadOffsets(t *testing.T) {
	b := NewBufferFrom(make([]byte, 0x10))
	require.Panics(t, func() { b.Read32(0x10) })
	require.Panics(t, func() { b.Read32(0x0e) })
	require.Panics(t, func() { b.Read32(0x02) })
	require.Panics(t, func() { b.Write16(0x03, 0) })
	require.Panics(t, func() { b.Read16(0xfffffffe) })
	require.NotPanics(t, func() { b.Read32(0x0c) })
	require.NotPanics(t, func() { b.Read16(0x0e) })
}

func TestErrorKinds(t *testing.T) {
	denied := newError("open", 0xfe010000, &os.PathError{Op: "open", Path: "/dev/mem", Err: syscall.EACCES})
	require.ErrorIs(t, denied, ErrAccessDenied)
	require.ErrorIs(t, denied, syscall.EACCES)
	require.NotErrorIs(t, denied, ErrIO)

	lockdown := newError("mmap", 0xfe010000, syscall.EPERM)
	require.ErrorIs(t, lockdown, ErrAccessDenied)

	other := newError("mmap", 0xfe010000, syscall.EINVAL)
	require.ErrorIs(t, other, ErrIO)
	require.NotErrorIs(t, other, ErrAccessDenied)
	require.Equal(t, "mmap 0xfe010000: physical memory I/O error: invalid argument", other.Error())
}

func TestOwnerRegistry(t *testing.T) {
	const base = 0xdead0000
	require.NoError(t, acquire(base))
	err := acquire(base)
	require.True(t, errors.Is(err, ErrBusy))
	release(base)
	require.NoError(t, acquire(base))
	release(base)
}
