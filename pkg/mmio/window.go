// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmio

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"unsafe"
)

var (
	// ErrAccessDenied means the platform refused direct physical memory
	// access, typically because the kernel is locked down.
	ErrAccessDenied = errors.New("physical memory access denied")

	// ErrIO covers any other failure to map or unmap physical memory.
	ErrIO = errors.New("physical memory I/O error")

	// ErrBusy means a window onto the same physical base is already open.
	ErrBusy = errors.New("physical memory window already open")
)

// DevMemPath is the device exposing physical memory.
var DevMemPath = "/dev/mem"

// Error describes a failed operation on a physical memory window.
type Error struct {
	Op   string
	Base uint64
	// Kind is ErrAccessDenied, ErrIO or ErrBusy.
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %#x: %v", e.Op, e.Base, e.Kind)
	}
	return fmt.Sprintf("%s %#x: %v: %v", e.Op, e.Base, e.Kind, e.Err)
}

// Unwrap allows errors.Is to match both Kind and the underlying error.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(op string, base uint64, err error) *Error {
	kind := ErrIO
	if errors.Is(err, os.ErrPermission) {
		kind = ErrAccessDenied
	}
	return &Error{Op: op, Base: base, Kind: kind, Err: err}
}

// owners tracks the physical bases with a live window so that two sessions
// never drive the same controller.
var owners = struct {
	sync.Mutex
	bases map[uint64]struct{}
}{bases: map[uint64]struct{}{}}

func acquire(base uint64) error {
	owners.Lock()
	defer owners.Unlock()
	if _, ok := owners.bases[base]; ok {
		return &Error{Op: "open", Base: base, Kind: ErrBusy}
	}
	owners.bases[base] = struct{}{}
	return nil
}

func release(base uint64) {
	owners.Lock()
	defer owners.Unlock()
	delete(owners.bases, base)
}

// Window is a mapping of a physical address range. It is valid between a
// successful Open and the first Close; register access outside that
// lifetime panics.
type Window struct {
	base uint64
	mem  []byte
}

var _ Registers = (*Window)(nil)

// Open maps size bytes of physical memory starting at base. base must be
// page aligned.
func Open(base uint64, size int) (*Window, error) {
	if err := acquire(base); err != nil {
		return nil, err
	}
	mem, err := mmap(base, size)
	if err != nil {
		release(base)
		return nil, err
	}
	return &Window{base: base, mem: mem}, nil
}

// Base returns the physical address of the first byte.
func (w *Window) Base() uint64 {
	return w.base
}

// Size returns the length of the mapping, or zero once closed.
func (w *Window) Size() int {
	return len(w.mem)
}

// Close unmaps the window. The window is gone afterwards even if unmapping
// reports an error. Closing an already closed window does nothing.
func (w *Window) Close() error {
	if w.mem == nil {
		return nil
	}
	mem := w.mem
	w.mem = nil
	defer release(w.base)
	if err := munmap(mem); err != nil {
		return &Error{Op: "close", Base: w.base, Kind: ErrIO, Err: err}
	}
	return nil
}

func (w *Window) ptr(offset uint32, width uint32) unsafe.Pointer {
	if w.mem == nil {
		panic(fmt.Sprintf("mmio: access to closed window at %#x", w.base))
	}
	checkOffset(offset, width, len(w.mem))
	return unsafe.Pointer(&w.mem[offset])
}

// Read16 implements Registers.
func (w *Window) Read16(offset uint32) uint16 {
	return toLE16(*(*uint16)(w.ptr(offset, 2)))
}

// Read32 implements Registers.
func (w *Window) Read32(offset uint32) uint32 {
	return toLE32(atomic.LoadUint32((*uint32)(w.ptr(offset, 4))))
}

// Write16 implements Registers.
func (w *Window) Write16(offset uint32, value uint16) {
	*(*uint16)(w.ptr(offset, 2)) = fromLE16(value)
}

// Write32 implements Registers.
func (w *Window) Write32(offset uint32, value uint32) {
	atomic.StoreUint32((*uint32)(w.ptr(offset, 4)), fromLE32(value))
}
