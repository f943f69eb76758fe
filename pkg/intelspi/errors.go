// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSupported means the controller is not configured well enough to
	// touch the hardware: no kind, no SPIBAR, or no decoded descriptor.
	ErrNotSupported = errors.New("not supported")

	// ErrNotOpen means a register access was attempted without an open window.
	ErrNotOpen = errors.New("SPIBAR is not mapped")

	// ErrHardware means the controller set FCERR for a cycle.
	ErrHardware = errors.New("HSFS transaction error")

	// ErrTimeout means neither FDONE nor FCERR was set in time.
	ErrTimeout = errors.New("HSFS timed out")
)

// CycleError is a failed flash read cycle. Err is ErrHardware or ErrTimeout.
type CycleError struct {
	Addr uint32
	Err  error
}

func (err *CycleError) Error() string {
	return fmt.Sprintf("failed @%#x: %v", err.Addr, err.Err)
}

func (err *CycleError) Unwrap() error {
	return err.Err
}
