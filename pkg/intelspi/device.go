// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package intelspi reads the SPI flash of Intel platforms through the
// SPIBAR registers of the PCH: it decodes the flash descriptor into a region
// map with per-master access rights and dumps the flash contents with the
// hardware sequencing read cycle.
//
// A typical session is
//
//	c := intelspi.New(cfg)
//	err := c.Do(func() error {
//		if err := c.Setup(); err != nil {
//			return err
//		}
//		fw, err := c.Parse(ctx)
//		...
//	})
package intelspi

import (
	"context"
	"fmt"
	"io"

	"github.com/linuxboot/fiano/pkg/uefi"
	"github.com/linuxboot/intelspi/pkg/ifd"
	"github.com/linuxboot/intelspi/pkg/log"
	"github.com/linuxboot/intelspi/pkg/mmio"
)

// Device is the set of operations a flash controller family provides.
type Device interface {
	Open() error
	Close() error
	Probe() error
	Setup() error
	Dump(ctx context.Context, offset, length uint32) ([]byte, error)
	Parse(ctx context.Context) (uefi.Firmware, error)
	Describe(w io.Writer, verbose bool) error
}

var _ Device = (*Controller)(nil)

// Controller drives the SPI controller of one PCH.
type Controller struct {
	cfg Config
	log log.Logger

	win  Window
	desc *Descriptor
	geom *ifd.Geometry
}

// OpenMapped maps the SPIBAR through /dev/mem.
func OpenMapped(base uint64, size int) (Window, error) {
	w, err := mmio.Open(base, size)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// OpenDevMem accesses the SPIBAR with seek-based /dev/mem I/O.
func OpenDevMem(base uint64, size int) (Window, error) {
	d, err := mmio.OpenDevMem(base, size)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// New returns a Controller for cfg. Nothing is touched until Open.
func New(cfg Config) *Controller {
	if cfg.Open == nil {
		cfg.Open = OpenMapped
	}
	if cfg.Parser == nil {
		cfg.Parser = ParseImage
	}
	if cfg.Logger == nil {
		cfg.Logger = log.DefaultLogger
	}
	cfg.Read = cfg.Read.withDefaults()
	return &Controller{cfg: cfg, log: cfg.Logger}
}

// Kind returns the configured controller generation.
func (c *Controller) Kind() Kind {
	return c.cfg.Kind
}

// Probe checks the configuration before any hardware is touched.
func (c *Controller) Probe() error {
	if c.cfg.Kind == KindUnknown {
		return fmt.Errorf("%s not set: %w", QuirkKind, ErrNotSupported)
	}
	return nil
}

// Open maps the SPIBAR. Every successful Open must be paired with Close.
func (c *Controller) Open() error {
	if c.win != nil {
		return fmt.Errorf("SPIBAR %#x already mapped", c.cfg.SPIBAR)
	}
	if c.cfg.SPIBAR == 0 {
		return fmt.Errorf("%s not set: %w", QuirkSPIBAR, ErrNotSupported)
	}
	win, err := c.cfg.Open(c.cfg.SPIBAR, SPIBARSize)
	if err != nil {
		return fmt.Errorf("failed to open mmap SPIBAR: %w", err)
	}
	c.win = win
	return nil
}

// Close releases the SPIBAR. The window is considered gone even if
// releasing it fails; closing twice does nothing.
func (c *Controller) Close() error {
	if c.win == nil {
		return nil
	}
	win := c.win
	c.win = nil
	if err := win.Close(); err != nil {
		return fmt.Errorf("failed to unmap SPIBAR: %w", err)
	}
	return nil
}

// Do opens the controller, runs fn and closes it again on every path. An
// error from fn takes precedence over an error from Close, which is then
// only logged. A register access that panics with an *mmio.Error is
// returned as that error.
func (c *Controller) Do(fn func() error) (err error) {
	if err := c.Probe(); err != nil {
		return err
	}
	if err := c.Open(); err != nil {
		return err
	}
	defer func() {
		cerr := c.Close()
		if cerr == nil {
			return
		}
		if err != nil {
			c.log.Warnf("%v", cerr)
			return
		}
		err = cerr
	}()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		merr, ok := r.(*mmio.Error)
		if !ok {
			panic(r)
		}
		err = fmt.Errorf("register access failed: %w", merr)
	}()
	return fn()
}

func (c *Controller) regs() (mmio.Registers, error) {
	if c.win == nil {
		return nil, ErrNotOpen
	}
	return c.win, nil
}
