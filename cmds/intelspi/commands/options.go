// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/linuxboot/intelspi/pkg/intelspi"
	"github.com/linuxboot/intelspi/pkg/log"
)

// Options are the flags shared by every command. SPIBAR and Kind take the
// same values as the IntelSpiBar and IntelSpiKind quirks.
type Options struct {
	SPIBAR  string        `long:"spibar" env:"INTELSPI_SPIBAR" description:"physical base address of the SPI controller registers"`
	Kind    string        `long:"kind" env:"INTELSPI_KIND" description:"controller generation [apl, c620, ich9, pch100, pch200, pch300, pch400]"`
	Verbose bool          `short:"v" long:"verbose" description:"log debug messages and dump every SPIBAR register"`
	DevMem  bool          `long:"devmem" description:"use read/write on /dev/mem instead of mmap"`
	Timeout time.Duration `long:"timeout" default:"10ms" description:"time to wait for a single 64 byte read cycle"`
}

// Config turns the options into a validated controller configuration.
func (o *Options) Config() (intelspi.Config, error) {
	var cfg intelspi.Config
	for _, q := range [][2]string{
		{intelspi.QuirkSPIBAR, o.SPIBAR},
		{intelspi.QuirkKind, o.Kind},
	} {
		if q[1] == "" {
			continue
		}
		if err := cfg.SetQuirk(q[0], q[1]); err != nil {
			return cfg, ErrArgs{Err: err}
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, ErrArgs{Err: err}
	}

	cfg.Verbose = o.Verbose
	cfg.Read.Timeout = o.Timeout
	if o.DevMem {
		cfg.Open = intelspi.OpenDevMem
	}
	if o.Verbose {
		log.DefaultLogger = log.New(log.LevelDebug)
	}
	cfg.Logger = log.DefaultLogger
	return cfg, nil
}

// Run builds a controller, decodes its descriptor and calls fn with the
// SPIBAR still mapped. Each of opts may adjust the configuration first.
func (o *Options) Run(fn func(c *intelspi.Controller) error, opts ...func(*intelspi.Config)) error {
	cfg, err := o.Config()
	if err != nil {
		return err
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := intelspi.New(cfg)
	return c.Do(func() error {
		if err := c.Setup(); err != nil {
			return err
		}
		return fn(c)
	})
}

// Context returns a context cancelled on interrupt.
func Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
