// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/linuxboot/intelspi/pkg/log"
	"github.com/linuxboot/intelspi/pkg/mmio"
)

// Quirk keys understood by Config.SetQuirk.
const (
	QuirkSPIBAR = "IntelSpiBar"
	QuirkKind   = "IntelSpiKind"
)

// Default timing of a read cycle.
const (
	DefaultReadTimeout  = 10 * time.Millisecond
	DefaultPollInterval = 10 * time.Microsecond
	DefaultSettleDelay  = 1 * time.Microsecond
)

// ReadConfig holds the timing knobs of the chunked read protocol.
type ReadConfig struct {
	// Timeout bounds the wait for a single block.
	Timeout time.Duration
	// PollInterval is the delay between two HSFS reads.
	PollInterval time.Duration
	// SettleDelay is waited once after setting FGO.
	SettleDelay time.Duration
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
	// Progress, if set, is called after each block with the number of
	// bytes read so far and the total requested.
	Progress func(done, total uint64)
}

func (rc ReadConfig) withDefaults() ReadConfig {
	if rc.Timeout <= 0 {
		rc.Timeout = DefaultReadTimeout
	}
	if rc.PollInterval <= 0 {
		rc.PollInterval = DefaultPollInterval
	}
	if rc.SettleDelay < 0 {
		rc.SettleDelay = 0
	}
	if rc.Sleep == nil {
		rc.Sleep = time.Sleep
	}
	return rc
}

// polls is the number of HSFS reads before a block times out.
func (rc ReadConfig) polls() int {
	n := int(rc.Timeout / rc.PollInterval)
	if n < 1 {
		n = 1
	}
	return n
}

// Window is an open register bank that must be released.
type Window interface {
	mmio.Registers
	Close() error
}

// Opener maps the SPIBAR at a physical base.
type Opener func(base uint64, size int) (Window, error)

// Config describes one controller. Kind and SPIBAR come from quirk data.
type Config struct {
	Kind   Kind
	SPIBAR uint64

	Read ReadConfig

	// Verbose dumps every SPIBAR register during Setup.
	Verbose bool

	// Open defaults to mapping /dev/mem.
	Open Opener
	// Parser defaults to ParseImage.
	Parser Parser
	// Logger defaults to log.DefaultLogger.
	Logger log.Logger
}

// SetQuirk applies one quirk key/value pair.
func (c *Config) SetQuirk(key, value string) error {
	switch key {
	case QuirkSPIBAR:
		v, err := strconv.ParseUint(strings.TrimSpace(value), 0, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
		c.SPIBAR = v
		return nil
	case QuirkKind:
		k, err := ParseKind(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		c.Kind = k
		return nil
	}
	return fmt.Errorf("quirk %s: %w", key, ErrNotSupported)
}

// Validate reports every missing setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Kind == KindUnknown {
		result = multierror.Append(result, fmt.Errorf("%s not set: %w", QuirkKind, ErrNotSupported))
	}
	if c.SPIBAR == 0 {
		result = multierror.Append(result, fmt.Errorf("%s not set: %w", QuirkSPIBAR, ErrNotSupported))
	}
	return result.ErrorOrNil()
}
