// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

import (
	"context"
	"fmt"
	"math"

	"github.com/linuxboot/intelspi/pkg/mmio"
)

// session is one run of the read protocol.
type session struct {
	regs mmio.Registers
	rc   ReadConfig

	addr uint32
	buf  []byte
}

// Dump reads length bytes of flash starting at offset using hardware
// sequencing read cycles of BlockSize bytes. The last block is shortened if
// length is not a multiple of BlockSize. Cancellation is honored between
// blocks. On error no data is returned.
func (c *Controller) Dump(ctx context.Context, offset, length uint32) ([]byte, error) {
	regs, err := c.regs()
	if err != nil {
		return nil, err
	}
	if uint64(offset)+uint64(length) > math.MaxUint32+1 {
		return nil, fmt.Errorf("read of %#x bytes at %#x exceeds the flash address space", length, offset)
	}
	s := &session{
		regs: regs,
		rc:   c.cfg.Read,
		addr: offset,
		buf:  make([]byte, 0, length),
	}
	if err := s.run(ctx, uint64(length)); err != nil {
		return nil, err
	}
	return s.buf, nil
}

func (s *session) run(ctx context.Context, total uint64) error {
	// Acknowledge FDONE, FCERR and AEL left over from a previous cycle.
	s.ackStatus()
	for uint64(len(s.buf)) < total {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("read cancelled @%#x: %w", s.addr, err)
		}
		n := uint32(BlockSize)
		if remaining := total - uint64(len(s.buf)); remaining < BlockSize {
			n = uint32(remaining)
		}
		if err := s.readBlock(n); err != nil {
			return err
		}
		s.addr += n
		if s.rc.Progress != nil {
			s.rc.Progress(uint64(len(s.buf)), total)
		}
	}
	return nil
}

// ackStatus writes back the current HSFS value; its status bits are write
// one to clear.
func (s *session) ackStatus() {
	s.regs.Write16(regHSFS, s.regs.Read16(regHSFS))
}

func (s *session) readBlock(n uint32) error {
	if len(s.buf) > 0 {
		s.ackStatus()
	}
	s.setAddr(s.addr)

	hsfc := s.regs.Read16(regHSFC)
	hsfc &^= hsfcFCYCLE
	hsfc &^= hsfcFDBC
	hsfc |= uint16((n-1)<<8) & hsfcFDBC
	hsfc |= hsfcFGO
	s.regs.Write16(regHSFC, hsfc)

	if err := s.wait(); err != nil {
		return err
	}

	var tmp uint32
	for i := uint32(0); i < n; i++ {
		if i%4 == 0 {
			tmp = s.regs.Read32(regFDATA0 + i)
		}
		s.buf = append(s.buf, byte(tmp>>((i%4)*8)))
	}
	return nil
}

// setAddr replaces FLA in FADDR and keeps the reserved bits.
func (s *session) setAddr(addr uint32) {
	old := s.regs.Read32(regFADDR) &^ faddrFLA
	s.regs.Write32(regFADDR, (addr&faddrFLA)|old)
}

func (s *session) wait() error {
	s.rc.Sleep(s.rc.SettleDelay)
	for i := 0; i < s.rc.polls(); i++ {
		hsfs := s.regs.Read16(regHSFS)
		if hsfs&hsfsFCERR != 0 {
			return &CycleError{Addr: s.addr, Err: ErrHardware}
		}
		if hsfs&hsfsFDONE != 0 {
			return nil
		}
		s.rc.Sleep(s.rc.PollInterval)
	}
	return &CycleError{Addr: s.addr, Err: ErrTimeout}
}
