// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// spibar prints the raw SPI controller registers of an Intel PCH.
//
// Synopsis:
//
//	spibar [--devmem] [--size N] SPIBAR
//
// Every 32-bit register is printed as
//
//	SPIBAR[0x04] = 0xe008
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/linuxboot/intelspi/pkg/intelspi"
	"github.com/linuxboot/intelspi/pkg/log"
	"github.com/linuxboot/intelspi/pkg/mmio"
)

var (
	devMem = flag.Bool("devmem", false, "use read/write on /dev/mem instead of mmap")
	size   = flag.Uint32("size", 0x100, "number of register bytes to print")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] SPIBAR\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	base, err := strconv.ParseUint(flag.Arg(0), 0, 64)
	if err != nil {
		log.Fatalf("invalid SPIBAR %q: %v", flag.Arg(0), err)
	}

	open := intelspi.OpenMapped
	if *devMem {
		open = intelspi.OpenDevMem
	}
	win, err := open(base, intelspi.SPIBARSize)
	if err != nil {
		log.Fatalf("%v", err)
	}
	printRegisters(os.Stdout, win, *size)
	if err := win.Close(); err != nil {
		log.Fatalf("%v", err)
	}
}

func printRegisters(w io.Writer, regs mmio.Registers, size uint32) {
	if size > intelspi.SPIBARSize {
		size = intelspi.SPIBARSize
	}
	for i := uint32(0); i+4 <= size; i += 4 {
		fmt.Fprintf(w, "SPIBAR[0x%02x] = 0x%x\n", i, regs.Read32(i))
	}
}
