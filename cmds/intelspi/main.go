// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// intelspi reads the SPI flash of Intel platforms through the PCH SPIBAR.
//
// Synopsis:
//
//	intelspi --spibar ADDR --kind KIND info
//	intelspi --spibar ADDR --kind KIND regions [-r REGION]...
//	intelspi --spibar ADDR --kind KIND dump -o FILE [-c raw|xz|zstd|lz4] [-r REGION]
//	intelspi --spibar ADDR --kind KIND parse [-f table|json]
//	intelspi parse -i FILE
//
// An example:
//
//	intelspi --spibar 0xfe010000 --kind pch300 regions
//	intelspi --spibar 0xfe010000 --kind pch300 dump -o bios.bin.xz -c xz -r bios
//
// Description:
//
//	info:    Print the descriptor registers, flash size and region map
//	regions: Print the region map with the access rights of each master
//	dump:    Read the flash, or one region of it, into a file
//	parse:   Read the flash, or a dump file, and print its UEFI structure
//
// The SPIBAR address and controller kind may also be given through the
// INTELSPI_SPIBAR and INTELSPI_KIND environment variables.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/intelspi/cmds/intelspi/commands"
	"github.com/linuxboot/intelspi/cmds/intelspi/commands/dump"
	"github.com/linuxboot/intelspi/cmds/intelspi/commands/info"
	"github.com/linuxboot/intelspi/cmds/intelspi/commands/parse"
	"github.com/linuxboot/intelspi/cmds/intelspi/commands/regions"
	"github.com/linuxboot/intelspi/pkg/log"
)

func main() {
	var opts commands.Options
	knownCommands := map[string]commands.Command{
		"info":    &info.Command{Global: &opts},
		"regions": &regions.Command{Global: &opts},
		"dump":    &dump.Command{Global: &opts},
		"parse":   &parse.Command{Global: &opts},
	}

	flagsParser := flags.NewParser(&opts, flags.Default)
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}

	// parse arguments and execute the appropriate command
	if _, err := flagsParser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}
}
