// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/linuxboot/intelspi/cmds/intelspi/commands"
	"github.com/linuxboot/intelspi/pkg/dumpfile"
	"github.com/linuxboot/intelspi/pkg/ifd"
	"github.com/linuxboot/intelspi/pkg/intelspi"
	"github.com/linuxboot/intelspi/pkg/log"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	Global   *commands.Options `no-flag:"true"`
	Output   string            `short:"o" long:"output" description:"path of the dump file" required:"true"`
	Compress string            `short:"c" long:"compress" description:"compression of the dump file" default:"raw" choice:"raw" choice:"xz" choice:"zstd" choice:"lz4"`
	Region   string            `short:"r" long:"region" description:"dump a single region instead of the whole flash [bios, me, gbe, ...]"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "reads the flash into a file"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Reads the whole flash, or a single region of it, with 64 byte hardware sequencing read cycles and writes it to a file. Nothing is written if any cycle fails."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoExtraArgs(args); err != nil {
		return err
	}
	comp, err := dumpfile.ByName(cmd.Compress)
	if err != nil {
		return commands.ErrArgs{Err: err}
	}
	region := ifd.RegionDesc
	if cmd.Region != "" {
		if region, err = ifd.ParseRegion(cmd.Region); err != nil {
			return commands.ErrArgs{Err: err}
		}
		if region == ifd.RegionDesc {
			return commands.ErrArgs{Err: fmt.Errorf("region %q has no FREG range, dump the whole flash instead", cmd.Region)}
		}
	}

	ctx, cancel := commands.Context()
	defer cancel()

	var img *intelspi.Image
	err = cmd.Global.Run(func(c *intelspi.Controller) error {
		var err error
		if cmd.Region == "" {
			img, err = c.DumpFirmware(ctx)
		} else {
			img, err = c.DumpRegion(ctx, region)
		}
		return err
	}, func(cfg *intelspi.Config) {
		cfg.Read.Progress = NewProgress(log.DefaultLogger)
	})
	if err != nil {
		return err
	}

	if err := dumpfile.Save(cmd.Output, img.Data, comp); err != nil {
		return err
	}
	log.Infof("wrote %s at %#x to %s (%s)", humanize.IBytes(uint64(img.Len())), img.Offset, cmd.Output, comp.Name())
	return nil
}

const progressStep = 1 << 20

// NewProgress returns a progress callback logging every MiB.
func NewProgress(l log.Logger) func(done, total uint64) {
	var next uint64
	return func(done, total uint64) {
		if done < next && done != total {
			return
		}
		next = done - done%progressStep + progressStep
		l.Debugf("read %s of %s", humanize.IBytes(done), humanize.IBytes(total))
	}
}
