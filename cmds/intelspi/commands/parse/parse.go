// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/linuxboot/fiano/pkg/uefi"
	"github.com/linuxboot/fiano/pkg/visitors"
	"github.com/linuxboot/intelspi/cmds/intelspi/commands"
	"github.com/linuxboot/intelspi/pkg/dumpfile"
	"github.com/linuxboot/intelspi/pkg/intelspi"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	Global *commands.Options `no-flag:"true"`
	Input  string            `short:"i" long:"input" description:"parse a file written by dump instead of reading the flash"`
	Format string            `short:"f" long:"format" description:"output format" default:"table" choice:"table" choice:"json"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "reads the flash and prints its UEFI structure"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Dumps the whole flash and hands it to the UEFI parser. With --input a previously dumped file is parsed and the hardware is not touched."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoExtraArgs(args); err != nil {
		return err
	}

	var fw uefi.Firmware
	if cmd.Input != "" {
		data, err := dumpfile.Load(cmd.Input)
		if err != nil {
			return err
		}
		if fw, err = intelspi.ParseImage(&intelspi.Image{Data: data}); err != nil {
			return err
		}
	} else {
		ctx, cancel := commands.Context()
		defer cancel()
		err := cmd.Global.Run(func(c *intelspi.Controller) error {
			var err error
			fw, err = c.Parse(ctx)
			return err
		})
		if err != nil {
			return err
		}
	}
	return Print(os.Stdout, fw, cmd.Format)
}

// Print writes fw in the given format.
func Print(w io.Writer, fw uefi.Firmware, format string) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(fw, "", "\t")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Node\tGUID/Name\tType\tSize\n")
		if err := (&visitors.Table{W: tw}).Run(fw); err != nil {
			return err
		}
		return tw.Flush()
	}
	return commands.ErrArgs{Err: fmt.Errorf("unknown format %q", format)}
}
