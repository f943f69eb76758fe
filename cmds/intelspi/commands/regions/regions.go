// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regions

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/linuxboot/intelspi/cmds/intelspi/commands"
	"github.com/linuxboot/intelspi/pkg/ifd"
	"github.com/linuxboot/intelspi/pkg/intelspi"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	Global  *commands.Options `no-flag:"true"`
	Region  []string          `short:"r" long:"region" description:"only show the given region, may be repeated [desc, bios, me, gbe, ...]"`
	NoColor bool              `long:"no-color" description:"do not color the access columns"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the flash regions and who may access them"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Prints every populated region with its byte range and the read/write grants of the BIOS, ME and GbE masters."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoExtraArgs(args); err != nil {
		return err
	}
	want := map[ifd.Region]bool{}
	for _, name := range cmd.Region {
		r, err := ifd.ParseRegion(name)
		if err != nil {
			return commands.ErrArgs{Err: err}
		}
		want[r] = true
	}
	if cmd.NoColor {
		color.NoColor = true
	}

	return cmd.Global.Run(func(c *intelspi.Controller) error {
		return Print(os.Stdout, Filter(c.Regions(), want))
	})
}

// Filter returns the regions in want, or all of them if want is empty.
func Filter(regions []ifd.FlashRegion, want map[ifd.Region]bool) []ifd.FlashRegion {
	if len(want) == 0 {
		return regions
	}
	var out []ifd.FlashRegion
	for _, r := range regions {
		if want[r.Region] {
			out = append(out, r)
		}
	}
	return out
}

var (
	colorRW   = color.New(color.FgRed, color.Bold)
	colorRO   = color.New(color.FgGreen)
	colorNone = color.New(color.Faint)
)

// colorAccess highlights writable regions.
func colorAccess(val interface{}) string {
	s := fmt.Sprint(val)
	switch s {
	case ifd.AccessRead.String():
		return colorRO.Sprint(s)
	case (ifd.AccessRead | ifd.AccessWrite).String(), ifd.AccessWrite.String():
		return colorRW.Sprint(s)
	}
	return colorNone.Sprint(s)
}

// Print renders the region table to w.
func Print(w io.Writer, regions []ifd.FlashRegion) error {
	if len(regions) == 0 {
		_, err := fmt.Fprintln(w, "no regions")
		return err
	}
	t := intelspi.RegionTable(w, regions)
	t.SetStyle(table.StyleLight)
	var configs []table.ColumnConfig
	for m := ifd.MasterHost; m <= ifd.MasterGbE; m++ {
		configs = append(configs, table.ColumnConfig{Name: m.String(), Transformer: colorAccess})
	}
	configs = append(configs, table.ColumnConfig{Name: "Access", Transformer: colorAccess})
	t.SetColumnConfigs(configs)
	t.Render()
	return nil
}
