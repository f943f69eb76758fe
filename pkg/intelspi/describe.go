// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/linuxboot/intelspi/pkg/ifd"
)

// Describe writes the decoded registers and the region map. With verbose
// set and the window open, every SPIBAR register is appended as well.
func (c *Controller) Describe(w io.Writer, verbose bool) error {
	kv := func(key string, format string, args ...interface{}) {
		fmt.Fprintf(w, "%-10s %s\n", key+":", fmt.Sprintf(format, args...))
	}

	kv("Kind", "%s", c.cfg.Kind)
	kv("SPIBAR", "%#x", c.cfg.SPIBAR)
	if d := c.desc; d != nil {
		kv("HSFS", "%#x", d.HSFS)
		kv("FRAP", "%#x", d.FRAP)
		for i, v := range d.FREG {
			kv(fmt.Sprintf("FREG%d", i), "%#x", v)
		}
		for i, v := range d.FLMSTR {
			kv(fmt.Sprintf("FLMSTR%d", i), "%#x", v)
		}
		kv("FLVALSIG", "%#x", d.FLVALSIG)
		kv("FLMAP0", "%#x", d.FLMAP0)
		kv("FLMAP1", "%#x", d.FLMAP1)
		kv("FLMAP2", "%#x", d.FLMAP2)
		kv("FLCOMP", "%#x", d.FLCOMP)
		kv("FLILL", "%#x", d.FLILL)
		kv("FLPB", "%#x", d.FLPB)
	}
	if g := c.geom; g != nil {
		kv("Size", "%s (%#x)", humanize.IBytes(g.TotalSize), g.TotalSize)
		RegionTable(w, g.Regions).Render()
	}

	if verbose && c.win != nil {
		dumpRegisters(c.win, func(offset, value uint32) {
			fmt.Fprintf(w, "SPIBAR[0x%02x] = 0x%x\n", offset, value)
		})
	}
	return nil
}

// RegionTable returns a table of regions with the grant of every master.
// The caller may restyle it before calling Render.
func RegionTable(w io.Writer, regions []ifd.FlashRegion) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Flash Regions")
	header := table.Row{"ID", "Name", "Base", "Limit", "Size"}
	for m := ifd.MasterHost; m <= ifd.MasterGbE; m++ {
		header = append(header, m.String())
	}
	header = append(header, "Access")
	t.AppendHeader(header)
	for i := range regions {
		r := &regions[i]
		row := table.Row{
			r.Region.String(),
			r.Region.Name(),
			fmt.Sprintf("%#08x", r.Base),
			fmt.Sprintf("%#08x", r.Limit),
			humanize.IBytes(r.Size()),
		}
		for m := ifd.MasterHost; m <= ifd.MasterGbE; m++ {
			row = append(row, accessCell(r.MasterAccess(m)))
		}
		row = append(row, accessCell(r.Access))
		t.AppendRow(row)
	}
	return t
}

func accessCell(a ifd.Access) string {
	if s := a.String(); s != "" {
		return s
	}
	return "--"
}
