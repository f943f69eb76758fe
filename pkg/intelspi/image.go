// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

import (
	"context"
	"fmt"
	"math"

	"github.com/linuxboot/fiano/pkg/uefi"
	"github.com/linuxboot/intelspi/pkg/ifd"
)

// Image is a contiguous piece of flash read from the chip.
type Image struct {
	// Offset is the flash address of Data[0].
	Offset uint32
	Data   []byte
}

// Len returns the number of bytes in the image.
func (img *Image) Len() int {
	return len(img.Data)
}

// Parser interprets a dumped image as firmware.
type Parser func(img *Image) (uefi.Firmware, error)

// ParseImage hands the image to the fiano UEFI parser.
func ParseImage(img *Image) (uefi.Firmware, error) {
	fw, err := uefi.Parse(img.Data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %d byte image at %#x: %w", img.Len(), img.Offset, err)
	}
	return fw, nil
}

// DumpFirmware reads the whole flash as decoded by Setup.
func (c *Controller) DumpFirmware(ctx context.Context) (*Image, error) {
	geom, err := c.geometry()
	if err != nil {
		return nil, err
	}
	if geom.TotalSize == 0 {
		return nil, fmt.Errorf("no flash component populated: %w", ErrNotSupported)
	}
	if geom.TotalSize > math.MaxUint32 {
		return nil, fmt.Errorf("flash size %#x exceeds the flash address space: %w", geom.TotalSize, ErrNotSupported)
	}
	return c.dumpImage(ctx, 0, uint32(geom.TotalSize))
}

// DumpRegion reads the byte range of a single populated region.
func (c *Controller) DumpRegion(ctx context.Context, r ifd.Region) (*Image, error) {
	geom, err := c.geometry()
	if err != nil {
		return nil, err
	}
	fr, ok := geom.Region(r)
	if !ok {
		return nil, fmt.Errorf("region %q is not populated", r)
	}
	if fr.Size() == 0 {
		return nil, fmt.Errorf("region %q is empty: %v", r, fr)
	}
	return c.dumpImage(ctx, fr.Base, uint32(fr.Size()))
}

func (c *Controller) dumpImage(ctx context.Context, offset, length uint32) (*Image, error) {
	data, err := c.Dump(ctx, offset, length)
	if err != nil {
		return nil, err
	}
	return &Image{Offset: offset, Data: data}, nil
}

// Parse dumps the whole flash and passes it to the configured Parser.
func (c *Controller) Parse(ctx context.Context) (uefi.Firmware, error) {
	img, err := c.DumpFirmware(ctx)
	if err != nil {
		return nil, err
	}
	return c.cfg.Parser(img)
}
