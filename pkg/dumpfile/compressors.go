// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dumpfile

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

const rawName = "raw"

// Raw implements Compressor and leaves the data as it is.
type Raw struct{}

// Name returns the type of compression employed.
func (c *Raw) Name() string { return rawName }

// Magic returns nil; raw data has no header.
func (c *Raw) Magic() []byte { return nil }

// Decode returns a copy of encodedData.
func (c *Raw) Decode(encodedData []byte) ([]byte, error) {
	return append([]byte(nil), encodedData...), nil
}

// Encode returns a copy of decodedData.
func (c *Raw) Encode(decodedData []byte) ([]byte, error) {
	return append([]byte(nil), decodedData...), nil
}

// XZ implements Compressor with the .xz container format.
type XZ struct{}

// Name returns the type of compression employed.
func (c *XZ) Name() string { return "xz" }

// Magic returns the xz stream header magic.
func (c *XZ) Magic() []byte { return []byte{0xfd, '7', 'z', 'X', 'Z', 0x00} }

// Decode decodes a byte slice of xz data.
func (c *XZ) Decode(encodedData []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(encodedData))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// Encode encodes a byte slice with xz.
func (c *XZ) Encode(decodedData []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(decodedData); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Zstd implements Compressor with Zstandard frames.
type Zstd struct{}

// Name returns the type of compression employed.
func (c *Zstd) Name() string { return "zstd" }

// Magic returns the zstd frame magic.
func (c *Zstd) Magic() []byte { return []byte{0x28, 0xb5, 0x2f, 0xfd} }

// Decode decodes a byte slice of zstd data.
func (c *Zstd) Decode(encodedData []byte) ([]byte, error) {
	r, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.DecodeAll(encodedData, nil)
}

// Encode encodes a byte slice with zstd.
func (c *Zstd) Encode(decodedData []byte) ([]byte, error) {
	w, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer w.Close()
	return w.EncodeAll(decodedData, nil), nil
}

// LZ4 implements Compressor with LZ4 frames.
type LZ4 struct{}

// Name returns the type of compression employed.
func (c *LZ4) Name() string { return "lz4" }

// Magic returns the LZ4 frame magic.
func (c *LZ4) Magic() []byte { return []byte{0x04, 0x22, 0x4d, 0x18} }

// Decode decodes a byte slice of LZ4 data.
func (c *LZ4) Decode(encodedData []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(encodedData)))
}

// Encode encodes a byte slice with LZ4.
func (c *LZ4) Encode(decodedData []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(decodedData); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
