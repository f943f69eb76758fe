// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dumpfile stores flash images on disk, optionally compressed.
package dumpfile

import (
	"bytes"
	"fmt"
	"os"
	"sort"
)

// Compressor defines a single compression scheme for dump files.
type Compressor interface {
	// Name is the value accepted by ByName.
	Name() string
	// Magic is the prefix of every encoded stream, nil for raw data.
	Magic() []byte

	// Decode and Encode obey "x == Decode(Encode(x))".
	Decode(encodedData []byte) ([]byte, error)
	Encode(decodedData []byte) ([]byte, error)
}

var compressors = map[string]Compressor{}

func register(c Compressor) {
	compressors[c.Name()] = c
}

func init() {
	register(&Raw{})
	register(&XZ{})
	register(&Zstd{})
	register(&LZ4{})
}

// Names lists the supported compressor names in sorted order.
func Names() []string {
	names := make([]string, 0, len(compressors))
	for name := range compressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns the compressor called name.
func ByName(name string) (Compressor, error) {
	c, ok := compressors[name]
	if !ok {
		return nil, fmt.Errorf("unknown compression %q, want one of %v", name, Names())
	}
	return c, nil
}

// Detect guesses the compressor from the leading bytes of data. Data that
// matches no known magic is treated as raw.
func Detect(data []byte) Compressor {
	for _, name := range Names() {
		c := compressors[name]
		if m := c.Magic(); len(m) > 0 && bytes.HasPrefix(data, m) {
			return c
		}
	}
	return compressors[rawName]
}

// Save encodes data with c and writes it to path.
func Save(path string, data []byte, c Compressor) error {
	enc, err := c.Encode(data)
	if err != nil {
		return fmt.Errorf("unable to %s-encode %d bytes: %w", c.Name(), len(data), err)
	}
	if err := os.WriteFile(path, enc, 0o644); err != nil {
		return fmt.Errorf("unable to write dump: %w", err)
	}
	return nil
}

// Load reads path and decodes it with the compressor found by Detect.
func Load(path string) ([]byte, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read dump: %w", err)
	}
	c := Detect(enc)
	data, err := c.Decode(enc)
	if err != nil {
		return nil, fmt.Errorf("unable to %s-decode %q: %w", c.Name(), path, err)
	}
	return data, nil
}
