// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"errors"
	"fmt"
	"testing"

	"github.com/linuxboot/intelspi/cmds/intelspi/commands"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	lines []string
}

func (r *recorder) Debugf(format string, args ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}
func (r *recorder) Infof(format string, args ...interface{})  {}
func (r *recorder) Warnf(format string, args ...interface{})  {}
func (r *recorder) Errorf(format string, args ...interface{}) {}
func (r *recorder) Fatalf(format string, args ...interface{}) {}

func TestProgress(t *testing.T) {
	r := &recorder{}
	progress := NewProgress(r)
	total := uint64(3<<20 + 0x40)
	for done := uint64(0x40); done <= total; done += 0x40 {
		progress(done, total)
	}
	require.Equal(t, []string{
		"read 64 B of 3.0 MiB",
		"read 1.0 MiB of 3.0 MiB",
		"read 2.0 MiB of 3.0 MiB",
		"read 3.0 MiB of 3.0 MiB",
		"read 3.0 MiB of 3.0 MiB",
	}, r.lines)
}

func TestExecuteRejectsBadRegion(t *testing.T) {
	for _, region := range []string{"desc", "flash"} {
		cmd := &Command{
			Global:   &commands.Options{SPIBAR: "0xfe010000", Kind: "pch300"},
			Output:   t.TempDir() + "/flash.bin",
			Compress: "raw",
			Region:   region,
		}
		err := cmd.Execute(nil)
		var aerr commands.ErrArgs
		require.True(t, errors.As(err, &aerr), "%s: %v", region, err)
	}
}

func TestExecuteRejectsDescriptorRegion(t *testing.T) {
	cmd := &Command{Global: &commands.Options{}, Output: "flash.bin", Compress: "raw", Region: "desc"}
	err := cmd.Execute(nil)
	require.ErrorContains(t, err, "no FREG range")
}
