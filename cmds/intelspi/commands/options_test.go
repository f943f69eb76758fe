// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/linuxboot/intelspi/pkg/intelspi"
	"github.com/stretchr/testify/require"
)

func TestOptionsConfig(t *testing.T) {
	o := Options{SPIBAR: "0xfe010000", Kind: "pch400", Timeout: time.Millisecond}
	cfg, err := o.Config()
	require.NoError(t, err)
	require.Equal(t, uint64(0xfe010000), cfg.SPIBAR)
	require.Equal(t, intelspi.KindPCH400, cfg.Kind)
	require.Equal(t, time.Millisecond, cfg.Read.Timeout)
	require.Nil(t, cfg.Open)

	o.DevMem = true
	cfg, err = o.Config()
	require.NoError(t, err)
	require.NotNil(t, cfg.Open)
}

func TestOptionsConfigErrors(t *testing.T) {
	for _, o := range []Options{
		{SPIBAR: "bar", Kind: "pch400"},
		{SPIBAR: "0xfe010000", Kind: "pch900"},
		{SPIBAR: "0", Kind: "pch400"},
	} {
		_, err := o.Config()
		var aerr ErrArgs
		require.True(t, errors.As(err, &aerr), "%+v", o)
	}
}

func TestNoExtraArgs(t *testing.T) {
	require.NoError(t, NoExtraArgs(nil))
	require.Error(t, NoExtraArgs([]string{"x"}))
}

func TestOptionsConfigMissing(t *testing.T) {
	_, err := (&Options{}).Config()
	require.ErrorIs(t, err, intelspi.ErrNotSupported)
	require.Contains(t, err.Error(), intelspi.QuirkSPIBAR)
	require.Contains(t, err.Error(), intelspi.QuirkKind)
}
