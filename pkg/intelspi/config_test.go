// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestSetQuirk(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.SetQuirk(QuirkSPIBAR, "0xfe010000"))
	require.NoError(t, cfg.SetQuirk(QuirkKind, " pch200 "))
	require.Equal(t, uint64(0xfe010000), cfg.SPIBAR)
	require.Equal(t, KindPCH200, cfg.Kind)
	require.NoError(t, cfg.Validate())

	require.NoError(t, cfg.SetQuirk(QuirkSPIBAR, "4261478400"))
	require.Equal(t, uint64(0xfe010000), cfg.SPIBAR)

	require.Error(t, cfg.SetQuirk(QuirkSPIBAR, "spibar"))
	require.ErrorIs(t, cfg.SetQuirk(QuirkKind, "pch900"), ErrNotSupported)
	require.ErrorIs(t, cfg.SetQuirk("IntelSpiFoo", "1"), ErrNotSupported)
	require.Equal(t, KindPCH200, cfg.Kind)
}

func TestValidate(t *testing.T) {
	var cfg Config
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrNotSupported)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
	require.Contains(t, err.Error(), QuirkKind)
	require.Contains(t, err.Error(), QuirkSPIBAR)

	cfg.Kind = KindAPL
	err = cfg.Validate()
	require.Error(t, err)
	require.NotContains(t, err.Error(), QuirkKind)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindAPL, KindC620, KindICH9, KindPCH100, KindPCH200, KindPCH300, KindPCH400} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	_, err := ParseKind("unknown")
	require.ErrorIs(t, err, ErrNotSupported)
	require.Equal(t, "unknown", KindUnknown.String())
	require.True(t, KindICH9.legacyMasters())
	require.False(t, KindPCH300.legacyMasters())
}

func TestReadConfigDefaults(t *testing.T) {
	rc := ReadConfig{SettleDelay: -1}.withDefaults()
	require.Equal(t, DefaultReadTimeout, rc.Timeout)
	require.Equal(t, DefaultPollInterval, rc.PollInterval)
	require.Zero(t, rc.SettleDelay)
	require.NotNil(t, rc.Sleep)
	require.Equal(t, 1000, rc.polls())

	rc = ReadConfig{Timeout: time.Microsecond, PollInterval: time.Millisecond}.withDefaults()
	require.Equal(t, 1, rc.polls())
}
