// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFilter(t *testing.T) {
	var tests = []struct {
		level Level
		want  []string
	}{
		{LevelDebug, []string{"[DEBUG] d", "[INFO] i", "[WARN] w", "[ERROR] e"}},
		{LevelInfo, []string{"[INFO] i", "[WARN] w", "[ERROR] e"}},
		{LevelWarn, []string{"[WARN] w", "[ERROR] e"}},
		{LevelError, []string{"[ERROR] e"}},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		l := logWrapper{Logger: log.New(&buf, "", 0), Level: test.level}
		l.Debugf("d")
		l.Infof("i")
		l.Warnf("w")
		l.Errorf("e")

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, len(test.want))
		for i, want := range test.want {
			require.Equal(t, "[intelspi]"+want, string(lines[i]))
		}
	}
}
