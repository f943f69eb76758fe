// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intelspi

import (
	"fmt"
)

// Kind selects the register layout of a controller generation.
type Kind int

// Supported controller generations.
const (
	KindUnknown Kind = iota
	KindAPL
	KindC620
	KindICH9
	KindPCH100
	KindPCH200
	KindPCH300
	KindPCH400
)

var kindNames = map[Kind]string{
	KindAPL:    "apl",
	KindC620:   "c620",
	KindICH9:   "ich9",
	KindPCH100: "pch100",
	KindPCH200: "pch200",
	KindPCH300: "pch300",
	KindPCH400: "pch400",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String. Unknown names yield KindUnknown
// and an error wrapping ErrNotSupported.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%s: %w", s, ErrNotSupported)
}

// legacyMasters reports whether FLMSTRx uses the ICH8-ICH10 bit layout.
// Tools that decode ICH9 descriptors with the PCH layout report the wrong
// grants; ICH9 keeps them in bits 16..19 and 24..27.
func (k Kind) legacyMasters() bool {
	return k == KindICH9
}
