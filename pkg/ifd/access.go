// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ifd

// Access is the set of rights a flash master holds on a region.
type Access uint8

// Access bits.
const (
	AccessNone  Access = 0
	AccessRead  Access = 1 << 0
	AccessWrite Access = 1 << 1
)

// String returns "ro", "wr" or "rw", and an empty string for no access.
func (a Access) String() string {
	switch a {
	case AccessRead:
		return "ro"
	case AccessWrite:
		return "wr"
	case AccessRead | AccessWrite:
		return "rw"
	}
	return ""
}

// CanRead reports whether the read bit is set.
func (a Access) CanRead() bool {
	return a&AccessRead != 0
}

// CanWrite reports whether the write bit is set.
func (a Access) CanWrite() bool {
	return a&AccessWrite != 0
}
