// Copyright 2025 The srcinspect Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package platform defines a normalized representation of target-platform ABI
// characteristics used when analyzing source code for a platform other than
// the build host.
//
// It provides:
//   - The Profile type, naming one of a fixed set of target platforms
//   - The ABI record of primitive type widths and char signedness per Profile
//   - Loading of ABI overrides from an XML platform descriptor
package platform

import (
	"math/bits"
	"runtime"
	"slices"
)

// Profile names one of the fixed target platforms the analyzer understands.
type Profile string

const (
	// No platform was selected; widths default to the build host.
	Unspecified Profile = "unspecified"
	// The build host itself, char signedness included.
	Native Profile = "native"
	// 32-bit Windows, ANSI character encoding.
	Win32A Profile = "win32A"
	// 32-bit Windows, Unicode character encoding.
	Win32W Profile = "win32W"
	// 64-bit Windows.
	Win64 Profile = "win64"
	// 32-bit Unix.
	Unix32 Profile = "unix32"
	// 64-bit Unix.
	Unix64 Profile = "unix64"
)

var allProfiles = []Profile{Unspecified, Native, Win32A, Win32W, Win64, Unix32, Unix64}

// Default signedness of plain char: 's' for signed, 'u' for unsigned, 0 when
// the target convention is not specified.
const (
	SignSigned   byte = 's'
	SignUnsigned byte = 'u'
)

// ABI describes the primitive type layout of one target platform: byte widths
// for every built-in type, the default signedness of plain char, and bit
// widths derived from CharBit.
type ABI struct {
	Type Profile

	SizeOfBool       int
	SizeOfShort      int
	SizeOfInt        int
	SizeOfLong       int
	SizeOfLongLong   int
	SizeOfFloat      int
	SizeOfDouble     int
	SizeOfLongDouble int
	SizeOfWChar      int
	SizeOfSizeT      int
	SizeOfPointer    int

	DefaultSign byte
	CharBit     int

	// Derived values, always CharBit * the matching byte width. Call
	// recalculate after changing any operand.
	ShortBit    int
	IntBit      int
	LongBit     int
	LongLongBit int
}

func (abi *ABI) recalculate() {
	abi.ShortBit = abi.CharBit * abi.SizeOfShort
	abi.IntBit = abi.CharBit * abi.SizeOfInt
	abi.LongBit = abi.CharBit * abi.SizeOfLong
	abi.LongLongBit = abi.CharBit * abi.SizeOfLongLong
}

// Byte widths of the named platforms. Win32 matches Visual C++ on x86, Win64
// the LLP64 model, Unix32/Unix64 the ILP32 and LP64 models of the SysV ABI on
// x86 hardware.
var fixedWidthProfiles = map[Profile]ABI{
	Win32A: win32ABI,
	Win32W: win32ABI,
	Win64: {
		SizeOfBool: 1, SizeOfShort: 2, SizeOfInt: 4, SizeOfLong: 4, SizeOfLongLong: 8,
		SizeOfFloat: 4, SizeOfDouble: 8, SizeOfLongDouble: 8,
		SizeOfWChar: 2, SizeOfSizeT: 8, SizeOfPointer: 8,
		CharBit: 8,
	},
	Unix32: {
		SizeOfBool: 1, SizeOfShort: 2, SizeOfInt: 4, SizeOfLong: 4, SizeOfLongLong: 8,
		SizeOfFloat: 4, SizeOfDouble: 8, SizeOfLongDouble: 12,
		SizeOfWChar: 4, SizeOfSizeT: 4, SizeOfPointer: 4,
		CharBit: 8,
	},
	Unix64: {
		SizeOfBool: 1, SizeOfShort: 2, SizeOfInt: 4, SizeOfLong: 8, SizeOfLongLong: 8,
		SizeOfFloat: 4, SizeOfDouble: 8, SizeOfLongDouble: 16,
		SizeOfWChar: 4, SizeOfSizeT: 8, SizeOfPointer: 8,
		CharBit: 8,
	},
}

var win32ABI = ABI{
	SizeOfBool: 1, SizeOfShort: 2, SizeOfInt: 4, SizeOfLong: 4, SizeOfLongLong: 8,
	SizeOfFloat: 4, SizeOfDouble: 8, SizeOfLongDouble: 8,
	SizeOfWChar: 2, SizeOfSizeT: 4, SizeOfPointer: 4,
	CharBit: 8,
}

// Lookup returns the complete ABI record for the given profile. The second
// return value is false only for a profile outside the known enumeration.
func Lookup(profile Profile) (ABI, bool) {
	var abi ABI
	switch profile {
	case Unspecified:
		abi = hostABI()
	case Native:
		abi = hostABI()
		abi.DefaultSign = hostCharSign()
	default:
		fixed, known := fixedWidthProfiles[profile]
		if !known {
			return ABI{}, false
		}
		abi = fixed
	}
	abi.Type = profile
	abi.recalculate()
	return abi, true
}

// IsKnown reports whether name is one of the profile enumeration values.
func IsKnown(profile Profile) bool {
	return slices.Contains(allProfiles, profile)
}

// hostABI approximates the ABI of the build host. The type widths of the C
// implementation cannot be queried directly from Go, so the host is mapped
// onto the matching named profile by operating system and word size.
func hostABI() ABI {
	hostIs64Bit := bits.UintSize == 64
	switch {
	case runtime.GOOS == "windows" && hostIs64Bit:
		return fixedWidthProfiles[Win64]
	case runtime.GOOS == "windows":
		return win32ABI
	case hostIs64Bit:
		return fixedWidthProfiles[Unix64]
	default:
		return fixedWidthProfiles[Unix32]
	}
}

// Architectures on which plain char is unsigned in the ELF psABI.
var unsignedCharArchs = []string{"arm", "arm64", "ppc64", "ppc64le", "s390x", "riscv64"}

// hostCharSign returns the default signedness of plain char on the build host.
// Windows and Darwin compilers use signed char on every architecture; the ELF
// platforms follow the processor supplement.
func hostCharSign() byte {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return SignSigned
	}
	if slices.Contains(unsignedCharArchs, runtime.GOARCH) {
		return SignUnsigned
	}
	return SignSigned
}
