// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"encoding/binary"
	"hash/crc32"
	"slices"
	"strings"
)

// Return the 16-character binary text form of an instruction word.
func wordString(w uint16) string {
	var b [16]byte
	for i := range b {
		if w&(0x8000>>i) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b[:])
}

// Parse the binary text form of an instruction word.
func parseWord(s string) (uint16, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 16 {
		return 0, false
	}
	var w uint16
	for i := 0; i < 16; i++ {
		switch s[i] {
		case '0':
			w <<= 1
		case '1':
			w = w<<1 | 1
		default:
			return 0, false
		}
	}
	return w, true
}

// Compute the checksum of a program's machine code.
func checksum(code []uint16) uint32 {
	b := make([]byte, len(code)*2)
	for i, w := range code {
		binary.BigEndian.PutUint16(b[i*2:], w)
	}
	return crc32.ChecksumIEEE(b)
}

// Sort exports by address, then by label.
func sortExports(e []Export) []Export {
	slices.SortFunc(e, func(a, b Export) int {
		if a.Address != b.Address {
			return int(a.Address) - int(b.Address)
		}
		return strings.Compare(a.Label, b.Label)
	})
	return e
}
