// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"cmp"
	"encoding/json"
	"io"
	"slices"
)

// A SourceMap ties the machine code of one assembly back to its source.
// Size and CRC identify the code the map was produced for, so a stale map
// read beside a rebuilt .hack file can be detected.
type SourceMap struct {
	Size    int          // number of instruction words
	CRC     uint32       // checksum of the machine code
	Files   []string     // source files, indexed by SourceLine.FileIndex
	Lines   []SourceLine // one entry per instruction, ordered by address
	Exports []Export     // every label, ordered by address
}

// A SourceLine maps one ROM address to the assembly line it came from.
type SourceLine struct {
	Address   int
	FileIndex int
	Line      int
}

// Search returns the file and line of the instruction at addr. It returns
// line -1 when no instruction lives there.
func (s *SourceMap) Search(addr int) (filename string, line int) {
	i, found := slices.BinarySearchFunc(s.Lines, addr, func(l SourceLine, addr int) int {
		return cmp.Compare(l.Address, addr)
	})
	if !found {
		return "", -1
	}
	return s.Files[s.Lines[i].FileIndex], s.Lines[i].Line
}

// Lookup returns the address of a label.
func (s *SourceMap) Lookup(label string) (addr uint16, ok bool) {
	i := slices.IndexFunc(s.Exports, func(e Export) bool { return e.Label == label })
	if i < 0 {
		return 0, false
	}
	return s.Exports[i].Address, true
}

// Matches reports whether the source map was produced for code.
func (s *SourceMap) Matches(code []uint16) bool {
	return s.Size == len(code) && s.CRC == checksum(code)
}

// ReadFrom reads a source map written by WriteTo.
func (s *SourceMap) ReadFrom(r io.Reader) (n int64, err error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return int64(len(b)), err
	}
	return int64(len(b)), json.Unmarshal(b, s)
}

// WriteTo writes the source map as indented JSON.
func (s *SourceMap) WriteTo(w io.Writer) (n int64, err error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return 0, err
	}
	nn, err := w.Write(append(b, '\n'))
	return int64(nn), err
}
