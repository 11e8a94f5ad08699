// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"encoding/json"
	"io"
	"sort"
)

// A SourceMap describes the mapping between VM source lines and the
// address of the first Hack instruction generated for each of them.
type SourceMap struct {
	Files []string
	Lines []SourceLine
}

// A SourceLine represents a mapping between a Hack instruction address and
// the VM file and line number used to generate it.
type SourceLine struct {
	Address   int // ROM address of the first instruction
	FileIndex int // VM file index
	Line      int // VM source line number
}

// Search returns the VM file and line whose instructions contain the
// requested address. It returns line -1 if no VM line precedes the address.
func (s *SourceMap) Search(addr int) (filename string, line int) {
	i := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].Address > addr
	})
	if i == 0 {
		return "", -1
	}
	l := s.Lines[i-1]
	return s.Files[l.FileIndex], l.Line
}

// Address returns the first instruction address generated for a VM file
// and line, or -1 if the line produced no instructions.
func (s *SourceMap) Address(filename string, line int) int {
	for _, l := range s.Lines {
		if l.Line == line && s.Files[l.FileIndex] == filename {
			return l.Address
		}
	}
	return -1
}

// ReadFrom reads a VM source map written by WriteTo.
func (s *SourceMap) ReadFrom(r io.Reader) (n int64, err error) {
	dec := json.NewDecoder(r)
	if err := dec.Decode(s); err != nil {
		return dec.InputOffset(), err
	}
	return dec.InputOffset(), nil
}

// WriteTo writes the VM source map as a single line of JSON.
func (s *SourceMap) WriteTo(w io.Writer) (n int64, err error) {
	cw := &countingWriter{w: w}
	err = json.NewEncoder(cw).Encode(s)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
