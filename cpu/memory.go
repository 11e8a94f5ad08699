// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Hack memory map.
const (
	RAMSize    = 0x4000 // general purpose RAM words
	ScreenBase = 0x4000 // memory-mapped screen
	ScreenSize = 0x2000
	KBD        = 0x6000 // memory-mapped keyboard
	MemorySize = 0x8000 // addressable data words
)

// The Memory interface presents an interface to the CPU through which all
// data memory accesses occur. Addresses are 15 bits wide; higher bits are
// ignored.
type Memory interface {
	// LoadWord loads a single word from the address and returns it.
	LoadWord(addr uint16) uint16

	// LoadWords loads multiple words from the address and stores them into
	// the buffer 'b'.
	LoadWords(addr uint16, b []uint16)

	// StoreWord stores a word to the requested address.
	StoreWord(addr uint16, v uint16)

	// StoreWords stores multiple words to the requested address.
	StoreWords(addr uint16, b []uint16)
}

// FlatMemory represents the entire 15-bit data address space as a single
// buffer of 32K words.
type FlatMemory struct {
	w [MemorySize]uint16
}

// NewFlatMemory creates a new data memory space.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// LoadWord loads a single word from the address and returns it.
func (m *FlatMemory) LoadWord(addr uint16) uint16 {
	return m.w[addr&(MemorySize-1)]
}

// LoadWords loads multiple words from the address. Reads past the end of
// memory produce zeros.
func (m *FlatMemory) LoadWords(addr uint16, b []uint16) {
	addr &= MemorySize - 1
	n := copy(b, m.w[addr:])
	clear(b[n:])
}

// StoreWord stores a word at the requested address.
func (m *FlatMemory) StoreWord(addr uint16, v uint16) {
	m.w[addr&(MemorySize-1)] = v
}

// StoreWords stores multiple words to the requested address. Words that
// fall past the end of memory are dropped.
func (m *FlatMemory) StoreWords(addr uint16, b []uint16) {
	copy(m.w[addr&(MemorySize-1):], b)
}
