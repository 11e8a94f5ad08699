// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"maps"
	"slices"
)

// The BreakpointHandler interface should be implemented by any object that
// wishes to receive debugger breakpoint notifications.
type BreakpointHandler interface {
	OnBreakpoint(cpu *CPU, b *Breakpoint)
	OnDataBreakpoint(cpu *CPU, b *DataBreakpoint)
}

// A Breakpoint stops execution when the program counter reaches a ROM
// address.
type Breakpoint struct {
	Address  uint16 // ROM address
	Disabled bool   // the breakpoint is ignored while disabled
	Hits     uint64 // number of times the breakpoint triggered
}

// A DataBreakpoint stops execution when a word is stored to a RAM address.
// A conditional data breakpoint triggers only when Value is stored.
type DataBreakpoint struct {
	Address     uint16 // RAM address
	Disabled    bool   // the breakpoint is ignored while disabled
	Conditional bool   // trigger only on stores of Value
	Value       uint16
	Hits        uint64 // number of times the breakpoint triggered
}

// Breakpoints of one kind, keyed by address.
type addrSet[T any] map[uint16]T

func (s addrSet[T]) get(addr uint16) (t T) {
	if b, ok := s[addr]; ok {
		return b
	}
	return t
}

// Return the breakpoints ordered by address.
func (s addrSet[T]) sorted() []T {
	list := make([]T, 0, len(s))
	for _, addr := range slices.Sorted(maps.Keys(s)) {
		list = append(list, s[addr])
	}
	return list
}

// A Debugger watches an attached CPU for execution and data breakpoints
// and reports every hit to its handler.
type Debugger struct {
	handler BreakpointHandler
	code    addrSet[*Breakpoint]
	data    addrSet[*DataBreakpoint]
}

// NewDebugger creates a debugger that reports breakpoint hits to handler.
func NewDebugger(handler BreakpointHandler) *Debugger {
	return &Debugger{
		handler: handler,
		code:    make(addrSet[*Breakpoint]),
		data:    make(addrSet[*DataBreakpoint]),
	}
}

// GetBreakpoint returns the breakpoint on addr, or nil if there is none.
func (d *Debugger) GetBreakpoint(addr uint16) *Breakpoint {
	return d.code.get(addr)
}

// GetBreakpoints returns all breakpoints ordered by address.
func (d *Debugger) GetBreakpoints() []*Breakpoint {
	return d.code.sorted()
}

// AddBreakpoint adds a breakpoint on a ROM address, replacing any existing
// breakpoint there.
func (d *Debugger) AddBreakpoint(addr uint16) *Breakpoint {
	b := &Breakpoint{Address: addr}
	d.code[addr] = b
	return b
}

// RemoveBreakpoint removes the breakpoint on addr.
func (d *Debugger) RemoveBreakpoint(addr uint16) {
	delete(d.code, addr)
}

// GetDataBreakpoint returns the data breakpoint on addr, or nil if there
// is none.
func (d *Debugger) GetDataBreakpoint(addr uint16) *DataBreakpoint {
	return d.data.get(addr)
}

// GetDataBreakpoints returns all data breakpoints ordered by address.
func (d *Debugger) GetDataBreakpoints() []*DataBreakpoint {
	return d.data.sorted()
}

// AddDataBreakpoint adds an unconditional data breakpoint on a RAM
// address.
func (d *Debugger) AddDataBreakpoint(addr uint16) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr}
	d.data[addr] = b
	return b
}

// AddConditionalDataBreakpoint adds a data breakpoint on a RAM address
// that triggers only when value is stored.
func (d *Debugger) AddConditionalDataBreakpoint(addr uint16, value uint16) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr, Conditional: true, Value: value}
	d.data[addr] = b
	return b
}

// RemoveDataBreakpoint removes the data breakpoint on addr.
func (d *Debugger) RemoveDataBreakpoint(addr uint16) {
	delete(d.data, addr)
}

func (d *Debugger) onUpdatePC(cpu *CPU, addr uint16) {
	b, ok := d.code[addr]
	if !ok || b.Disabled {
		return
	}
	b.Hits++
	if d.handler != nil {
		d.handler.OnBreakpoint(cpu, b)
	}
}

func (d *Debugger) onDataStore(cpu *CPU, addr uint16, v uint16) {
	b, ok := d.data[addr&MaxAddress]
	if !ok || b.Disabled || (b.Conditional && b.Value != v) {
		return
	}
	b.Hits++
	if d.handler != nil {
		d.handler.OnDataBreakpoint(cpu, b)
	}
}
