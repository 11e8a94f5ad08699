// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Registers contains the state of all Hack CPU registers.
type Registers struct {
	A  uint16 // address register
	D  uint16 // data register
	PC uint16 // program counter (ROM address)
}

// Init initializes all registers to zero.
func (r *Registers) Init() {
	r.A = 0
	r.D = 0
	r.PC = 0
}
