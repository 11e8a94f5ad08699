// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a Hack instruction set
// disassembler.
package disasm

import (
	"fmt"
	"strings"

	"github.com/yosakax/nand2tetris/cpu"
)

// Disassemble a single instruction word into Hack assembly text.
// Computations with no mnemonic are shown as raw bits.
func Disassemble(w uint16) string {
	inst := cpu.Decode(w)
	if !inst.IsC {
		return fmt.Sprintf("@%d", inst.Value)
	}

	comp, ok := cpu.CompName(inst.Comp)
	if !ok {
		comp = fmt.Sprintf("?%07b", inst.Comp)
	}

	var b strings.Builder
	if inst.Dest != 0 {
		b.WriteString(cpu.DestName(inst.Dest))
		b.WriteByte('=')
	}
	b.WriteString(comp)
	if inst.Jump != 0 {
		b.WriteByte(';')
		b.WriteString(cpu.JumpName(inst.Jump))
	}
	return b.String()
}

// Disassemble the instruction in c's ROM at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following instruction.
func DisassembleAt(c *cpu.CPU, addr uint16) (line string, next uint16) {
	inst, ok := c.GetInstruction(addr)
	if !ok {
		return "", addr + 1
	}
	return Disassemble(inst.Word), addr + 1
}
