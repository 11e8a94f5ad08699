// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements the Hack CPU instruction set and emulator.
package cpu

// CPU represents a single Hack CPU. Instructions are fetched from ROM and
// data is accessed through the assigned memory.
type CPU struct {
	Reg       Registers // CPU registers
	ROM       []uint16  // instruction memory
	Mem       Memory    // assigned data memory
	Cycles    uint64    // total executed instructions
	LastPC    uint16    // previous program counter
	Halted    bool      // the program reached a halt loop or left ROM
	stopped   bool
	debugger  *Debugger
	storeWord func(cpu *CPU, addr uint16, v uint16)
}

// NewCPU creates an emulated Hack CPU bound to the specified memory.
func NewCPU(m Memory) *CPU {
	cpu := &CPU{
		Mem:       m,
		storeWord: (*CPU).storeWordNormal,
	}

	cpu.Reg.Init()
	return cpu
}

// LoadROM replaces the instruction memory and resets the CPU.
func (cpu *CPU) LoadROM(code []uint16) {
	cpu.ROM = code
	cpu.Reset()
}

// Reset clears the registers and the halted state. Data memory is kept.
func (cpu *CPU) Reset() {
	cpu.Reg.Init()
	cpu.Cycles = 0
	cpu.LastPC = 0
	cpu.Halted = false
	cpu.stopped = false
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
	cpu.Halted = false
}

// GetInstruction returns the decoded instruction at the requested ROM
// address, and false if the address lies outside ROM.
func (cpu *CPU) GetInstruction(addr uint16) (Instruction, bool) {
	if int(addr) >= len(cpu.ROM) {
		return Instruction{}, false
	}
	return Decode(cpu.ROM[addr]), true
}

// Step the cpu by one instruction.
func (cpu *CPU) Step() {
	inst, ok := cpu.GetInstruction(cpu.Reg.PC)
	if !ok {
		cpu.Halted = true
		return
	}

	cpu.LastPC = cpu.Reg.PC
	cpu.Cycles++

	if !inst.IsC {
		cpu.Reg.A = inst.Value
		cpu.Reg.PC++
	} else {
		cpu.execute(inst)
	}

	// Update the debugger so it can handle breakpoints.
	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}
}

// Execute a C-instruction. The memory write and the jump both use the value
// A held before the instruction.
func (cpu *CPU) execute(inst Instruction) {
	addr := cpu.Reg.A

	y := addr
	if inst.Comp&(ABit>>CompShift) != 0 {
		y = cpu.Mem.LoadWord(addr)
	}
	out := ALU(inst.Comp, cpu.Reg.D, y)

	if inst.Dest&DestM != 0 {
		cpu.storeWord(cpu, addr, out)
	}
	if inst.Dest&DestD != 0 {
		cpu.Reg.D = out
	}
	if inst.Dest&DestA != 0 {
		cpu.Reg.A = out
	}

	if !Jumps(inst.Jump, out) {
		cpu.Reg.PC++
		return
	}

	// A jump to the A-instruction immediately before this one, which
	// loaded its own address, is an idle loop.
	if addr+1 == cpu.Reg.PC {
		if prev, ok := cpu.GetInstruction(addr); ok && !prev.IsC && prev.Value == addr {
			cpu.Halted = true
		}
	}
	cpu.Reg.PC = addr
}

// Run steps the CPU until it halts, a debugger handler calls Stop, or
// limit instructions have executed. A limit of zero means no limit. Run
// returns the number of instructions executed.
func (cpu *CPU) Run(limit uint64) uint64 {
	cpu.stopped = false
	var n uint64
	for !cpu.Halted && !cpu.stopped && (limit == 0 || n < limit) {
		cpu.Step()
		n++
	}
	return n
}

// Stop causes a running call to Run to return after the current
// instruction.
func (cpu *CPU) Stop() {
	cpu.stopped = true
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a word
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
	cpu.storeWord = (*CPU).storeWordDebugger
}

// DetachDebugger detaches the current debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.storeWord = (*CPU).storeWordNormal
}

func (cpu *CPU) storeWordNormal(addr uint16, v uint16) {
	cpu.Mem.StoreWord(addr, v)
}

func (cpu *CPU) storeWordDebugger(addr uint16, v uint16) {
	cpu.debugger.onDataStore(cpu, addr, v)
	cpu.Mem.StoreWord(addr, v)
}
