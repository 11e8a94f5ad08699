package cpu_test

import (
	"io"
	"strings"
	"testing"

	"github.com/yosakax/nand2tetris/asm"
	"github.com/yosakax/nand2tetris/cpu"
)

func loadCPU(t *testing.T, asmString string) *cpu.CPU {
	b := strings.NewReader(asmString)
	r, _, err := asm.Assemble(b, "test.asm", io.Discard, 0)
	if err != nil {
		t.Error(err)
		return nil
	}

	mem := cpu.NewFlatMemory()
	cpu := cpu.NewCPU(mem)
	cpu.LoadROM(r.Code)
	return cpu
}

func stepCPU(cpu *cpu.CPU, steps int) {
	for i := 0; i < steps; i++ {
		cpu.Step()
	}
}

func runCPU(t *testing.T, asmString string, steps int) *cpu.CPU {
	cpu := loadCPU(t, asmString)
	if cpu != nil {
		stepCPU(cpu, steps)
	}
	return cpu
}

func expectPC(t *testing.T, cpu *cpu.CPU, pc uint16) {
	if cpu.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: %d, got: %d", pc, cpu.Reg.PC)
	}
}

func expectA(t *testing.T, cpu *cpu.CPU, v uint16) {
	if cpu.Reg.A != v {
		t.Errorf("A register incorrect. exp: $%04X, got: $%04X", v, cpu.Reg.A)
	}
}

func expectD(t *testing.T, cpu *cpu.CPU, v uint16) {
	if cpu.Reg.D != v {
		t.Errorf("D register incorrect. exp: $%04X, got: $%04X", v, cpu.Reg.D)
	}
}

func expectMem(t *testing.T, cpu *cpu.CPU, addr uint16, v uint16) {
	got := cpu.Mem.LoadWord(addr)
	if got != v {
		t.Errorf("Memory at %d incorrect. exp: $%04X, got: $%04X", addr, v, got)
	}
}

func TestRegisters(t *testing.T) {
	asm := `
	@1234
	D=A
	@100
	M=D
	AD=M+1`

	cpu := runCPU(t, asm, 5)
	if cpu == nil {
		return
	}

	expectPC(t, cpu, 5)
	expectA(t, cpu, 1235)
	expectD(t, cpu, 1235)
	expectMem(t, cpu, 100, 1234)
	if cpu.Cycles != 5 {
		t.Errorf("Cycles incorrect. exp: 5, got: %d", cpu.Cycles)
	}
}

func TestOldAddressUsed(t *testing.T) {
	// AM=M-1 must store to the address A held before the instruction.
	asm := `
	@300
	D=A
	@0
	M=D
	AM=M-1
	M=0`

	cpu := runCPU(t, asm, 6)
	if cpu == nil {
		return
	}

	expectMem(t, cpu, 0, 299)
	expectA(t, cpu, 299)
	expectMem(t, cpu, 299, 0)
}

func TestALU(t *testing.T) {
	asm := `
	@5
	D=A
	@3
	D=D-A
	D=-D
	D=!D
	D=D|A
	D=D&A`

	cpu := loadCPU(t, asm)
	if cpu == nil {
		return
	}

	stepCPU(cpu, 4)
	expectD(t, cpu, 2)
	stepCPU(cpu, 1)
	expectD(t, cpu, 0xfffe)
	stepCPU(cpu, 1)
	expectD(t, cpu, 1)
	stepCPU(cpu, 1)
	expectD(t, cpu, 3)
	stepCPU(cpu, 1)
	expectD(t, cpu, 3)
}

func TestJumps(t *testing.T) {
	tests := []struct {
		value uint16
		jump  string
		taken bool
	}{
		{0, "JEQ", true},
		{1, "JEQ", false},
		{1, "JGT", true},
		{0xffff, "JGT", false},
		{0xffff, "JLT", true},
		{0, "JGE", true},
		{0x8000, "JGE", false},
		{0, "JLE", true},
		{5, "JNE", true},
		{0, "JNE", false},
		{7, "JMP", true},
	}

	for _, test := range tests {
		asm := "@" + "10\nD=A\n@0\nM=D\n@20\nD=M;" + test.jump
		cpu := loadCPU(t, asm)
		if cpu == nil {
			return
		}
		cpu.Mem.StoreWord(0, 0)
		stepCPU(cpu, 4)
		cpu.Mem.StoreWord(20, test.value)
		stepCPU(cpu, 2)

		var exp uint16 = 6
		if test.taken {
			exp = 20
		}
		if cpu.Reg.PC != exp {
			t.Errorf("D=%04X;%s: PC exp %d, got %d", test.value, test.jump, exp, cpu.Reg.PC)
		}
	}
}

func TestHalt(t *testing.T) {
	asm := `
	@7
	D=A
(END)
	@END
	0;JMP`

	cpu := loadCPU(t, asm)
	if cpu == nil {
		return
	}

	n := cpu.Run(1000)
	if !cpu.Halted {
		t.Error("expected CPU to halt")
	}
	if n != 4 {
		t.Errorf("expected 4 instructions, got %d", n)
	}
	expectPC(t, cpu, 2)
	expectD(t, cpu, 7)
}

func TestRunOffEnd(t *testing.T) {
	cpu := loadCPU(t, "@1\nD=A")
	if cpu == nil {
		return
	}
	if n := cpu.Run(0); n != 3 || !cpu.Halted {
		t.Errorf("expected halt after 3 steps, got %d steps, halted=%v", n, cpu.Halted)
	}
}

type breakHandler struct {
	hits     []uint16
	dataHits []uint16
}

func (h *breakHandler) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	h.hits = append(h.hits, b.Address)
	c.Stop()
}

func (h *breakHandler) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h.dataHits = append(h.dataHits, b.Address)
	c.Stop()
}

func TestBreakpoints(t *testing.T) {
	asm := `
	@5
	D=A
	@100
	M=D
	@101
	M=D
(END)
	@END
	0;JMP`

	c := loadCPU(t, asm)
	if c == nil {
		return
	}

	h := &breakHandler{}
	d := cpu.NewDebugger(h)
	c.AttachDebugger(d)
	d.AddBreakpoint(2)
	d.AddConditionalDataBreakpoint(101, 5)
	d.AddDataBreakpoint(100).Disabled = true

	c.Run(0)
	expectPC(t, c, 2)
	if len(h.hits) != 1 || h.hits[0] != 2 {
		t.Errorf("breakpoint hits: %v", h.hits)
	}

	c.Run(0)
	if len(h.dataHits) != 1 || h.dataHits[0] != 101 {
		t.Errorf("data breakpoint hits: %v", h.dataHits)
	}

	c.Run(0)
	if !c.Halted {
		t.Error("expected CPU to halt")
	}

	if bps := d.GetBreakpoints(); len(bps) != 1 || bps[0].Address != 2 || bps[0].Hits != 1 {
		t.Errorf("unexpected breakpoints %v", bps)
	}
	if b := d.GetDataBreakpoint(101); b == nil || b.Hits != 1 {
		t.Errorf("unexpected data breakpoint %v", b)
	}
	if b := d.GetDataBreakpoint(100); b == nil || b.Hits != 0 {
		t.Errorf("disabled data breakpoint was hit: %v", b)
	}
	d.RemoveBreakpoint(2)
	if d.GetBreakpoint(2) != nil {
		t.Error("breakpoint not removed")
	}
}

func TestDecode(t *testing.T) {
	inst := cpu.Decode(0xfca8) // AM=M-1
	if !inst.IsC || inst.Dest != cpu.DestA|cpu.DestM || inst.Jump != 0 {
		t.Errorf("bad decode: %+v", inst)
	}
	if name, ok := cpu.CompName(inst.Comp); !ok || name != "M-1" {
		t.Errorf("comp name: got %q", name)
	}
	if cpu.DestName(inst.Dest) != "AM" {
		t.Errorf("dest name: got %q", cpu.DestName(inst.Dest))
	}
	if w := cpu.Encode(inst.Comp, inst.Dest, inst.Jump); w != 0xfca8 {
		t.Errorf("encode: got %04X", w)
	}

	a := cpu.Decode(0x1234)
	if a.IsC || a.Value != 0x1234 {
		t.Errorf("bad decode: %+v", a)
	}
}
