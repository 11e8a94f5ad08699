// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/yosakax/nand2tetris/cpu"

// The debugHandler is the host's breakpoint handler. A breakpoint stops
// the running CPU and reports where the program stopped.
type debugHandler struct {
	host *Host
}

func newDebugHandler(h *Host) *debugHandler {
	return &debugHandler{host: h}
}

func (d *debugHandler) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	h := d.host
	h.state = stateBreakpoint
	c.Stop()
	h.printf("Breakpoint hit at %d.\n", b.Address)
	h.displayPC()
}

func (d *debugHandler) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h := d.host
	h.state = stateBreakpoint
	c.Stop()
	h.printf("Data breakpoint hit on address %d.\n", b.Address)

	// The store happens before the program counter advances.
	line, _ := h.disassemble(c.Reg.PC, displaySource)
	h.println(line)
}
