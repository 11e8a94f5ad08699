// Copyright 2018 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that emulates a Hack computer
// with a built-in VM translator, assembler, debugger and other useful
// tools.
//
// Within the host it is possible to translate VM programs, assemble and
// load machine code into ROM, run and step through it, set address and
// data breakpoints, inspect the VM stack, dump and modify data memory,
// disassemble ROM, and map ROM addresses back to VM source lines.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/yosakax/nand2tetris/asm"
	"github.com/yosakax/nand2tetris/config"
	"github.com/yosakax/nand2tetris/cpu"
	"github.com/yosakax/nand2tetris/disasm"
	"github.com/yosakax/nand2tetris/vm"
)

// errQuit ends command processing.
var errQuit = errors.New("exiting program")

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles
	displaySource

	displayAll = displayRegisters | displayCycles | displaySource
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
)

// A Host represents a fully emulated Hack system: 32K words of ROM and
// data memory, a VM translator, an assembler, a debugger, and other useful
// tools.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         *cpu.FlatMemory
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	lastCmd     *cmd.Selection
	state       state
	settings    *config.Settings
	sourceMap   *asm.SourceMap      // assembly source map of the loaded program
	vmMap       *vm.SourceMap       // VM source map of the loaded program
	sources     map[string][]string // source file -> lines
}

// New creates a new Hack host environment using the provided settings. A
// nil value selects the default settings.
func New(settings *config.Settings) *Host {
	if settings == nil {
		settings = config.New()
	}

	h := &Host{
		state:    stateProcessingCommands,
		settings: settings,
		sources:  make(map[string][]string),
	}

	// Create the emulated CPU and memory.
	h.mem = cpu.NewFlatMemory()
	h.cpu = cpu.NewCPU(h.mem)

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if strings.TrimSpace(line) != "" {
			c, err = cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		if err := h.execute(c); err != nil {
			break
		}
	}
	h.flush()
}

// Run the handler of a selected command. A command group with no
// subcommand selected lists its subcommands.
func (h *Host) execute(c cmd.Selection) error {
	if c.Command.Subcommands != nil {
		h.displayCommands(c.Command.Subcommands)
		return nil
	}
	handler, ok := c.Command.Data.(func(*Host, cmd.Selection) error)
	if !ok {
		h.println("Command not found.")
		return nil
	}
	return handler(h, c)
}

// Break interrupts a running CPU.
func (h *Host) Break() {
	h.cpu.Stop()
	if h.state == stateProcessingCommands {
		h.println()
		h.prompt()
	}
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displayPC() {
	d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
	h.println(d)
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.displayCommands(cmds)
		return nil
	}

	s, err := cmds.Lookup(strings.Join(c.Args, " "))
	switch {
	case err != nil:
		h.printf("%v\n", err)
	case s.Command.Subcommands != nil:
		h.displayCommands(s.Command.Subcommands)
	default:
		if s.Command.HelpText != "" {
			h.printf("Syntax: %s\n\n", s.Command.HelpText)
		}
		switch {
		case s.Command.Description != "":
			h.printf("Description:\n%s\n\n", indentWrap(3, s.Command.Description))
		case s.Command.Brief != "":
			h.printf("Description:\n%s.\n\n", indentWrap(3, s.Command.Brief))
		}
	}
	return nil
}

func (h *Host) cmdTranslate(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	path := c.Args[0]
	asmPath, sourceMap, err := vm.TranslateFile(path, h.settings.TranslateOptions(), h.output)
	if err != nil {
		h.printf("Failed to translate '%s': %v\n", filepath.Base(path), err)
		return nil
	}

	mapPath := strings.TrimSuffix(asmPath, filepath.Ext(asmPath)) + ".vmmap"
	if err := writeFile(mapPath, sourceMap); err != nil {
		h.printf("Failed to write '%s': %v\n", filepath.Base(mapPath), err)
		return nil
	}

	h.printf("Translated '%s' to '%s'.\n", filepath.Base(path), filepath.Base(asmPath))
	return nil
}

func (h *Host) cmdAssemble(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".asm"
	}

	err := asm.AssembleFile(filename, h.settings.AssembleOptions(), h.output)
	if err != nil {
		h.printf("Failed to assemble '%s': %v\n", filepath.Base(filename), err)
	}
	h.flush()
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	path := c.Args[0]
	var err error
	switch filepath.Ext(path) {
	case ".hack":
		err = h.loadHack(path)
	case ".asm":
		err = h.loadAssembly(path)
	default:
		err = h.loadVM(path)
	}
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(path), err)
	}
	return nil
}

// Load a .hack file and any source maps written beside it.
func (h *Host) loadHack(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	a := &asm.Assembly{}
	if _, err := a.ReadFrom(file); err != nil {
		return err
	}

	h.install(a.Code, nil, nil)

	prefix := strings.TrimSuffix(path, filepath.Ext(path))
	sm := &asm.SourceMap{}
	if err := readFile(prefix+".map", sm); err == nil {
		if sm.Matches(a.Code) {
			h.sourceMap = sm
			h.printf("Loaded '%s' source map\n", filepath.Base(prefix+".map"))
		} else {
			h.printf("Source map '%s' does not match the code\n", filepath.Base(prefix+".map"))
		}
	}
	vmMap := &vm.SourceMap{}
	if err := readFile(prefix+".vmmap", vmMap); err == nil {
		h.vmMap = vmMap
		h.printf("Loaded '%s' VM source map\n", filepath.Base(prefix+".vmmap"))
	}
	h.loadSources()

	h.printf("Loaded '%s': %d instructions\n", filepath.Base(path), len(a.Code))
	return nil
}

// Assemble a .asm file in memory and load it.
func (h *Host) loadAssembly(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	a, sm, err := asm.Assemble(file, path, h.output, h.settings.AssembleOptions())
	if err != nil {
		for _, e := range a.Errors {
			h.println(e)
		}
		return err
	}

	h.install(a.Code, sm, nil)
	h.loadSources()
	h.printf("Loaded '%s': %d instructions\n", filepath.Base(path), len(a.Code))
	return nil
}

// Translate and assemble a .vm file or directory in memory and load it.
func (h *Host) loadVM(path string) error {
	units, err := vm.LoadUnits(path)
	if err != nil {
		return err
	}

	var b strings.Builder
	vmMap, err := vm.Translate(units, &b, h.output, h.settings.TranslateOptions())
	if err != nil {
		return err
	}

	asmName := filepath.Base(vm.OutputPath(path))
	a, sm, err := asm.Assemble(strings.NewReader(b.String()), asmName, h.output, h.settings.AssembleOptions())
	if err != nil {
		for _, e := range a.Errors {
			h.println(e)
		}
		return err
	}

	h.install(a.Code, sm, vmMap)
	for _, u := range units {
		h.sources[u.Path] = u.Lines
	}
	h.sources[asmName] = strings.Split(b.String(), "\n")

	h.printf("Loaded %d VM file(s) from '%s': %d instructions\n", len(units), filepath.Base(path), len(a.Code))
	return nil
}

// Install code into ROM and reset the machine state.
func (h *Host) install(code []uint16, sm *asm.SourceMap, vmMap *vm.SourceMap) {
	h.cpu.LoadROM(code)
	h.mem.StoreWords(0, make([]uint16, cpu.MemorySize))
	h.sourceMap = sm
	h.vmMap = vmMap
	h.sources = make(map[string][]string)
	h.settings.NextDisasmAddr = 0
	h.settings.NextMemDumpAddr = 0
}

// Read the source files named by the loaded source maps.
func (h *Host) loadSources() {
	var files []string
	if h.sourceMap != nil {
		files = append(files, h.sourceMap.Files...)
	}
	if h.vmMap != nil {
		files = append(files, h.vmMap.Files...)
	}
	for _, f := range files {
		if _, ok := h.sources[f]; ok {
			continue
		}
		if b, err := os.ReadFile(f); err == nil {
			h.sources[f] = strings.Split(string(b), "\n")
		}
	}
}

func (h *Host) cmdRun(c cmd.Selection) error {
	limit := uint64(h.settings.MaxSteps)
	if len(c.Args) > 0 {
		n, err := strconv.ParseUint(c.Args[0], 0, 64)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		limit = n
	}

	if h.cpu.Halted {
		h.println("CPU is halted. Use reset to restart the program.")
		return nil
	}

	if h.interactive {
		h.printf("Running from %d. Press ctrl-C to break.\n", h.cpu.Reg.PC)
	}

	h.state = stateRunning
	n := h.cpu.Run(limit)
	switch {
	case h.cpu.Halted:
		h.printf("Halted at %d after %d instructions.\n", h.cpu.Reg.PC, n)
	case h.state == stateBreakpoint:
	case limit != 0 && n >= limit:
		h.printf("Stopped at %d after reaching the limit of %d instructions.\n", h.cpu.Reg.PC, limit)
	default:
		h.printf("Interrupted at %d.\n", h.cpu.Reg.PC)
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdStep(c cmd.Selection) error {
	// Parse the number of steps.
	count := 1
	if len(c.Args) > 0 {
		n, err := strconv.Atoi(c.Args[0])
		if err == nil {
			count = n
		}
	}

	// Step the CPU count times.
	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning && !h.cpu.Halted; i-- {
		h.cpu.Step()
		switch {
		case i == h.settings.DisasmLines:
			h.println("...")
		case i < h.settings.DisasmLines:
			h.displayPC()
		}
	}
	h.state = stateProcessingCommands

	if h.cpu.Halted {
		h.println("CPU halted.")
	}
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdReset(c cmd.Selection) error {
	h.cpu.Reset()
	h.println("CPU reset.")
	return nil
}

func (h *Host) cmdRegisters(c cmd.Selection) error {
	h.displayPC()

	var ptr [5]uint16
	h.mem.LoadWords(0, ptr[:])
	h.printf("SP=%s LCL=%s ARG=%s THIS=%s THAT=%s\n",
		h.word(ptr[0]), h.word(ptr[1]), h.word(ptr[2]), h.word(ptr[3]), h.word(ptr[4]))
	return nil
}

func (h *Host) cmdStack(c cmd.Selection) error {
	count := h.settings.StackWords
	if len(c.Args) > 0 {
		n, err := strconv.Atoi(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = n
	}

	sp := h.mem.LoadWord(0)
	if sp <= 256 {
		h.printf("Stack is empty (SP=%d).\n", sp)
		return nil
	}

	for i, addr := 0, sp-1; i < count && addr >= 256; i, addr = i+1, addr-1 {
		v := h.mem.LoadWord(addr)
		h.printf("%5d: %-6s %d\n", addr, h.word(v), int16(v))
	}
	return nil
}

func (h *Host) cmdMemoryDump(c cmd.Selection) error {
	var addr uint16
	switch {
	case len(c.Args) == 0 || c.Args[0] == "$":
		addr = h.settings.NextMemDumpAddr
	default:
		a, err := h.parseAddr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	words := uint16(h.settings.MemDumpWords)
	if len(c.Args) >= 2 {
		n, err := parseValue(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		words = n
	}

	h.dumpMemory(addr, words)

	h.settings.NextMemDumpAddr = addr + words
	h.lastCmd.Args = []string{"$", strconv.Itoa(int(words))}
	return nil
}

func (h *Host) cmdMemorySet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayHelpText(c.Command)
		return nil
	}

	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	values := make([]uint16, 0, len(c.Args)-1)
	for _, s := range c.Args[1:] {
		v, err := parseValue(s)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		values = append(values, v)
	}

	h.mem.StoreWords(addr, values)
	h.printf("Stored %d word(s) at %d.\n", len(values), addr)
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	var addr uint16
	switch {
	case len(c.Args) == 0 || c.Args[0] == "$":
		addr = h.settings.NextDisasmAddr
	default:
		a, err := h.parseAddr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	lines := h.settings.DisasmLines
	if len(c.Args) > 1 {
		n, err := strconv.Atoi(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = n
	}

	for i := 0; i < lines && int(addr) < len(h.cpu.ROM); i++ {
		d, next := h.disassemble(addr, displaySource)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastCmd.Args = []string{"$", strconv.Itoa(lines)}
	return nil
}

func (h *Host) cmdList(c cmd.Selection) error {
	addr := h.cpu.Reg.PC
	if len(c.Args) > 0 {
		a, err := h.parseAddr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	filename, line := h.sourceLine(addr)
	if line < 0 {
		h.printf("No source line for address %d.\n", addr)
		return nil
	}

	lines, ok := h.sources[filename]
	if !ok {
		h.printf("%s:%d (source not loaded)\n", filename, line)
		return nil
	}

	first := max(line-h.settings.SourceLines/2, 1)
	last := min(first+h.settings.SourceLines-1, len(lines))
	for i := first; i <= last; i++ {
		marker := " "
		if i == line {
			marker = ">"
		}
		h.printf("%s %4d  %s\n", marker, i, lines[i-1])
	}
	return nil
}

func (h *Host) cmdExports(c cmd.Selection) error {
	if h.sourceMap == nil || len(h.sourceMap.Exports) == 0 {
		h.println("No active exports.")
		return nil
	}
	for _, e := range h.sourceMap.Exports {
		h.printf("%-24s %d\n", e.Label, e.Address)
	}
	return nil
}

func (h *Host) cmdBreakpointList(c cmd.Selection) error {
	h.println("Addr  Enabled  Hits")
	h.println("----- -------  ----")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("%-5d %-7v  %d\n", b.Address, !b.Disabled, b.Hits)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at %d.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c cmd.Selection) error {
	b := h.lookupBreakpoint(c)
	if b != nil {
		h.debugger.RemoveBreakpoint(b.Address)
		h.printf("Breakpoint at %d removed.\n", b.Address)
	}
	return nil
}

func (h *Host) cmdBreakpointEnable(c cmd.Selection) error {
	b := h.lookupBreakpoint(c)
	if b != nil {
		b.Disabled = false
		h.printf("Breakpoint at %d enabled.\n", b.Address)
	}
	return nil
}

func (h *Host) cmdBreakpointDisable(c cmd.Selection) error {
	b := h.lookupBreakpoint(c)
	if b != nil {
		b.Disabled = true
		h.printf("Breakpoint at %d disabled.\n", b.Address)
	}
	return nil
}

func (h *Host) lookupBreakpoint(c cmd.Selection) *cpu.Breakpoint {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on %d.\n", addr)
	}
	return b
}

func (h *Host) cmdDataBreakpointList(c cmd.Selection) error {
	h.println("Addr  Enabled  Value   Hits")
	h.println("----- -------  ------  ----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		value := "<none>"
		if b.Conditional {
			value = h.word(b.Value)
		}
		h.printf("%-5d %-7v  %-6s  %d\n", b.Address, !b.Disabled, value, b.Hits)
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if len(c.Args) > 1 {
		value, err := parseValue(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, value)
		h.printf("Conditional data breakpoint added at %d for value %d.\n", addr, value)
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at %d.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if h.debugger.GetDataBreakpoint(addr) == nil {
		h.printf("No data breakpoint was set on %d.\n", addr)
		return nil
	}

	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint at %d removed.\n", addr)
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayHelpText(c.Command)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		// Setting a register?
		switch key {
		case "a", "d", "pc":
			v, err := h.parseAddr(value)
			if err != nil {
				h.printf("%v\n", err)
				return nil
			}
			switch key {
			case "a":
				h.cpu.Reg.A = v
			case "d":
				h.cpu.Reg.D = v
			case "pc":
				h.cpu.SetPC(v)
			}
			h.printf("Register %s set to %d.\n", strings.ToUpper(key), v)
			return nil
		}

		// Setting a configuration variable?
		if err := h.settings.SetString(key, value); err != nil {
			h.printf("%v\n", err)
		} else {
			h.println("Setting updated.")
		}
	}
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errQuit
}

// Return the VM source line for a ROM address, falling back to the
// assembly source line.
func (h *Host) sourceLine(addr uint16) (filename string, line int) {
	if h.vmMap != nil {
		if f, l := h.vmMap.Search(int(addr)); l >= 0 {
			return f, l
		}
	}
	if h.sourceMap != nil {
		return h.sourceMap.Search(int(addr))
	}
	return "", -1
}

// Parse an address: a decimal or 0x hexadecimal number, a label of the
// loaded program, or "." for the program counter.
func (h *Host) parseAddr(s string) (uint16, error) {
	if s == "." {
		return h.cpu.Reg.PC, nil
	}
	if v, err := parseValue(s); err == nil {
		return v, nil
	}
	if h.sourceMap != nil {
		if addr, ok := h.sourceMap.Lookup(s); ok {
			return addr, nil
		}
	}
	return 0, fmt.Errorf("invalid address '%s'", s)
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	line, next := disasm.DisassembleAt(h.cpu, addr)

	var word uint16
	if inst, ok := h.cpu.GetInstruction(addr); ok {
		word = inst.Word
	}
	str = fmt.Sprintf("%5d-  %04X  %-15s", addr, word, line)

	if (flags & displayRegisters) != 0 {
		reg := h.cpu.Reg
		str += fmt.Sprintf(" A=%s D=%s M=%s", h.word(reg.A), h.word(reg.D), h.word(h.mem.LoadWord(reg.A)))
	}

	if (flags & displayCycles) != 0 {
		str += fmt.Sprintf(" C=%-10d", h.cpu.Cycles)
	}

	if (flags & displaySource) != 0 {
		if f, l := h.sourceLine(addr); l >= 0 {
			if lines, ok := h.sources[f]; ok && l <= len(lines) {
				str += " ; " + strings.TrimSpace(lines[l-1])
			}
		}
	}

	return str, next
}

func (h *Host) dumpMemory(addr0, words uint16) {
	if words == 0 {
		return
	}

	const perRow = 8
	end := min(int(addr0)+int(words), cpu.MemorySize)
	buf := make([]uint16, perRow)
	for a := int(addr0); a < end; a += perRow {
		n := min(perRow, end-a)
		h.mem.LoadWords(uint16(a), buf[:n])

		var b strings.Builder
		fmt.Fprintf(&b, "%5d-", a)
		for _, v := range buf[:n] {
			b.WriteByte(' ')
			b.WriteString(h.word(v))
		}
		h.println(b.String())
	}
}

// Format a word for display in the current number mode.
func (h *Host) word(v uint16) string {
	if h.settings.HexMode {
		return fmt.Sprintf("%04X", v)
	}
	return strconv.Itoa(int(int16(v)))
}

func (h *Host) displayHelpText(c *cmd.Command) {
	if c.HelpText != "" {
		h.printf("Syntax: %s\n", c.HelpText)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands(commands *cmd.Tree) {
	h.printf("%s commands:\n", commands.Title)
	for _, c := range commands.Commands {
		if c.Brief != "" {
			h.printf("    %-15s  %s\n", c.Name, c.Brief)
		}
	}
}
