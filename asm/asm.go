// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a Hack assembler.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/yosakax/nand2tetris/cpu"
)

var (
	errParse = errors.New("parse error")
)

// First RAM address handed out to variables.
const variableBase = 16

// Symbols defined before assembly begins.
var predefined = map[string]int{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": cpu.ScreenBase,
	"KBD":    cpu.KBD,
}

func init() {
	for i := 0; i < 16; i++ {
		predefined["R"+strconv.Itoa(i)] = i
	}
}

// A single parsed instruction.
type instruction struct {
	line   fstring // source line
	addr   int     // ROM address
	isC    bool    // C-instruction if true
	symbol fstring // A-instruction symbol, empty if numeric
	value  int     // A-instruction value, resolved in pass 2
	comp   uint16
	dest   uint16
	jump   uint16
	code   uint16
}

// An error encountered during assembly.
type asmerror struct {
	line fstring // source code line
	msg  string  // error message
}

// The assembler is a state object used during the assembly of
// machine code from assembly code.
type assembler struct {
	r           io.Reader      // the reader passed to Assemble
	insts       []*instruction // parsed instructions
	pending     []fstring      // labels awaiting the next instruction
	labels      map[string]int // label -> instruction index
	symbols     map[string]int // resolved symbol -> value
	variables   []string       // variables in allocation order
	nextVar     int            // next variable address
	sourceLines []SourceLine   // source code line mappings
	files       []string       // processed files
	code        []uint16       // generated machine code
	out         io.Writer      // output used for verbose output
	verbose     bool           // verbose output
	errors      []asmerror     // errors encountered during assembly
}

// An Export describes an exported label address.
type Export struct {
	Label   string
	Address uint16
}

// Assembly contains the assembled machine code and other data associated with
// the machine code.
type Assembly struct {
	Code   []uint16 // Assembled machine code
	Errors []string // Errors encountered during assembly
}

// ReadFrom reads machine code in .hack text form: one 16-character binary
// word per line.
func (a *Assembly) ReadFrom(r io.Reader) (n int64, err error) {
	a.Errors = []string{}
	a.Code = a.Code[:0]

	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		row++
		text := scanner.Text()
		n += int64(len(text)) + 1
		if strings.TrimSpace(text) == "" {
			continue
		}
		w, ok := parseWord(text)
		if !ok {
			return n, fmt.Errorf("line %d: invalid instruction word '%s'", row, text)
		}
		a.Code = append(a.Code, w)
	}
	if len(a.Code) > 0x8000 {
		return n, fmt.Errorf("code exceeded 32K words")
	}
	return n, scanner.Err()
}

// WriteTo saves machine code in .hack text form into an output writer.
func (a *Assembly) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)
	for _, word := range a.Code {
		nn, _ := bw.WriteString(wordString(word) + "\n")
		n += int64(nn)
	}
	return n, bw.Flush()
}

// Option type used by the Assemble function.
type Option uint

// Options for the Assemble function.
const (
	Verbose Option = 1 << iota // verbose output during assembly
)

// AssembleFile reads a file containing Hack assembly code, assembles it,
// and produces a .hack output file and a source map file.
func AssembleFile(path string, options Option, out io.Writer) error {
	inFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer inFile.Close()

	assembly, sourceMap, err := Assemble(inFile, path, out, options)
	if err != nil {
		for _, e := range assembly.Errors {
			fmt.Fprintln(out, e)
		}
		return err
	}

	ext := filepath.Ext(path)
	prefix := path[:len(path)-len(ext)]
	hackPath := prefix + ".hack"
	hackFile, err := os.OpenFile(hackPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer hackFile.Close()

	_, err = assembly.WriteTo(hackFile)
	if err != nil {
		return err
	}

	mapPath := prefix + ".map"
	mapFile, err := os.OpenFile(mapPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer mapFile.Close()

	_, err = sourceMap.WriteTo(mapFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Assembled '%s' to produce '%s' and '%s'.\n",
		filepath.Base(path),
		filepath.Base(hackPath),
		filepath.Base(mapPath))
	return nil
}

// Assemble reads data from the provided stream and attempts to assemble it
// into Hack machine code.
func Assemble(r io.Reader, filename string, out io.Writer, options Option) (*Assembly, *SourceMap, error) {
	if out == nil {
		out = os.Stdout
	}

	a := &assembler{
		r:       r,
		labels:  make(map[string]int),
		symbols: make(map[string]int),
		nextVar: variableBase,
		files:   []string{filename},
		out:     out,
		verbose: (options & Verbose) != 0,
	}

	// Assembly consists of the following steps
	steps := []func(a *assembler) error{
		(*assembler).parse,           // Parse the assembly code
		(*assembler).assignAddresses, // Assign addresses to instructions and labels
		(*assembler).resolveSymbols,  // Resolve symbols, allocating variables
		(*assembler).generateCode,    // Generate the machine code
	}

	// Execute assembler steps, breaking if an error is encountered
	// in any one of them.
	var err error
	for _, step := range steps {
		err = step(a)
		if err != nil {
			break
		}
		if len(a.errors) > 0 {
			err = errParse
			break
		}
	}

	errors := make([]string, 0, len(a.errors))
	for _, e := range a.errors {
		filename := a.files[e.line.fileIndex]
		s := fmt.Sprintf("Syntax error in '%s' line %d, col %d: %s", filename, e.line.row, e.line.column+1, e.msg)
		errors = append(errors, s)
	}

	assembly := &Assembly{
		Code:   a.code,
		Errors: errors,
	}

	sourceMap := &SourceMap{
		Size:    len(a.code),
		CRC:     checksum(a.code),
		Files:   a.files,
		Lines:   a.sourceLines,
		Exports: sortExports(a.exports()),
	}

	return assembly, sourceMap, err
}

// Read the assembly code and perform the initial parsing. Build up the
// instruction list and the label table.
func (a *assembler) parse() error {
	a.logSection("Parsing assembly code")

	scanner := bufio.NewScanner(a.r)
	row := 1
	for scanner.Scan() {
		line := newFstring(0, row, scanner.Text())
		a.parseLine(line.stripTrailingComment().consumeWhitespace())
		row++
	}
	return scanner.Err()
}

// Parse a single line of assembly code. Syntax errors are collected so
// that every bad line is reported.
func (a *assembler) parseLine(line fstring) {
	switch {
	case line.isEmpty():
		return
	case line.startsWithChar('('):
		a.parseLabel(line)
	case line.startsWithChar('@'):
		a.parseAInstruction(line)
	default:
		a.parseCInstruction(line)
	}
}

// Parse a "(LABEL)" declaration.
func (a *assembler) parseLabel(line fstring) {
	a.logLine(line, "label")

	inner := line.consume(1)
	label, remain := inner.consumeUntilChar(')')
	if remain.isEmpty() {
		a.addError(line, "missing ')' in label declaration")
		return
	}
	if rest := remain.consume(1); !rest.isEmpty() {
		a.addError(rest, "unexpected text '%s' after label", rest.str)
		return
	}
	if !validSymbol(label.str) {
		a.addError(label, "invalid label '%s'", label.str)
		return
	}
	if _, found := predefined[label.str]; found {
		a.addError(label, "label '%s' redefines a predefined symbol", label.str)
		return
	}
	for _, p := range a.pending {
		if p.str == label.str {
			a.addError(label, "label '%s' used more than once", label.str)
			return
		}
	}
	if _, found := a.labels[label.str]; found {
		a.addError(label, "label '%s' used more than once", label.str)
		return
	}

	a.pending = append(a.pending, label)
}

// Parse an "@value" or "@symbol" instruction.
func (a *assembler) parseAInstruction(line fstring) {
	a.logLine(line, "a_inst")

	operand := line.consume(1)
	inst := &instruction{line: line}
	switch {
	case operand.isEmpty():
		a.addError(line, "missing A-instruction operand")
		return

	case operand.startsWith(decimal):
		if operand.scanWhile(decimal) != len(operand.str) {
			a.addError(operand, "invalid constant '%s'", operand.str)
			return
		}
		v, err := strconv.Atoi(operand.str)
		if err != nil || v > int(cpu.MaxAddress) {
			a.addError(operand, "constant '%s' out of range", operand.str)
			return
		}
		inst.value = v

	default:
		if !validSymbol(operand.str) {
			a.addError(operand, "invalid symbol '%s'", operand.str)
			return
		}
		inst.symbol = operand
	}

	a.addInstruction(inst)
}

// Parse a "dest=comp;jump" instruction. The dest and jump fields are
// optional. Whitespace inside the instruction is ignored.
func (a *assembler) parseCInstruction(line fstring) {
	a.logLine(line, "c_inst")

	inst := &instruction{line: line, isC: true}
	s := line.squeeze()

	comp := s.str
	if i := strings.IndexByte(comp, '='); i >= 0 {
		dest, ok := cpu.DestCode(comp[:i])
		if !ok || i == 0 {
			a.addError(line, "invalid destination '%s'", comp[:i])
			return
		}
		inst.dest = dest
		comp = comp[i+1:]
	}
	if i := strings.IndexByte(comp, ';'); i >= 0 {
		jump, ok := cpu.JumpCode(comp[i+1:])
		if !ok {
			a.addError(line, "invalid jump '%s'", comp[i+1:])
			return
		}
		inst.jump = jump
		comp = comp[:i]
	}

	bits, ok := cpu.CompCode(comp)
	if !ok {
		a.addError(line, "invalid computation '%s'", comp)
		return
	}
	inst.comp = bits

	a.addInstruction(inst)
}

// Append an instruction, attaching any pending labels to it.
func (a *assembler) addInstruction(inst *instruction) {
	index := len(a.insts)
	for _, l := range a.pending {
		a.labels[l.str] = index
	}
	a.pending = a.pending[:0]
	a.insts = append(a.insts, inst)
}

// Assign ROM addresses to instructions. Labels declared after the last
// instruction refer to the end of the program.
func (a *assembler) assignAddresses() error {
	a.logSection("Assigning addresses")

	for _, l := range a.pending {
		a.labels[l.str] = len(a.insts)
	}
	a.pending = nil

	if len(a.insts) > int(cpu.MaxAddress)+1 {
		return fmt.Errorf("program exceeds %d instructions", int(cpu.MaxAddress)+1)
	}

	for i, inst := range a.insts {
		inst.addr = i
	}
	for label, index := range a.labels {
		a.symbols[label] = index
		a.log("%-20s Addr:%04X", label, index)
	}
	return nil
}

// Resolve A-instruction symbols. Symbols that are neither predefined nor
// labels become variables, allocated in order of first use.
func (a *assembler) resolveSymbols() error {
	a.logSection("Resolving symbols")

	for _, inst := range a.insts {
		if inst.isC || inst.symbol.isEmpty() {
			continue
		}
		name := inst.symbol.str
		if v, ok := predefined[name]; ok {
			inst.value = v
			continue
		}
		if v, ok := a.symbols[name]; ok {
			inst.value = v
			continue
		}
		if a.nextVar >= cpu.ScreenBase {
			a.addError(inst.symbol, "too many variables allocating '%s'", name)
			return errParse
		}
		a.symbols[name] = a.nextVar
		a.variables = append(a.variables, name)
		inst.value = a.nextVar
		a.nextVar++
	}

	a.log("%d variables allocated", len(a.variables))
	if a.verbose {
		pp.Fprintf(a.out, "%v\n", a.symbols)
	}
	return nil
}

// Generate the machine code.
func (a *assembler) generateCode() error {
	a.logSection("Generating code")

	a.code = make([]uint16, len(a.insts))
	for i, inst := range a.insts {
		if inst.isC {
			inst.code = cpu.Encode(inst.comp, inst.dest, inst.jump)
		} else {
			inst.code = uint16(inst.value)
		}
		a.code[i] = inst.code

		a.sourceLines = append(a.sourceLines, SourceLine{
			Address:   inst.addr,
			FileIndex: inst.line.fileIndex,
			Line:      inst.line.row,
		})
		a.log("%04X-   %s   %s", inst.addr, wordString(inst.code), inst.line.str)
	}
	return nil
}

// Return every label as an exported address.
func (a *assembler) exports() []Export {
	exports := make([]Export, 0, len(a.labels))
	for label, index := range a.labels {
		exports = append(exports, Export{Label: label, Address: uint16(index)})
	}
	return exports
}

// Append an error message to the assembler's error state.
func (a *assembler) addError(l fstring, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.errors = append(a.errors, asmerror{l, msg})
	if a.verbose {
		filename := a.files[l.fileIndex]
		fmt.Fprintf(a.out, "Syntax error in '%s' line %d, col %d: %s\n", filename, l.row, l.column+1, msg)
		fmt.Fprintln(a.out, l.full)
		for i := 0; i < l.column; i++ {
			fmt.Fprintf(a.out, "-")
		}
		fmt.Fprintln(a.out, "^")
	}
}

// In verbose mode, log a string to standard output.
func (a *assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintf(a.out, "\n")
	}
}

// In verbose mode, log a string and its associated line
// of assembly code.
func (a *assembler) logLine(line fstring, format string, args ...any) {
	if a.verbose {
		detail := fmt.Sprintf(format, args...)
		fmt.Fprintf(a.out, "%-3d %-3d | %-20s | %s\n", line.row, line.column+1, detail, line.str)
	}
}

// In verbose mode, log a section header to the standard output.
func (a *assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}

// Return true if s is a valid Hack symbol.
func validSymbol(s string) bool {
	if len(s) == 0 || !symbolStartChar(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !symbolChar(s[i]) {
			return false
		}
	}
	return true
}
