// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"bytes"
	"strconv"
	"strings"
)

// The emitter lowers commands into Hack assembly lines held in memory
// until the whole run succeeds. It tracks the number of instructions
// written so far, which is the ROM address of the next instruction.
type emitter struct {
	w        bytes.Buffer
	resolver Resolver
	labels   Labels
	unit     string // base name of the unit being translated
	function string // qualified name of the enclosing function
	comments bool   // emit a comment before each command
	pc       int    // instructions emitted so far
}

// Write assembly lines to the output. Label declarations and comments
// occupy no instruction address.
func (e *emitter) emit(lines ...string) {
	for _, line := range lines {
		e.w.WriteString(line)
		e.w.WriteByte('\n')
		if line[0] != '(' && line[0] != '/' {
			e.pc++
		}
	}
}

// Set the unit whose commands are emitted next.
func (e *emitter) setUnit(name string, staticOffset int) {
	e.unit = name
	e.function = ""
	e.resolver.staticOffset = staticOffset
}

// Emit the instruction sequence for a single command.
func (e *emitter) command(c *Command) error {
	if e.comments {
		e.emit("// " + c.String())
	}

	switch c.Kind {
	case Push:
		return e.push(c.Segment, c.Index)
	case Pop:
		return e.pop(c.Segment, c.Index)
	case Arithmetic:
		e.arithmetic(c.Op)
	case Label:
		e.emit("(" + e.scoped(c.Name) + ")")
	case Goto:
		e.emit("@"+e.scoped(c.Name), "0;JMP")
	case IfGoto:
		e.popD()
		e.emit("@"+e.scoped(c.Name), "D;JNE")
	case Function:
		e.function = e.qualify(c.Name)
		e.emit("(" + e.function + ")")
		for i := 0; i < c.N; i++ {
			// Each zero pushed becomes local slot i, so SP ends at LCL+N.
			e.push(Constant, 0)
		}
	case Call:
		e.call(e.qualify(c.Name), c.N)
	case Return:
		e.ret()
	}
	return nil
}

// Push the D register onto the stack.
func (e *emitter) pushD() {
	e.emit("@SP", "A=M", "M=D", "@SP", "M=M+1")
}

// Pop the top of the stack into the D register.
func (e *emitter) popD() {
	e.emit("@SP", "AM=M-1", "D=M")
}

func (e *emitter) push(seg Segment, index int) error {
	plan, err := e.resolver.Resolve(seg, index)
	if err != nil {
		return err
	}

	switch plan.Kind {
	case PlanLiteral:
		e.emit("@"+strconv.Itoa(plan.Value), "D=A")
	case PlanStatic:
		e.emit("@"+plan.Symbol(), "D=M")
	case PlanDynamic:
		e.emit("@"+plan.Base, "D=M", "@"+strconv.Itoa(plan.Value), "A=D+A", "D=M")
	}
	e.pushD()
	return nil
}

func (e *emitter) pop(seg Segment, index int) error {
	plan, err := e.resolver.Resolve(seg, index)
	if err != nil {
		return err
	}

	switch plan.Kind {
	case PlanLiteral:
		return &ResolverError{seg, index, ErrConstantPop}
	case PlanStatic:
		e.popD()
		e.emit("@"+plan.Symbol(), "M=D")
	case PlanDynamic:
		e.emit("@"+plan.Base, "D=M", "@"+strconv.Itoa(plan.Value), "D=D+A", "@"+scratchAddr, "M=D")
		e.popD()
		e.emit("@"+scratchAddr, "A=M", "M=D")
	}
	return nil
}

var binaryComp = map[Op]string{
	Add: "M=D+M",
	Sub: "M=M-D",
	And: "M=D&M",
	Or:  "M=D|M",
}

var unaryComp = map[Op]string{
	Neg: "M=-M",
	Not: "M=!M",
}

var compareJump = map[Op]string{
	Eq: "D;JEQ",
	Gt: "D;JGT",
	Lt: "D;JLT",
}

func (e *emitter) arithmetic(op Op) {
	switch {
	case op.Unary():
		e.emit("@SP", "AM=M-1", unaryComp[op], "@SP", "M=M+1")

	case op.Comparison():
		// D = left - right, then branch on its sign.
		e.popD()
		e.emit("@SP", "AM=M-1", "D=M-D")
		t, f, done := e.labels.Next(), e.labels.Next(), e.labels.Next()
		e.emit(
			"@"+t, compareJump[op],
			"@"+f, "0;JMP",
			"("+t+")", "D=-1", "@"+done, "0;JMP",
			"("+f+")", "D=0", "@"+done, "0;JMP",
			"("+done+")",
		)
		e.pushD()

	default:
		// D = right operand, M = left operand.
		e.popD()
		e.emit("@SP", "AM=M-1", binaryComp[op], "@SP", "M=M+1")
	}
}

var savedRegisters = []string{"LCL", "ARG", "THIS", "THAT"}

func (e *emitter) call(function string, nArgs int) {
	ret := e.labels.NextReturn()

	e.emit("@"+ret, "D=A")
	e.pushD()
	for _, r := range savedRegisters {
		e.emit("@"+r, "D=M")
		e.pushD()
	}

	// ARG = SP - 5 - nArgs
	e.emit("@SP", "D=M", "@5", "D=D-A", "@"+strconv.Itoa(nArgs), "D=D-A", "@ARG", "M=D")

	// LCL = SP
	e.emit("@SP", "D=M", "@LCL", "M=D")

	e.emit("@"+function, "0;JMP", "("+ret+")")
}

func (e *emitter) ret() {
	// The return address must be saved before the return value is copied
	// to ARG[0], which is the return address slot when nArgs is 0.
	e.emit("@LCL", "D=M", "@"+scratchFrame, "M=D")
	e.emit("@5", "A=D-A", "D=M", "@"+scratchReturn, "M=D")

	e.popD()
	e.emit("@ARG", "A=M", "M=D")
	e.emit("@ARG", "D=M+1", "@SP", "M=D")

	for i := len(savedRegisters) - 1; i >= 0; i-- {
		e.emit("@"+scratchFrame, "AM=M-1", "D=M", "@"+savedRegisters[i], "M=D")
	}

	e.emit("@"+scratchReturn, "A=M", "0;JMP")
}

// Emit the bootstrap sequence: SP = 256, then call Sys.init.
func (e *emitter) bootstrap() {
	e.emit("@"+strconv.Itoa(stackBase), "D=A", "@SP", "M=D")
	e.call("Sys.init", 0)
}

// Emit an infinite loop that marks the end of the program.
func (e *emitter) halt() {
	e.emit("($halt)", "@$halt", "0;JMP")
}

// Return a label name scoped to the enclosing function, or to the unit
// when the label appears outside any function.
func (e *emitter) scoped(name string) string {
	scope := e.function
	if scope == "" {
		scope = e.unit
	}
	return scope + "$" + name
}

// Return a function name qualified with the unit's base name. Names that
// already carry a class prefix are global.
func (e *emitter) qualify(name string) string {
	if strings.Contains(name, ".") || e.unit == "" {
		return name
	}
	return e.unit + "." + name
}
