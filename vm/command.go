// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vm implements a translator from the stack-based VM language to
// Hack assembly.
//
// Each VM source unit is parsed into commands, and each command is lowered
// into a fixed sequence of Hack instructions. Segment accesses are resolved
// either to static RAM addresses or to instruction fragments that compute an
// address from a base register at run time. Function calls follow the
// standard frame layout: return address, LCL, ARG, THIS and THAT are saved
// on the stack by the caller and restored by the callee's return.
package vm

import (
	"fmt"
	"strconv"
)

// Kind identifies the type of a VM command.
type Kind byte

// All kinds of VM commands.
const (
	Push Kind = iota
	Pop
	Arithmetic
	Label
	Goto
	IfGoto
	Function
	Call
	Return
)

var kindName = []string{
	"push",
	"pop",
	"arithmetic",
	"label",
	"goto",
	"if-goto",
	"function",
	"call",
	"return",
}

func (k Kind) String() string {
	if int(k) < len(kindName) {
		return kindName[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Segment identifies a VM memory segment.
type Segment byte

// All VM memory segments.
const (
	Argument Segment = iota
	Local
	Static
	Constant
	This
	That
	Pointer
	Temp
)

var segmentName = []string{
	"argument",
	"local",
	"static",
	"constant",
	"this",
	"that",
	"pointer",
	"temp",
}

func (s Segment) String() string {
	if int(s) < len(segmentName) {
		return segmentName[s]
	}
	return "Segment(" + strconv.Itoa(int(s)) + ")"
}

// Op identifies an arithmetic or logical VM operation.
type Op byte

// All arithmetic and logical operations.
const (
	Add Op = iota
	Sub
	Neg
	Eq
	Gt
	Lt
	And
	Or
	Not
)

var opName = []string{
	"add",
	"sub",
	"neg",
	"eq",
	"gt",
	"lt",
	"and",
	"or",
	"not",
}

func (o Op) String() string {
	if int(o) < len(opName) {
		return opName[o]
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

// Unary returns true if the operation consumes a single stack operand.
func (o Op) Unary() bool {
	return o == Neg || o == Not
}

// Comparison returns true if the operation pushes a boolean result.
func (o Op) Comparison() bool {
	return o == Eq || o == Gt || o == Lt
}

// A Command is a single parsed VM command. Which fields are meaningful
// depends on the command's Kind:
//
//	Push, Pop         Segment, Index
//	Arithmetic        Op
//	Label, Goto,
//	IfGoto            Name
//	Function          Name, N (number of locals)
//	Call              Name, N (number of arguments)
//	Return            (none)
type Command struct {
	Kind    Kind
	Segment Segment
	Index   int
	Op      Op
	Name    string
	N       int
	Line    int // 1-based source line number
}

// String returns the command in VM source form.
func (c *Command) String() string {
	switch c.Kind {
	case Push, Pop:
		return fmt.Sprintf("%s %s %d", c.Kind, c.Segment, c.Index)
	case Arithmetic:
		return c.Op.String()
	case Label, Goto, IfGoto:
		return fmt.Sprintf("%s %s", c.Kind, c.Name)
	case Function, Call:
		return fmt.Sprintf("%s %s %d", c.Kind, c.Name, c.N)
	case Return:
		return "return"
	default:
		return c.Kind.String()
	}
}
