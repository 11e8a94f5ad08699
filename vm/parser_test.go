// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"errors"
	"io"
	"testing"
)

func checkParse(t *testing.T, line string, expected string) {
	t.Helper()
	c, err := ParseLine(line)
	if err != nil {
		t.Errorf("%q: unexpected error: %v", line, err)
		return
	}
	if c == nil {
		t.Errorf("%q: expected a command, got none", line)
		return
	}
	if c.String() != expected {
		t.Errorf("%q: got %q, exp %q", line, c.String(), expected)
	}
}

func checkParseError(t *testing.T, line string, expected error, column int) {
	t.Helper()
	_, err := ParseLine(line)
	if err == nil {
		t.Errorf("%q: expected error, didn't get one", line)
		return
	}
	if !errors.Is(err, expected) {
		t.Errorf("%q: got %v, exp %v", line, err, expected)
	}
	var pe *ParseError
	if errors.As(err, &pe) && pe.Column != column {
		t.Errorf("%q: got column %d, exp %d", line, pe.Column, column)
	}
}

func TestParseCommands(t *testing.T) {
	checkParse(t, "push constant 7", "push constant 7")
	checkParse(t, "  pop   local 2   // store", "pop local 2")
	checkParse(t, "\tpush that 5", "push that 5")
	checkParse(t, "add", "add")
	checkParse(t, "not // negate", "not")
	checkParse(t, "label LOOP_START", "label LOOP_START")
	checkParse(t, "goto END", "goto END")
	checkParse(t, "if-goto Main.loop:1", "if-goto Main.loop:1")
	checkParse(t, "function Main.fib 2", "function Main.fib 2")
	checkParse(t, "call Math.multiply 2", "call Math.multiply 2")
	checkParse(t, "return", "return")
	checkParse(t, "push constant 001", "push constant 1")
}

func TestParseFields(t *testing.T) {
	c, err := ParseLine("push static 3")
	if err != nil {
		t.Fatal(err)
	}
	if c.Kind != Push || c.Segment != Static || c.Index != 3 {
		t.Errorf("got %+v", c)
	}

	c, err = ParseLine("gt")
	if err != nil {
		t.Fatal(err)
	}
	if c.Kind != Arithmetic || c.Op != Gt {
		t.Errorf("got %+v", c)
	}
}

func TestParseBlank(t *testing.T) {
	for _, line := range []string{"", "   ", "// comment only", "\t// x", "\r"} {
		c, err := ParseLine(line)
		if c != nil || err != nil {
			t.Errorf("%q: got %v, %v, exp nil, nil", line, c, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	checkParseError(t, "pusj constant 1", ErrUnknownCommand, 0)
	checkParseError(t, "Push constant 1", ErrUnknownCommand, 0)
	checkParseError(t, "push", ErrArity, 0)
	checkParseError(t, "push constant", ErrArity, 0)
	checkParseError(t, "push constant 1 2", ErrArity, 16)
	checkParseError(t, "add 1", ErrArity, 4)
	checkParseError(t, "return 0", ErrArity, 7)
	checkParseError(t, "push stack 1", ErrInvalidSegment, 5)
	checkParseError(t, "push constant -1", ErrInvalidIndex, 14)
	checkParseError(t, "push constant x", ErrInvalidIndex, 14)
	checkParseError(t, "function Main.f n", ErrInvalidIndex, 16)
	checkParseError(t, "label 1abc", ErrInvalidName, 6)
	checkParseError(t, "goto $halt", ErrInvalidName, 5)
	checkParseError(t, "call f@g 0", ErrInvalidName, 5)
}

func TestParserLines(t *testing.T) {
	p := NewParser([]string{
		"// header",
		"push constant 1",
		"",
		"push constant 2 // second",
		"add",
	})

	var got []int
	for {
		c, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, c.Line)
		if c.Line != p.Line() {
			t.Errorf("command line %d, parser line %d", c.Line, p.Line())
		}
	}

	exp := []int{2, 4, 5}
	if len(got) != len(exp) {
		t.Fatalf("got lines %v, exp %v", got, exp)
	}
	for i := range exp {
		if got[i] != exp[i] {
			t.Errorf("got lines %v, exp %v", got, exp)
		}
	}
}
