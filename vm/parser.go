// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Errors returned by the command parser.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArity          = errors.New("wrong number of arguments")
	ErrInvalidSegment = errors.New("invalid segment")
	ErrInvalidIndex   = errors.New("invalid index")
	ErrInvalidName    = errors.New("invalid name")
)

// A ParseError describes a syntax error in a single VM source line.
type ParseError struct {
	Column int    // 0-based column of the offending token
	Token  string // the offending token
	Err    error  // one of the parser's Err* values
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v '%s'", e.Err, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var commandKinds = map[string]Kind{
	"push":     Push,
	"pop":      Pop,
	"label":    Label,
	"goto":     Goto,
	"if-goto":  IfGoto,
	"function": Function,
	"call":     Call,
	"return":   Return,
}

var ops = map[string]Op{
	"add": Add,
	"sub": Sub,
	"neg": Neg,
	"eq":  Eq,
	"gt":  Gt,
	"lt":  Lt,
	"and": And,
	"or":  Or,
	"not": Not,
}

var segments = map[string]Segment{
	"argument": Argument,
	"local":    Local,
	"static":   Static,
	"constant": Constant,
	"this":     This,
	"that":     That,
	"pointer":  Pointer,
	"temp":     Temp,
}

// A Parser reads VM commands from a unit's source lines. Its only state
// is the read cursor.
type Parser struct {
	lines []string
	row   int
}

// NewParser creates a parser over the source lines of a unit.
func NewParser(lines []string) *Parser {
	return &Parser{lines: lines}
}

// Line returns the 1-based number of the last line read.
func (p *Parser) Line() int {
	return p.row
}

// Next returns the next command, skipping blank and comment-only lines. It
// returns io.EOF when all lines have been read.
func (p *Parser) Next() (*Command, error) {
	for p.row < len(p.lines) {
		p.row++
		c, err := parseLine(newFstring(p.row, p.lines[p.row-1]))
		if err != nil || c != nil {
			return c, err
		}
	}
	return nil, io.EOF
}

// ParseLine parses a single line of VM source. Blank and comment-only
// lines produce a nil command and a nil error.
func ParseLine(line string) (*Command, error) {
	return parseLine(newFstring(1, line))
}

func parseLine(line fstring) (*Command, error) {
	line = line.stripTrailingComment().consumeWhitespace()
	if line.isEmpty() {
		return nil, nil
	}

	var tokens []fstring
	for !line.isEmpty() {
		var tok fstring
		tok, line = line.consumeWhile(wordChar)
		tokens = append(tokens, tok)
		line = line.consumeWhitespace()
	}

	head, args := tokens[0], tokens[1:]
	c := &Command{Line: head.row}

	if op, ok := ops[head.str]; ok {
		if err := checkArity(head, args, 0); err != nil {
			return nil, err
		}
		c.Kind, c.Op = Arithmetic, op
		return c, nil
	}

	kind, ok := commandKinds[head.str]
	if !ok {
		return nil, &ParseError{Column: head.column, Token: head.str, Err: ErrUnknownCommand}
	}
	c.Kind = kind

	switch kind {
	case Push, Pop:
		if err := checkArity(head, args, 2); err != nil {
			return nil, err
		}
		seg, ok := segments[args[0].str]
		if !ok {
			return nil, &ParseError{Column: args[0].column, Token: args[0].str, Err: ErrInvalidSegment}
		}
		index, err := parseNumber(args[1])
		if err != nil {
			return nil, err
		}
		c.Segment, c.Index = seg, index

	case Label, Goto, IfGoto:
		if err := checkArity(head, args, 1); err != nil {
			return nil, err
		}
		name, err := parseName(args[0])
		if err != nil {
			return nil, err
		}
		c.Name = name

	case Function, Call:
		if err := checkArity(head, args, 2); err != nil {
			return nil, err
		}
		name, err := parseName(args[0])
		if err != nil {
			return nil, err
		}
		n, err := parseNumber(args[1])
		if err != nil {
			return nil, err
		}
		c.Name, c.N = name, n

	case Return:
		if err := checkArity(head, args, 0); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Report an arity error on the first surplus argument, or on the command
// itself when arguments are missing.
func checkArity(head fstring, args []fstring, n int) error {
	switch {
	case len(args) > n:
		return &ParseError{Column: args[n].column, Token: args[n].str, Err: ErrArity}
	case len(args) < n:
		return &ParseError{Column: head.column, Token: head.str, Err: ErrArity}
	}
	return nil
}

func parseNumber(tok fstring) (int, error) {
	if tok.isEmpty() || tok.scanWhile(decimal) != len(tok.str) {
		return 0, &ParseError{Column: tok.column, Token: tok.str, Err: ErrInvalidIndex}
	}
	v, err := strconv.Atoi(tok.str)
	if err != nil {
		return 0, &ParseError{Column: tok.column, Token: tok.str, Err: ErrInvalidIndex}
	}
	return v, nil
}

func parseName(tok fstring) (string, error) {
	if tok.isEmpty() || !nameStartChar(tok.str[0]) || tok.scanWhile(nameChar) != len(tok.str) {
		return "", &ParseError{Column: tok.column, Token: tok.str, Err: ErrInvalidName}
	}
	return tok.str, nil
}
