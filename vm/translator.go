// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
)

// Option type used by the Translate function.
type Option uint

// Options for the Translate function.
const (
	Verbose       Option = 1 << iota // verbose output during translation
	Comments                         // emit each VM command as a comment
	Bootstrap                        // emit SP=256 and a call to Sys.init
	Halt                             // end the output with an infinite loop
	SharedStatics                    // all units share one static range
)

// ErrStaticOverflow is returned when the units together use more static
// variables than fit below the stack.
var ErrStaticOverflow = errors.New("static variables exceed available RAM")

// A Unit is one translation unit: the source lines of a single VM file
// and the base name that qualifies its static variables and labels.
type Unit struct {
	Name  string   // base name, e.g. "Main" for Main.vm
	Path  string   // file the lines were read from, if any
	Lines []string // source lines
}

// An Error reports the unit and line on which translation failed.
type Error struct {
	Unit   string // unit path or name
	Line   int    // 1-based line number
	Column int    // 0-based column, when known
	Text   string // source line that failed
	Err    error  // underlying parser or resolver error
}

func (e *Error) Error() string {
	return fmt.Sprintf("Error in '%s' line %d, col %d: %v", e.Unit, e.Line, e.Column+1, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// The translator is a state object used while lowering a set of units
// into a single Hack assembly program.
type translator struct {
	units       []Unit
	commands    [][]*Command // parsed commands, per unit
	statics     []int        // static variables used, per unit
	staticLines []int        // line of the highest static index, per unit
	offsets     []int        // static partition offset, per unit
	sourceLines []SourceLine // VM line mappings
	e           emitter      // the code emitter
	options     Option       // requested options
	w           io.Writer    // destination of the assembly
	out         io.Writer    // output used for verbose output
	verbose     bool         // verbose output
}

// Translate lowers the units into Hack assembly written to w. Verbose
// output goes to out. The assembly is written to w only after every unit
// has been translated, so any error leaves w untouched.
func Translate(units []Unit, w io.Writer, out io.Writer, options Option) (*SourceMap, error) {
	if out == nil {
		out = os.Stdout
	}

	t := &translator{
		units:   units,
		options: options,
		w:       w,
		out:     out,
		verbose: (options & Verbose) != 0,
		e:       emitter{comments: (options & Comments) != 0},
	}

	// Translation consists of the following steps
	steps := []func(t *translator) error{
		(*translator).parse,            // Parse every unit
		(*translator).partitionStatics, // Give each unit its own static range
		(*translator).emitBootstrap,    // Emit the startup sequence
		(*translator).emitCommands,     // Lower every command
		(*translator).emitHalt,         // Emit the trailing halt loop
		(*translator).flush,            // Copy the assembly to the output
	}

	for _, step := range steps {
		if err := step(t); err != nil {
			return nil, err
		}
	}

	files := make([]string, len(units))
	for i, u := range units {
		files[i] = u.displayName()
	}
	return &SourceMap{Files: files, Lines: t.sourceLines}, nil
}

// TranslateString translates a single unit held in a string. It is a
// convenience for tests and interactive use.
func TranslateString(name, source string, w io.Writer, options Option) (*SourceMap, error) {
	u := Unit{Name: name, Lines: strings.Split(source, "\n")}
	return Translate([]Unit{u}, w, io.Discard, options)
}

func (t *translator) parse() error {
	t.logSection("Parsing VM code")

	t.commands = make([][]*Command, len(t.units))
	t.statics = make([]int, len(t.units))
	t.staticLines = make([]int, len(t.units))
	for i, u := range t.units {
		p := NewParser(u.Lines)
		for {
			c, err := p.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return t.error(i, p.Line(), err)
			}
			if (c.Kind == Push || c.Kind == Pop) && c.Segment == Static {
				if c.Index >= staticLimit-staticBase {
					return t.error(i, c.Line, &ResolverError{Static, c.Index, ErrSegmentRange})
				}
				if c.Index >= t.statics[i] {
					t.statics[i] = c.Index + 1
					t.staticLines[i] = c.Line
				}
			}
			t.commands[i] = append(t.commands[i], c)
			t.log("%-12s %-4d | %s", u.Name, c.Line, c)
		}
	}
	return nil
}

func (t *translator) partitionStatics() error {
	t.logSection("Partitioning static variables")

	t.offsets = make([]int, len(t.units))
	if (t.options & SharedStatics) != 0 {
		return nil
	}

	total := 0
	for i := range t.units {
		t.offsets[i] = total
		total += t.statics[i]
		if staticBase+total > staticLimit {
			return t.error(i, t.staticLines[i], ErrStaticOverflow)
		}
	}

	if t.verbose {
		layout := make(map[string][2]int, len(t.units))
		for i, u := range t.units {
			layout[u.Name] = [2]int{staticBase + t.offsets[i], t.statics[i]}
		}
		pp.Fprintf(t.out, "%v\n", layout)
	}
	return nil
}

func (t *translator) emitBootstrap() error {
	if (t.options & Bootstrap) != 0 {
		t.logSection("Emitting bootstrap")
		t.e.bootstrap()
	}
	return nil
}

func (t *translator) emitCommands() error {
	t.logSection("Emitting commands")

	for i, u := range t.units {
		t.e.setUnit(u.Name, t.offsets[i])
		for _, c := range t.commands[i] {
			addr := t.e.pc
			if err := t.e.command(c); err != nil {
				return t.error(i, c.Line, err)
			}
			if t.e.pc > addr {
				t.sourceLines = append(t.sourceLines, SourceLine{
					Address:   addr,
					FileIndex: i,
					Line:      c.Line,
				})
			}
			t.log("%04X  %-24s Len:%d", addr, c, t.e.pc-addr)
		}
	}
	return nil
}

func (t *translator) emitHalt() error {
	if (t.options & Halt) != 0 {
		t.e.halt()
	}
	return nil
}

func (t *translator) flush() error {
	t.log("%d instructions, %d internal labels", t.e.pc, t.e.labels.Count())
	_, err := t.e.w.WriteTo(t.w)
	return err
}

// Wrap an error with the unit and line on which it occurred.
func (t *translator) error(unit, line int, err error) *Error {
	u := t.units[unit]
	e := &Error{Unit: u.displayName(), Line: line, Err: err}
	if line > 0 && line <= len(u.Lines) {
		e.Text = u.Lines[line-1]
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		e.Column = pe.Column
	}
	if t.verbose {
		fmt.Fprintln(t.out, e)
		fmt.Fprintln(t.out, e.Text)
		fmt.Fprintln(t.out, strings.Repeat("-", e.Column)+"^")
	}
	return e
}

// In verbose mode, log a string to the output.
func (t *translator) log(format string, args ...any) {
	if t.verbose {
		fmt.Fprintf(t.out, format, args...)
		fmt.Fprintf(t.out, "\n")
	}
}

// In verbose mode, log a section header to the output.
func (t *translator) logSection(name string) {
	if t.verbose {
		fmt.Fprintln(t.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(t.out, "-- %s --\n", name)
		fmt.Fprintln(t.out, strings.Repeat("-", len(name)+6))
	}
}

func (u *Unit) displayName() string {
	if u.Path != "" {
		return u.Path
	}
	return u.Name + ".vm"
}
