// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/cmd"
)

const sysVM = `// entry point
function Sys.init 0
push constant 3
push constant 4
call Main.add 2
pop static 0
label END
goto END
`

const mainVM = `function Main.add 0
push argument 0
push argument 1
add
return
`

func writeProgram(t *testing.T) string {
	dir := filepath.Join(t.TempDir(), "Prog")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, src := range map[string]string{"Sys.vm": sysVM, "Main.vm": mainVM} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runHost(t *testing.T, commands ...string) string {
	var out bytes.Buffer
	h := New(nil)
	h.RunCommands(strings.NewReader(strings.Join(commands, "\n")), &out, false)
	return out.String()
}

func expectOutput(t *testing.T, out string, expected ...string) {
	t.Helper()
	for _, e := range expected {
		if !strings.Contains(out, e) {
			t.Errorf("output missing %q\n%s", e, out)
		}
	}
}

func TestLoadAndRun(t *testing.T) {
	dir := writeProgram(t)
	out := runHost(t,
		"set bootstrap true",
		"load "+dir,
		"breakpoint add Main.add",
		"run",
		"list",
		"run",
		"memory dump 16 1",
		"quit",
	)

	expectOutput(t, out,
		"Setting updated.",
		"Loaded 2 VM file(s) from 'Prog'",
		"Breakpoint hit at",
		">    2  push argument 0",
		"Halted at",
		"   16- 7",
	)
}

func TestTranslateAssembleLoad(t *testing.T) {
	dir := writeProgram(t)
	out := runHost(t,
		"set bootstrap true",
		"translate "+dir,
		"assemble "+filepath.Join(dir, "Prog.asm"),
		"load "+filepath.Join(dir, "Prog.hack"),
		"run",
		"stack",
		"memory dump 16 1",
	)

	expectOutput(t, out,
		"Translated 'Prog' to 'Prog.asm'.",
		"to produce 'Prog.hack' and 'Prog.map'",
		"Loaded 'Prog.map' source map",
		"Loaded 'Prog.vmmap' VM source map",
		"Halted at",
		"   16- 7",
	)
}

func TestStackAndRegisters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Push.vm")
	os.WriteFile(path, []byte("push constant 5\npush constant 9\n"), 0644)

	out := runHost(t,
		"memory set 0 256",
		"load "+path,
		"memory set 0 256",
		"run",
		"stack",
		"registers",
	)

	expectOutput(t, out,
		"Stored 1 word(s) at 0.",
		"  257: 9      9",
		"  256: 5      5",
		"SP=258 LCL=0",
	)
}

func TestCommandErrors(t *testing.T) {
	out := runHost(t,
		"frobnicate",
		"help step",
		"help memory",
		"set maxsteps lots",
		"breakpoint remove 12",
	)

	expectOutput(t, out,
		"Command not found.",
		"Syntax: step [<count>]",
		"Memory commands:",
		"invalid value",
		"No breakpoint was set on 12.",
	)
}

func TestCommandLookup(t *testing.T) {
	tests := []struct {
		line string
		name string
		args int
	}{
		{"breakpoint dis 3", "disable", 1},
		{"b list", "list", 0},
		{"memory d 16 4", "dump", 2},
		{"s 5", "step", 1},
		{"tr foo", "translate", 1},
		{"ba 100", "ba", 1},
	}

	for _, test := range tests {
		s, err := cmds.Lookup(test.line)
		if err != nil {
			t.Errorf("%q: %v", test.line, err)
			continue
		}
		if s.Command.Name != test.name || len(s.Args) != test.args {
			t.Errorf("%q: got %s %v", test.line, s.Command.Name, s.Args)
		}
	}

	if _, err := cmds.Lookup("st"); err != cmd.ErrAmbiguous {
		t.Errorf("got %v, exp %v", err, cmd.ErrAmbiguous)
	}
}

func TestAliases(t *testing.T) {
	out := runHost(t,
		"memory set 16 42",
		"ba 100",
		"bd 100",
		"bl",
		"dba 20 5",
		"dbl",
		"m 16 1",
	)

	expectOutput(t, out,
		"Breakpoint added at 100.",
		"Breakpoint at 100 disabled.",
		"100   false    0",
		"Conditional data breakpoint added at 20 for value 5.",
		"20    true     5       0",
		"   16- 42",
	)
}
