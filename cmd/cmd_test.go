// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var b bytes.Buffer
	rootCmd.SetOut(&b)
	rootCmd.SetErr(&b)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, b.String())
	}
	return b.String()
}

func expectOutput(t *testing.T, out string, expected ...string) {
	t.Helper()
	for _, e := range expected {
		if !strings.Contains(out, e) {
			t.Errorf("output missing %q:\n%s", e, out)
		}
	}
}

func TestCommandLine(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Prog")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	sys := "function Sys.init 0\npush constant 2\npush constant 3\nadd\npop static 0\nlabel END\ngoto END\n"
	if err := os.WriteFile(filepath.Join(dir, "Sys.vm"), []byte(sys), 0644); err != nil {
		t.Fatal(err)
	}

	out := execute(t, "translate", "--bootstrap", "--map", dir)
	expectOutput(t, out, "Translated")
	for _, name := range []string{"Prog.asm", "Prog.vmmap"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written", name)
		}
	}

	out = execute(t, "assemble", filepath.Join(dir, "Prog.asm"))
	expectOutput(t, out, "Assembled 'Prog.asm' to produce 'Prog.hack' and 'Prog.map'.")

	out = execute(t, "run", "--dump", "16", "--words", "1", filepath.Join(dir, "Prog.hack"))
	expectOutput(t, out, "Halted at", "SP=261", "RAM[16] = 5")

	out = execute(t, "run", "--bootstrap", dir)
	expectOutput(t, out, "Halted at", "RAM[16] = 5")

	env := filepath.Join(t.TempDir(), "hackvm.env")
	if err := os.WriteFile(env, []byte("HACKVM_MAX_STEPS=10\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out = execute(t, "run", "--config", env, filepath.Join(dir, "Prog.hack"))
	expectOutput(t, out, "step limit 10 reached")
}
