// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"io"
	"strings"
	"testing"

	"github.com/yosakax/nand2tetris/asm"
)

func TestDisassemble(t *testing.T) {
	lines := []string{
		"@0",
		"@32767",
		"D=A",
		"AM=M-1",
		"MD=M+1",
		"D;JNE",
		"0;JMP",
		"M=D|M",
		"D=M-D",
		"AMD=-1",
		"D;JLE",
	}

	assembly, _, err := asm.Assemble(strings.NewReader(strings.Join(lines, "\n")), "test", io.Discard, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i, w := range assembly.Code {
		if got := Disassemble(w); got != lines[i] {
			t.Errorf("word %04X: got %q, exp %q", w, got, lines[i])
		}
	}
}

func TestDisassembleUnknownComp(t *testing.T) {
	// a=1 with the bits of "D" has no mnemonic.
	if got := Disassemble(0xf308); got != "M=?1001100" {
		t.Errorf("got %q", got)
	}
}
