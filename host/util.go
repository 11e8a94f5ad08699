// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/term"
)

const defaultWidth = 80

// Parse a word value. Decimal, 0x hexadecimal and negative decimal values
// down to -32768 are accepted.
func parseValue(s string) (uint16, error) {
	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseInt(s, 10, 16)
		return uint16(v), err
	}
	v, err := strconv.ParseUint(s, 0, 16)
	return uint16(v), err
}

// Return the width of the terminal attached to standard output.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 20 {
			return w
		}
	}
	return defaultWidth
}

// Word-wrap text to the terminal width, indenting every line.
func indentWrap(indent int, s string) string {
	width := terminalWidth() - indent
	prefix := strings.Repeat(" ", indent)

	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(s) {
		switch {
		case n == 0:
			b.WriteString(prefix)
		case n+1+len(word) > width:
			b.WriteString("\n")
			b.WriteString(prefix)
			n = 0
		default:
			b.WriteByte(' ')
			n++
		}
		b.WriteString(word)
		n += len(word)
	}
	return b.String()
}

// Write a source map or assembly to a new file.
func writeFile(path string, w io.WriterTo) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = w.WriteTo(file)
	return err
}

// Read a source map or assembly from a file.
func readFile(path string, r io.ReaderFrom) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = r.ReadFrom(file)
	return err
}
