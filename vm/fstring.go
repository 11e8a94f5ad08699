// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

// An fstring is a string that keeps track of its position within the
// source line from which it was read.
type fstring struct {
	row    int    // 1-based line number of substring
	column int    // 0-based column of start of substring
	str    string // the actual substring of interest
}

func newFstring(row int, str string) fstring {
	return fstring{row, 0, str}
}

func (l fstring) consume(n int) fstring {
	col := l.column
	for i := 0; i < n; i++ {
		if l.str[i] == '\t' {
			col += 8 - (col % 8)
		} else {
			col++
		}
	}
	return fstring{l.row, col, l.str[n:]}
}

func (l fstring) trunc(n int) fstring {
	return fstring{l.row, l.column, l.str[:n]}
}

func (l *fstring) isEmpty() bool {
	return len(l.str) == 0
}

func (l *fstring) scanWhile(fn func(c byte) bool) int {
	i := 0
	for ; i < len(l.str) && fn(l.str[i]); i++ {
	}
	return i
}

func (l fstring) consumeWhitespace() fstring {
	return l.consume(l.scanWhile(whitespace))
}

func (l *fstring) consumeWhile(fn func(c byte) bool) (consumed, remain fstring) {
	i := l.scanWhile(fn)
	consumed, remain = l.trunc(i), l.consume(i)
	return
}

// Remove a trailing "//" comment and any whitespace preceding it.
func (l fstring) stripTrailingComment() fstring {
	lastNonWS := 0
	for i := 0; i < len(l.str); i++ {
		if l.str[i] == '/' && i+1 < len(l.str) && l.str[i+1] == '/' {
			break
		}
		if !whitespace(l.str[i]) {
			lastNonWS = i + 1
		}
	}
	return l.trunc(lastNonWS)
}

//
// character helper functions
//

func whitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v'
}

func wordChar(c byte) bool {
	return !whitespace(c)
}

func alpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func decimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func nameStartChar(c byte) bool {
	return alpha(c) || c == '_' || c == '.' || c == ':'
}

func nameChar(c byte) bool {
	return nameStartChar(c) || decimal(c)
}
