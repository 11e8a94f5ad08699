// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import "strconv"

// Labels allocates the internal labels used by the emitter. Every label
// begins with '$', which VM names cannot, so internal labels never collide
// with user labels or function names. The counter is never reset; create a
// new Labels value for each translation run.
type Labels struct {
	n int
}

// Next returns a fresh branch label.
func (l *Labels) Next() string {
	return l.next("$cmp.")
}

// NextReturn returns a fresh call-site return label.
func (l *Labels) NextReturn() string {
	return l.next("$ret.")
}

// Count returns the number of labels allocated so far.
func (l *Labels) Count() int {
	return l.n
}

func (l *Labels) next(prefix string) string {
	s := prefix + strconv.Itoa(l.n)
	l.n++
	return s
}
