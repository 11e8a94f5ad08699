// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"errors"
	"math"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		seg    Segment
		index  int
		offset int
		plan   Plan
	}{
		{Constant, 0, 0, Plan{Kind: PlanLiteral, Value: 0}},
		{Constant, 32767, 0, Plan{Kind: PlanLiteral, Value: 32767}},
		{Local, 4, 0, Plan{Kind: PlanDynamic, Value: 4, Base: "LCL"}},
		{Argument, 1, 0, Plan{Kind: PlanDynamic, Value: 1, Base: "ARG"}},
		{This, 2, 0, Plan{Kind: PlanDynamic, Value: 2, Base: "THIS"}},
		{That, 0, 0, Plan{Kind: PlanDynamic, Value: 0, Base: "THAT"}},
		{Pointer, 0, 0, Plan{Kind: PlanStatic, Value: 3}},
		{Pointer, 1, 0, Plan{Kind: PlanStatic, Value: 4}},
		{Temp, 0, 0, Plan{Kind: PlanStatic, Value: 5}},
		{Temp, 7, 0, Plan{Kind: PlanStatic, Value: 12}},
		{Static, 0, 0, Plan{Kind: PlanStatic, Value: 16}},
		{Static, 2, 10, Plan{Kind: PlanStatic, Value: 28}},
		{Static, 239, 0, Plan{Kind: PlanStatic, Value: 255}},
	}

	for _, test := range tests {
		r := Resolver{staticOffset: test.offset}
		plan, err := r.Resolve(test.seg, test.index)
		if err != nil {
			t.Errorf("%s %d: unexpected error %v", test.seg, test.index, err)
			continue
		}
		if plan != test.plan {
			t.Errorf("%s %d: got %+v, exp %+v", test.seg, test.index, plan, test.plan)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		seg   Segment
		index int
		err   error
	}{
		{Pointer, 2, ErrInvalidPointerIndex},
		{Temp, 8, ErrSegmentRange},
		{Constant, 32768, ErrSegmentRange},
		{Static, 240, ErrSegmentRange},
		{Static, math.MaxInt, ErrSegmentRange},
		{Local, -1, ErrSegmentRange},
		{Local, 40000, ErrSegmentRange},
		{That, math.MaxInt, ErrSegmentRange},
	}

	for _, test := range tests {
		var r Resolver
		_, err := r.Resolve(test.seg, test.index)
		if !errors.Is(err, test.err) {
			t.Errorf("%s %d: got %v, exp %v", test.seg, test.index, err, test.err)
		}
	}

	// The last static address depends on the unit's partition.
	r := Resolver{staticOffset: 200}
	if _, err := r.Resolve(Static, 39); err != nil {
		t.Errorf("static 39 at offset 200: %v", err)
	}
	if _, err := r.Resolve(Static, 40); !errors.Is(err, ErrSegmentRange) {
		t.Errorf("static 40 at offset 200: got %v, exp %v", err, ErrSegmentRange)
	}
}

func TestPlanSymbol(t *testing.T) {
	if s := (Plan{Kind: PlanStatic, Value: 3}).Symbol(); s != "THIS" {
		t.Errorf("got %s, exp THIS", s)
	}
	if s := (Plan{Kind: PlanStatic, Value: 4}).Symbol(); s != "THAT" {
		t.Errorf("got %s, exp THAT", s)
	}
	if s := (Plan{Kind: PlanStatic, Value: 7}).Symbol(); s != "7" {
		t.Errorf("got %s, exp 7", s)
	}
}

func TestLabels(t *testing.T) {
	var l Labels
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		for _, s := range []string{l.Next(), l.NextReturn()} {
			if seen[s] {
				t.Fatalf("label %s allocated twice", s)
			}
			if s[0] != '$' {
				t.Fatalf("label %s does not start with '$'", s)
			}
			seen[s] = true
		}
	}
	if l.Count() != 100 {
		t.Errorf("got count %d, exp 100", l.Count())
	}
}
