// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"errors"
	"fmt"
	"strconv"
)

// RAM layout of the Hack platform as seen by translated code.
//
// The scratch registers R13-R15 belong to the emitter. They lie outside the
// pointer (RAM[3..4]) and temp (RAM[5..12]) segments, so no VM program can
// observe or clobber them through a segment access.
const (
	addrSP   = 0
	addrLCL  = 1
	addrARG  = 2
	addrTHIS = 3
	addrTHAT = 4

	tempBase = 5
	tempSize = 8

	scratchFrame  = "R13" // frame pointer while returning
	scratchReturn = "R14" // return address while returning
	scratchAddr   = "R15" // destination address of a dynamic pop

	staticBase  = 16
	staticLimit = 256 // the stack starts here

	stackBase = 256

	maxConstant = 1<<15 - 1
)

// Errors returned by the address resolver.
var (
	ErrInvalidPointerIndex = errors.New("pointer index must be 0 or 1")
	ErrConstantPop         = errors.New("cannot pop to the constant segment")
	ErrSegmentRange        = errors.New("segment index out of range")
)

// A ResolverError describes a segment and index combination that has no
// valid address.
type ResolverError struct {
	Segment Segment
	Index   int
	Err     error
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Segment, e.Index, e.Err)
}

func (e *ResolverError) Unwrap() error {
	return e.Err
}

// PlanKind selects how a segment access is carried out.
type PlanKind byte

const (
	// PlanLiteral loads the plan's value as an immediate.
	PlanLiteral PlanKind = iota

	// PlanStatic accesses a RAM address known at translation time.
	PlanStatic

	// PlanDynamic accesses base register + index, computed at run time.
	PlanDynamic
)

// A Plan describes how to reach the cell named by a segment and index.
type Plan struct {
	Kind  PlanKind
	Value int    // literal (PlanLiteral), address (PlanStatic), or index (PlanDynamic)
	Base  string // base register symbol (PlanDynamic only)
}

// Symbol returns the A-instruction operand that addresses a static plan.
func (p Plan) Symbol() string {
	switch p.Value {
	case addrTHIS:
		return "THIS"
	case addrTHAT:
		return "THAT"
	default:
		return strconv.Itoa(p.Value)
	}
}

var dynamicBase = map[Segment]string{
	Argument: "ARG",
	Local:    "LCL",
	This:     "THIS",
	That:     "THAT",
}

// A Resolver maps segment accesses to addressing plans. Static accesses are
// relative to the current unit's static partition.
type Resolver struct {
	staticOffset int
}

// Resolve returns the addressing plan for a segment and index.
func (r *Resolver) Resolve(seg Segment, index int) (Plan, error) {
	if index < 0 {
		return Plan{}, &ResolverError{seg, index, ErrSegmentRange}
	}

	switch seg {
	case Constant:
		if index > maxConstant {
			return Plan{}, &ResolverError{seg, index, ErrSegmentRange}
		}
		return Plan{Kind: PlanLiteral, Value: index}, nil

	case Pointer:
		if index > 1 {
			return Plan{}, &ResolverError{seg, index, ErrInvalidPointerIndex}
		}
		return Plan{Kind: PlanStatic, Value: addrTHIS + index}, nil

	case Temp:
		if index >= tempSize {
			return Plan{}, &ResolverError{seg, index, ErrSegmentRange}
		}
		return Plan{Kind: PlanStatic, Value: tempBase + index}, nil

	case Static:
		// Compare before adding so a huge index cannot wrap around.
		if index >= staticLimit-staticBase-r.staticOffset {
			return Plan{}, &ResolverError{seg, index, ErrSegmentRange}
		}
		return Plan{Kind: PlanStatic, Value: staticBase + r.staticOffset + index}, nil

	case Argument, Local, This, That:
		if index > maxConstant {
			return Plan{}, &ResolverError{seg, index, ErrSegmentRange}
		}
		return Plan{Kind: PlanDynamic, Value: index, Base: dynamicBase[seg]}, nil
	}

	return Plan{}, &ResolverError{seg, index, ErrInvalidSegment}
}
