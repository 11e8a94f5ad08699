// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "strings"

// Bit layout of a Hack instruction word.
//
//	A-instruction: 0vvv vvvv vvvv vvvv
//	C-instruction: 111a cccc ccdd djjj
const (
	CInstruction uint16 = 0xe000 // the three leading bits of a C-instruction
	ABit         uint16 = 0x1000 // comp reads M instead of A
	CompMask     uint16 = 0x1fc0 // a bit and the six ALU control bits
	DestMask     uint16 = 0x0038
	JumpMask     uint16 = 0x0007
	MaxAddress   uint16 = 0x7fff // largest A-instruction value

	CompShift = 6
	DestShift = 3
)

// Destination bits.
const (
	DestM uint16 = 1 << iota
	DestD
	DestA
)

// Jump bits.
const (
	JumpGT uint16 = 1 << iota
	JumpEQ
	JumpLT
)

// A Comp describes one ALU computation and its 7-bit encoding (the a bit
// followed by zx nx zy ny f no).
type Comp struct {
	Name string
	Bits uint16
}

// The canonical computations with A as the second operand. The M forms
// are derived by setting the a bit.
var aComps = []Comp{
	{"0", 0x2a},
	{"1", 0x3f},
	{"-1", 0x3a},
	{"D", 0x0c},
	{"A", 0x30},
	{"!D", 0x0d},
	{"!A", 0x31},
	{"-D", 0x0f},
	{"-A", 0x33},
	{"D+1", 0x1f},
	{"A+1", 0x37},
	{"D-1", 0x0e},
	{"A-1", 0x32},
	{"D+A", 0x02},
	{"D-A", 0x13},
	{"A-D", 0x07},
	{"D&A", 0x00},
	{"D|A", 0x15},
}

// Accepted spellings of commutative computations.
var compAliases = map[string]string{
	"A+D": "D+A",
	"A&D": "D&A",
	"A|D": "D|A",
	"1+D": "D+1",
	"1+A": "A+1",
}

var (
	compCodes = make(map[string]uint16)
	compNames = make(map[uint16]string)
)

var jumpNames = []string{"", "JGT", "JEQ", "JGE", "JLT", "JNE", "JLE", "JMP"}

func init() {
	for _, c := range aComps {
		compCodes[c.Name] = c.Bits
		compNames[c.Bits] = c.Name
		if strings.ContainsRune(c.Name, 'A') {
			m := strings.ReplaceAll(c.Name, "A", "M")
			compCodes[m] = c.Bits | ABit>>CompShift
			compNames[c.Bits|ABit>>CompShift] = m
		}
	}
	for alias, name := range compAliases {
		compCodes[alias] = compCodes[name]
		if strings.ContainsRune(alias, 'A') {
			compCodes[strings.ReplaceAll(alias, "A", "M")] = compCodes[strings.ReplaceAll(name, "A", "M")]
		}
	}
}

// CompCode returns the 7-bit encoding of a computation mnemonic.
func CompCode(mnemonic string) (uint16, bool) {
	bits, ok := compCodes[mnemonic]
	return bits, ok
}

// CompName returns the canonical mnemonic of a 7-bit computation encoding.
func CompName(bits uint16) (string, bool) {
	name, ok := compNames[bits]
	return name, ok
}

// DestCode returns the 3-bit encoding of a destination mnemonic. The
// letters A, D and M may appear in any order, each at most once.
func DestCode(mnemonic string) (uint16, bool) {
	var bits uint16
	for i := 0; i < len(mnemonic); i++ {
		var b uint16
		switch mnemonic[i] {
		case 'A':
			b = DestA
		case 'D':
			b = DestD
		case 'M':
			b = DestM
		default:
			return 0, false
		}
		if bits&b != 0 {
			return 0, false
		}
		bits |= b
	}
	return bits, true
}

// DestName returns the mnemonic of a 3-bit destination encoding.
func DestName(bits uint16) string {
	var b strings.Builder
	if bits&DestA != 0 {
		b.WriteByte('A')
	}
	if bits&DestM != 0 {
		b.WriteByte('M')
	}
	if bits&DestD != 0 {
		b.WriteByte('D')
	}
	return b.String()
}

// JumpCode returns the 3-bit encoding of a jump mnemonic.
func JumpCode(mnemonic string) (uint16, bool) {
	for i, name := range jumpNames {
		if i > 0 && name == mnemonic {
			return uint16(i), true
		}
	}
	return 0, false
}

// JumpName returns the mnemonic of a 3-bit jump encoding.
func JumpName(bits uint16) string {
	return jumpNames[bits&JumpMask]
}

// An Instruction is a decoded Hack instruction word.
type Instruction struct {
	Word  uint16
	IsC   bool   // C-instruction if true, A-instruction otherwise
	Value uint16 // A-instruction value
	Comp  uint16 // 7-bit computation
	Dest  uint16 // 3-bit destination
	Jump  uint16 // 3-bit jump condition
}

// Decode splits an instruction word into its fields.
func Decode(w uint16) Instruction {
	if w&0x8000 == 0 {
		return Instruction{Word: w, Value: w}
	}
	return Instruction{
		Word: w,
		IsC:  true,
		Comp: (w & CompMask) >> CompShift,
		Dest: (w & DestMask) >> DestShift,
		Jump: w & JumpMask,
	}
}

// Encode assembles a C-instruction word from its fields.
func Encode(comp, dest, jump uint16) uint16 {
	return CInstruction | comp<<CompShift | dest<<DestShift | jump
}

// ALU computes the Hack ALU function selected by the six low bits of comp
// on inputs x and y.
func ALU(comp uint16, x, y uint16) uint16 {
	if comp&0x20 != 0 { // zx
		x = 0
	}
	if comp&0x10 != 0 { // nx
		x = ^x
	}
	if comp&0x08 != 0 { // zy
		y = 0
	}
	if comp&0x04 != 0 { // ny
		y = ^y
	}
	var out uint16
	if comp&0x02 != 0 { // f
		out = x + y
	} else {
		out = x & y
	}
	if comp&0x01 != 0 { // no
		out = ^out
	}
	return out
}

// Jumps reports whether the jump condition holds for an ALU output.
func Jumps(jump uint16, out uint16) bool {
	v := int16(out)
	return (jump&JumpLT != 0 && v < 0) ||
		(jump&JumpEQ != 0 && v == 0) ||
		(jump&JumpGT != 0 && v > 0)
}
