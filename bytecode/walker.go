// Copyright 2018 The Jnm Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bytecode

import (
	"encoding/binary"
	"fmt"
)

// Operand is one decoded operand with its info kind.
type Operand struct {
	Kind  byte
	Value int64
}

// Instruction is one decoded instruction. For tableswitch the operands are
// default, low, high, then the jump offsets; for lookupswitch they are
// default, npairs, then (match, offset) pairs. Branch offsets are relative
// to the pc of the opcode. For wide-prefixed instructions, Opcode and
// Mnemonic describe the inner instruction and Wide is set.
type Instruction struct {
	PC       int
	Opcode   byte
	Mnemonic string
	Wide     bool
	Operands []Operand
}

// Walk enumerates the instructions of code in order, calling fn for each.
// It fails with ErrBadBytecode on unknown opcodes, malformed switch
// payloads, or a stream that does not end exactly at the code length.
func Walk(code []byte, fn func(Instruction) error) error {
	pc := 0
	for pc < len(code) {
		ins, next, err := decode(code, pc)
		if err != nil {
			return err
		}
		if err := fn(ins); err != nil {
			return err
		}
		pc = next
	}
	return nil
}

func decode(code []byte, pc int) (Instruction, int, error) {
	opcode := code[pc]
	op, err := Lookup(opcode)
	if err != nil {
		return Instruction{}, 0, fmt.Errorf("pc %d: %w", pc, err)
	}
	ins := Instruction{PC: pc, Opcode: opcode, Mnemonic: op.Mnemonic}
	switch opcode {
	case OpTableswitch:
		return decodeTableswitch(code, pc, ins)
	case OpLookupswitch:
		return decodeLookupswitch(code, pc, ins)
	case OpWide:
		return decodeWide(code, pc, ins)
	}
	pos := pc + 1
	for _, a := range op.Args {
		v, next, err := readOperand(code, pos, a)
		if err != nil {
			return Instruction{}, 0, fmt.Errorf("pc %d (%s): %w", pc, op.Mnemonic, err)
		}
		pos = next
		if a.Kind == KindZero {
			continue
		}
		ins.Operands = append(ins.Operands, Operand{Kind: a.Kind, Value: v})
	}
	return ins, pos, nil
}

func readOperand(code []byte, pos int, a Arg) (int64, int, error) {
	if pos+a.Width > len(code) {
		return 0, 0, fmt.Errorf("%w: operand runs past end of code", ErrBadBytecode)
	}
	var v int64
	switch a.Width {
	case 1:
		if a.Signed {
			v = int64(int8(code[pos]))
		} else {
			v = int64(code[pos])
		}
	case 2:
		u := binary.BigEndian.Uint16(code[pos:])
		if a.Signed {
			v = int64(int16(u))
		} else {
			v = int64(u)
		}
	case 4:
		u := binary.BigEndian.Uint32(code[pos:])
		if a.Signed {
			v = int64(int32(u))
		} else {
			v = int64(u)
		}
	}
	return v, pos + a.Width, nil
}

// switchPad consumes the 0-3 zero bytes that align a switch payload to a
// 4-byte boundary relative to the start of the code buffer.
func switchPad(code []byte, pc int) (int, error) {
	pos := pc + 1
	pad := (4 - pos%4) % 4
	if pos+pad > len(code) {
		return 0, fmt.Errorf("%w: switch padding runs past end of code", ErrBadBytecode)
	}
	for i := 0; i < pad; i++ {
		if code[pos+i] != 0 {
			return 0, fmt.Errorf("%w: nonzero switch padding byte at pc %d", ErrBadBytecode, pos+i)
		}
	}
	return pos + pad, nil
}

func readS32(code []byte, pos int) (int64, int, error) {
	if pos+4 > len(code) {
		return 0, 0, fmt.Errorf("%w: switch payload runs past end of code", ErrBadBytecode)
	}
	return int64(int32(binary.BigEndian.Uint32(code[pos:]))), pos + 4, nil
}

func decodeTableswitch(code []byte, pc int, ins Instruction) (Instruction, int, error) {
	pos, err := switchPad(code, pc)
	if err != nil {
		return Instruction{}, 0, err
	}
	def, pos, err := readS32(code, pos)
	if err != nil {
		return Instruction{}, 0, err
	}
	low, pos, err := readS32(code, pos)
	if err != nil {
		return Instruction{}, 0, err
	}
	high, pos, err := readS32(code, pos)
	if err != nil {
		return Instruction{}, 0, err
	}
	if high < low {
		return Instruction{}, 0, fmt.Errorf("%w: tableswitch high %d < low %d", ErrBadBytecode, high, low)
	}
	ins.Operands = append(ins.Operands,
		Operand{Kind: KindOffset, Value: def},
		Operand{Kind: KindLiteral, Value: low},
		Operand{Kind: KindLiteral, Value: high})
	for i := int64(0); i < high-low+1; i++ {
		var off int64
		if off, pos, err = readS32(code, pos); err != nil {
			return Instruction{}, 0, err
		}
		ins.Operands = append(ins.Operands, Operand{Kind: KindOffset, Value: off})
	}
	return ins, pos, nil
}

func decodeLookupswitch(code []byte, pc int, ins Instruction) (Instruction, int, error) {
	pos, err := switchPad(code, pc)
	if err != nil {
		return Instruction{}, 0, err
	}
	def, pos, err := readS32(code, pos)
	if err != nil {
		return Instruction{}, 0, err
	}
	npairs, pos, err := readS32(code, pos)
	if err != nil {
		return Instruction{}, 0, err
	}
	if npairs < 0 {
		return Instruction{}, 0, fmt.Errorf("%w: lookupswitch npairs %d", ErrBadBytecode, npairs)
	}
	ins.Operands = append(ins.Operands,
		Operand{Kind: KindOffset, Value: def},
		Operand{Kind: KindLiteral, Value: npairs})
	for i := int64(0); i < npairs; i++ {
		var match, off int64
		if match, pos, err = readS32(code, pos); err != nil {
			return Instruction{}, 0, err
		}
		if off, pos, err = readS32(code, pos); err != nil {
			return Instruction{}, 0, err
		}
		ins.Operands = append(ins.Operands,
			Operand{Kind: KindLiteral, Value: match},
			Operand{Kind: KindOffset, Value: off})
	}
	return ins, pos, nil
}

func decodeWide(code []byte, pc int, ins Instruction) (Instruction, int, error) {
	if pc+1 >= len(code) {
		return Instruction{}, 0, fmt.Errorf("%w: wide at end of code", ErrBadBytecode)
	}
	inner := code[pc+1]
	op, err := Lookup(inner)
	if err != nil {
		return Instruction{}, 0, fmt.Errorf("pc %d: wide prefix: %w", pc, err)
	}
	// wide applies to the local-variable instructions and iinc only.
	widenable := inner == OpIinc
	for _, a := range op.Args {
		if a.Kind == KindLocal {
			widenable = true
		}
	}
	if !widenable || op.Variable {
		return Instruction{}, 0, fmt.Errorf("%w: wide cannot prefix %s", ErrBadBytecode, op.Mnemonic)
	}
	ins.Opcode = inner
	ins.Mnemonic = op.Mnemonic
	ins.Wide = true
	pos := pc + 2
	idx, pos, err := readOperand(code, pos, Arg{Kind: KindLocal, Width: 2})
	if err != nil {
		return Instruction{}, 0, err
	}
	ins.Operands = append(ins.Operands, Operand{Kind: KindLocal, Value: idx})
	if inner == OpIinc {
		c, next, err := readOperand(code, pos, Arg{Kind: KindLiteral, Width: 2, Signed: true})
		if err != nil {
			return Instruction{}, 0, err
		}
		pos = next
		ins.Operands = append(ins.Operands, Operand{Kind: KindLiteral, Value: c})
	}
	return ins, pos, nil
}
