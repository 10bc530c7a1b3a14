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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func walkAll(t *testing.T, code []byte) []Instruction {
	t.Helper()
	var out []Instruction
	if err := Walk(code, func(ins Instruction) error {
		out = append(out, ins)
		return nil
	}); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	return out
}

func TestWalkStraightLine(t *testing.T) {
	code := []byte{
		0x10, 0x2A, // bipush 42
		0x3B,       // istore_0
		0x84, 0x00, 0xFF, // iinc 0, -1
		0xA7, 0xFF, 0xFA, // goto -6
	}
	got := walkAll(t, code)
	want := []Instruction{
		{PC: 0, Opcode: 16, Mnemonic: "bipush", Operands: []Operand{{Kind: KindLiteral, Value: 42}}},
		{PC: 2, Opcode: 59, Mnemonic: "istore_0"},
		{PC: 3, Opcode: 132, Mnemonic: "iinc", Operands: []Operand{
			{Kind: KindLocal, Value: 0}, {Kind: KindLiteral, Value: -1},
		}},
		{PC: 6, Opcode: 167, Mnemonic: "goto", Operands: []Operand{{Kind: KindOffset, Value: -6}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk diff (-want +got):\n%s", diff)
	}
}

func TestWalkTableswitch(t *testing.T) {
	// tableswitch at pc 0: 3 pad bytes, default 16, low 0, high 1,
	// offsets 8 and 12. The instruction ends at pc 24.
	code := []byte{
		0xAA, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x10,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x00, 0x00, 0x0C,
	}
	got := walkAll(t, code)
	want := []Instruction{{
		PC: 0, Opcode: 170, Mnemonic: "tableswitch",
		Operands: []Operand{
			{Kind: KindOffset, Value: 16},
			{Kind: KindLiteral, Value: 0},
			{Kind: KindLiteral, Value: 1},
			{Kind: KindOffset, Value: 8},
			{Kind: KindOffset, Value: 12},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk diff (-want +got):\n%s", diff)
	}
}

func TestWalkSwitchAlignment(t *testing.T) {
	// At pc 3 the opcode is followed directly by the payload: (3+1)%4 == 0.
	code := []byte{
		0x00, 0x00, 0x00, // nops
		0xAA,
		0x00, 0x00, 0x00, 0x08, // default 8
		0x00, 0x00, 0x00, 0x05, // low 5
		0x00, 0x00, 0x00, 0x05, // high 5
		0x00, 0x00, 0x00, 0x08, // one offset
	}
	got := walkAll(t, code)
	if len(got) != 4 {
		t.Fatalf("walked %d instructions, want 4", len(got))
	}
	ts := got[3]
	if ts.PC != 3 || ts.Mnemonic != "tableswitch" {
		t.Fatalf("instruction 3 = %+v", ts)
	}
	want := []Operand{
		{Kind: KindOffset, Value: 8},
		{Kind: KindLiteral, Value: 5},
		{Kind: KindLiteral, Value: 5},
		{Kind: KindOffset, Value: 8},
	}
	if diff := cmp.Diff(want, ts.Operands); diff != "" {
		t.Errorf("operands diff (-want +got):\n%s", diff)
	}
}

func TestWalkLookupswitch(t *testing.T) {
	code := []byte{
		0xAB, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x1C, // default 28
		0x00, 0x00, 0x00, 0x02, // npairs 2
		0xFF, 0xFF, 0xFF, 0xFF, // match -1
		0x00, 0x00, 0x00, 0x14, // offset 20
		0x00, 0x00, 0x00, 0x63, // match 99
		0x00, 0x00, 0x00, 0x18, // offset 24
	}
	got := walkAll(t, code)
	want := []Instruction{{
		PC: 0, Opcode: 171, Mnemonic: "lookupswitch",
		Operands: []Operand{
			{Kind: KindOffset, Value: 28},
			{Kind: KindLiteral, Value: 2},
			{Kind: KindLiteral, Value: -1},
			{Kind: KindOffset, Value: 20},
			{Kind: KindLiteral, Value: 99},
			{Kind: KindOffset, Value: 24},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk diff (-want +got):\n%s", diff)
	}
}

func TestWalkWide(t *testing.T) {
	code := []byte{
		0xC4, 0x15, 0x01, 0x00, // wide iload 256
		0xC4, 0x84, 0x01, 0x00, 0xFF, 0x9C, // wide iinc 256, -100
	}
	got := walkAll(t, code)
	want := []Instruction{
		{PC: 0, Opcode: 21, Mnemonic: "iload", Wide: true,
			Operands: []Operand{{Kind: KindLocal, Value: 256}}},
		{PC: 4, Opcode: 132, Mnemonic: "iinc", Wide: true,
			Operands: []Operand{{Kind: KindLocal, Value: 256}, {Kind: KindLiteral, Value: -100}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk diff (-want +got):\n%s", diff)
	}
}

func TestWalkErrors(t *testing.T) {
	tests := []struct {
		name string
		code []byte
	}{
		{"unknown opcode", []byte{0xCA}},
		{"operand past end", []byte{0x10}},                            // bipush without operand
		{"nonzero switch padding", []byte{0xAA, 0x01, 0x00, 0x00}},
		{"switch payload past end", []byte{0xAA, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"tableswitch high below low", []byte{
			0xAA, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x0C,
			0x00, 0x00, 0x00, 0x05, // low 5
			0x00, 0x00, 0x00, 0x04, // high 4
		}},
		{"lookupswitch negative npairs", []byte{
			0xAB, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x0C,
			0xFF, 0xFF, 0xFF, 0xFF,
		}},
		{"wide at end", []byte{0xC4}},
		{"wide on non-local opcode", []byte{0xC4, 0x00, 0x00, 0x00}}, // wide nop
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Walk(tt.code, func(Instruction) error { return nil })
			if !errors.Is(err, ErrBadBytecode) {
				t.Errorf("Walk error = %v, want ErrBadBytecode", err)
			}
		})
	}
}

func TestWalkTotality(t *testing.T) {
	// Sum of decoded instruction extents equals the code length.
	code := []byte{
		0x10, 0x2A,
		0x00, 0x00,
		0xAA,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x10,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x08,
		0xB1,
	}
	var pcs []int
	if err := Walk(code, func(ins Instruction) error {
		pcs = append(pcs, ins.PC)
		return nil
	}); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []int{0, 2, 3, 4, 24}
	if diff := cmp.Diff(want, pcs); diff != "" {
		t.Errorf("pcs diff (-want +got):\n%s", diff)
	}
}
