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
)

func TestTableCoversInstructionSet(t *testing.T) {
	// 0..201 are defined opcodes; 202..255 are not.
	for op := 0; op < 202; op++ {
		if _, err := Lookup(byte(op)); err != nil {
			t.Errorf("Lookup(%d): %v", op, err)
		}
	}
	for op := 202; op < 256; op++ {
		if _, err := Lookup(byte(op)); !errors.Is(err, ErrBadBytecode) {
			t.Errorf("Lookup(%d) error = %v, want ErrBadBytecode", op, err)
		}
	}
}

func TestTableSpotChecks(t *testing.T) {
	tests := []struct {
		opcode   byte
		mnemonic string
		size     int
	}{
		{0, "nop", 0},
		{16, "bipush", 1},
		{17, "sipush", 2},
		{18, "ldc", 1},
		{19, "ldc_w", 2},
		{20, "ldc2_w", 2},
		{21, "iload", 1},
		{54, "istore", 1},
		{132, "iinc", 2},
		{153, "ifeq", 2},
		{167, "goto", 2},
		{169, "ret", 1},
		{172, "ireturn", 0},
		{177, "return", 0},
		{178, "getstatic", 2},
		{182, "invokevirtual", 2},
		{185, "invokeinterface", 4},
		{186, "invokedynamic", 4},
		{187, "new", 2},
		{188, "newarray", 1},
		{197, "multianewarray", 3},
		{198, "ifnull", 2},
		{200, "goto_w", 4},
		{201, "jsr_w", 4},
	}
	for _, tt := range tests {
		op, err := Lookup(tt.opcode)
		if err != nil {
			t.Errorf("Lookup(%d): %v", tt.opcode, err)
			continue
		}
		if op.Mnemonic != tt.mnemonic {
			t.Errorf("Lookup(%d).Mnemonic = %q, want %q", tt.opcode, op.Mnemonic, tt.mnemonic)
		}
		if op.Size() != tt.size {
			t.Errorf("Lookup(%d).Size() = %d, want %d", tt.opcode, op.Size(), tt.size)
		}
	}
}

func TestTableVariableOpcodes(t *testing.T) {
	for _, opcode := range []byte{OpTableswitch, OpLookupswitch, OpWide} {
		op, err := Lookup(opcode)
		if err != nil {
			t.Fatalf("Lookup(%d): %v", opcode, err)
		}
		if !op.Variable || op.Size() != -1 {
			t.Errorf("Lookup(%d) = %+v, want variable", opcode, op)
		}
	}
}

func TestTableOperandKinds(t *testing.T) {
	invoke, _ := Lookup(OpInvokeinterface)
	if len(invoke.Args) != 3 {
		t.Fatalf("invokeinterface has %d args, want 3", len(invoke.Args))
	}
	if invoke.Args[0].Kind != KindPoolIndex || invoke.Args[0].Width != 2 {
		t.Errorf("invokeinterface arg 0 = %+v", invoke.Args[0])
	}
	if invoke.Args[1].Kind != KindLiteral || invoke.Args[2].Kind != KindZero {
		t.Errorf("invokeinterface args = %+v", invoke.Args[1:])
	}
	bipush, _ := Lookup(16)
	if !bipush.Args[0].Signed || bipush.Args[0].Kind != KindLiteral {
		t.Errorf("bipush arg = %+v", bipush.Args[0])
	}
	ifeq, _ := Lookup(153)
	if ifeq.Args[0].Kind != KindOffset || !ifeq.Args[0].Signed {
		t.Errorf("ifeq arg = %+v", ifeq.Args[0])
	}
	newarray, _ := Lookup(OpNewarray)
	if newarray.Args[0].Kind != KindArrayType {
		t.Errorf("newarray arg = %+v", newarray.Args[0])
	}
}
