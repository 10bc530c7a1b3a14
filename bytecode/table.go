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

// Package bytecode holds the JVM opcode dispatch table and a walker that
// enumerates the variable-length instruction stream of a Code attribute.
package bytecode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadBytecode is returned for unknown opcodes, misaligned or malformed
// switch payloads, and instruction streams that run past the code length.
var ErrBadBytecode = errors.New("bad bytecode")

// Operand info kinds. Each operand of an instruction is classified by one of
// these characters.
const (
	KindPoolIndex = 'c' // constant-pool index (1-based)
	KindLocal     = 'l' // local-variable index
	KindOffset    = 'o' // branch offset relative to the opcode's pc
	KindArrayType = 'a' // array type code (newarray)
	KindLiteral   = '#' // literal integer
	KindZero      = '0' // required zero byte
)

// Arg describes one fixed operand of an opcode.
type Arg struct {
	Kind   byte
	Width  int
	Signed bool
}

// Op is one row of the dispatch table.
type Op struct {
	Mnemonic string
	Args     []Arg
	Variable bool // tableswitch, lookupswitch, wide
}

// Size returns the number of fixed operand bytes following the opcode, or
// -1 for variable-length opcodes.
func (o Op) Size() int {
	if o.Variable {
		return -1
	}
	n := 0
	for _, a := range o.Args {
		n += a.Width
	}
	return n
}

// Opcodes the extractors and renderers dispatch on by number.
const (
	OpLdc             = 18
	OpLdcW            = 19
	OpLdc2W           = 20
	OpIinc            = 132
	OpTableswitch     = 170
	OpLookupswitch    = 171
	OpGetstatic       = 178
	OpPutstatic       = 179
	OpGetfield        = 180
	OpPutfield        = 181
	OpInvokevirtual   = 182
	OpInvokespecial   = 183
	OpInvokestatic    = 184
	OpInvokeinterface = 185
	OpInvokedynamic   = 186
	OpNew             = 187
	OpNewarray        = 188
	OpAnewarray       = 189
	OpCheckcast       = 192
	OpInstanceof      = 193
	OpWide            = 196
	OpMultianewarray  = 197
)

// opSpec is the static description the table is built from: a mnemonic and
// a space-separated operand spec. Each token is a kind character, a width
// digit, and an optional 's' marking a sign-extended operand.
type opSpec struct {
	mnemonic string
	args     string
}

// specs is indexed by opcode. "*" marks the variable-length opcodes.
var specs = [...]opSpec{
	{"nop", ""}, {"aconst_null", ""}, {"iconst_m1", ""}, {"iconst_0", ""},
	{"iconst_1", ""}, {"iconst_2", ""}, {"iconst_3", ""}, {"iconst_4", ""},
	{"iconst_5", ""}, {"lconst_0", ""}, {"lconst_1", ""}, {"fconst_0", ""},
	{"fconst_1", ""}, {"fconst_2", ""}, {"dconst_0", ""}, {"dconst_1", ""},
	{"bipush", "#1s"}, {"sipush", "#2s"}, {"ldc", "c1"}, {"ldc_w", "c2"},
	{"ldc2_w", "c2"},
	{"iload", "l1"}, {"lload", "l1"}, {"fload", "l1"}, {"dload", "l1"}, {"aload", "l1"},
	{"iload_0", ""}, {"iload_1", ""}, {"iload_2", ""}, {"iload_3", ""},
	{"lload_0", ""}, {"lload_1", ""}, {"lload_2", ""}, {"lload_3", ""},
	{"fload_0", ""}, {"fload_1", ""}, {"fload_2", ""}, {"fload_3", ""},
	{"dload_0", ""}, {"dload_1", ""}, {"dload_2", ""}, {"dload_3", ""},
	{"aload_0", ""}, {"aload_1", ""}, {"aload_2", ""}, {"aload_3", ""},
	{"iaload", ""}, {"laload", ""}, {"faload", ""}, {"daload", ""}, {"aaload", ""},
	{"baload", ""}, {"caload", ""}, {"saload", ""},
	{"istore", "l1"}, {"lstore", "l1"}, {"fstore", "l1"}, {"dstore", "l1"}, {"astore", "l1"},
	{"istore_0", ""}, {"istore_1", ""}, {"istore_2", ""}, {"istore_3", ""},
	{"lstore_0", ""}, {"lstore_1", ""}, {"lstore_2", ""}, {"lstore_3", ""},
	{"fstore_0", ""}, {"fstore_1", ""}, {"fstore_2", ""}, {"fstore_3", ""},
	{"dstore_0", ""}, {"dstore_1", ""}, {"dstore_2", ""}, {"dstore_3", ""},
	{"astore_0", ""}, {"astore_1", ""}, {"astore_2", ""}, {"astore_3", ""},
	{"iastore", ""}, {"lastore", ""}, {"fastore", ""}, {"dastore", ""}, {"aastore", ""},
	{"bastore", ""}, {"castore", ""}, {"sastore", ""},
	{"pop", ""}, {"pop2", ""}, {"dup", ""}, {"dup_x1", ""}, {"dup_x2", ""},
	{"dup2", ""}, {"dup2_x1", ""}, {"dup2_x2", ""}, {"swap", ""},
	{"iadd", ""}, {"ladd", ""}, {"fadd", ""}, {"dadd", ""},
	{"isub", ""}, {"lsub", ""}, {"fsub", ""}, {"dsub", ""},
	{"imul", ""}, {"lmul", ""}, {"fmul", ""}, {"dmul", ""},
	{"idiv", ""}, {"ldiv", ""}, {"fdiv", ""}, {"ddiv", ""},
	{"irem", ""}, {"lrem", ""}, {"frem", ""}, {"drem", ""},
	{"ineg", ""}, {"lneg", ""}, {"fneg", ""}, {"dneg", ""},
	{"ishl", ""}, {"lshl", ""}, {"ishr", ""}, {"lshr", ""}, {"iushr", ""}, {"lushr", ""},
	{"iand", ""}, {"land", ""}, {"ior", ""}, {"lor", ""}, {"ixor", ""}, {"lxor", ""},
	{"iinc", "l1 #1s"},
	{"i2l", ""}, {"i2f", ""}, {"i2d", ""}, {"l2i", ""}, {"l2f", ""}, {"l2d", ""},
	{"f2i", ""}, {"f2l", ""}, {"f2d", ""}, {"d2i", ""}, {"d2l", ""}, {"d2f", ""},
	{"i2b", ""}, {"i2c", ""}, {"i2s", ""},
	{"lcmp", ""}, {"fcmpl", ""}, {"fcmpg", ""}, {"dcmpl", ""}, {"dcmpg", ""},
	{"ifeq", "o2s"}, {"ifne", "o2s"}, {"iflt", "o2s"}, {"ifge", "o2s"},
	{"ifgt", "o2s"}, {"ifle", "o2s"},
	{"if_icmpeq", "o2s"}, {"if_icmpne", "o2s"}, {"if_icmplt", "o2s"},
	{"if_icmpge", "o2s"}, {"if_icmpgt", "o2s"}, {"if_icmple", "o2s"},
	{"if_acmpeq", "o2s"}, {"if_acmpne", "o2s"},
	{"goto", "o2s"}, {"jsr", "o2s"}, {"ret", "l1"},
	{"tableswitch", "*"}, {"lookupswitch", "*"},
	{"ireturn", ""}, {"lreturn", ""}, {"freturn", ""}, {"dreturn", ""},
	{"areturn", ""}, {"return", ""},
	{"getstatic", "c2"}, {"putstatic", "c2"}, {"getfield", "c2"}, {"putfield", "c2"},
	{"invokevirtual", "c2"}, {"invokespecial", "c2"}, {"invokestatic", "c2"},
	{"invokeinterface", "c2 #1 01"}, {"invokedynamic", "c2 01 01"},
	{"new", "c2"}, {"newarray", "a1"}, {"anewarray", "c2"},
	{"arraylength", ""}, {"athrow", ""},
	{"checkcast", "c2"}, {"instanceof", "c2"},
	{"monitorenter", ""}, {"monitorexit", ""},
	{"wide", "*"},
	{"multianewarray", "c2 #1"},
	{"ifnull", "o2s"}, {"ifnonnull", "o2s"},
	{"goto_w", "o4s"}, {"jsr_w", "o4s"},
}

// table maps every opcode to its Op. Slots past the last defined opcode have
// an empty mnemonic. Built once at init and never mutated.
var table [256]Op

func init() {
	for code, s := range specs {
		op := Op{Mnemonic: s.mnemonic}
		if s.args == "*" {
			op.Variable = true
		} else if s.args != "" {
			rest := s.args
			for len(rest) > 0 {
				tok := rest
				if sp := strings.IndexByte(rest, ' '); sp >= 0 {
					tok, rest = rest[:sp], rest[sp+1:]
				} else {
					rest = ""
				}
				a := Arg{Kind: tok[0], Width: int(tok[1] - '0')}
				if len(tok) == 3 && tok[2] == 's' {
					a.Signed = true
				}
				op.Args = append(op.Args, a)
			}
		}
		table[code] = op
	}
}

// Lookup returns the table row for an opcode, or ErrBadBytecode for opcodes
// outside the instruction set.
func Lookup(opcode byte) (Op, error) {
	op := table[opcode]
	if op.Mnemonic == "" {
		return Op{}, fmt.Errorf("%w: unknown opcode %d", ErrBadBytecode, opcode)
	}
	return op, nil
}

// Mnemonic returns the name of an opcode, or "" if unknown.
func Mnemonic(opcode byte) string {
	return table[opcode].Mnemonic
}
