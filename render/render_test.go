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

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yodamaster/jnm/classfile"
)

func utf8(s string) *classfile.Utf8 { return &classfile.Utf8{Bytes: []byte(s)} }

func TestClassRendering(t *testing.T) {
	cf := &classfile.ClassFile{
		MinorVersion: 0,
		MajorVersion: 50,
		Pool: classfile.ConstantPool{
			nil,
			utf8("Answer"),
			&classfile.Class{NameIndex: 1},
			utf8("java/lang/Object"),
			&classfile.Class{NameIndex: 3},
			utf8("answer"),
			utf8("()I"),
			utf8("Code"),
			utf8("SourceFile"),
			utf8("Answer.java"),
		},
		AccessFlags: classfile.AccPublic | classfile.AccSuper,
		ThisClass:   2,
		SuperClass:  4,
		Methods: []classfile.Method{{
			AccessFlags:     classfile.AccPublic | classfile.AccStatic,
			NameIndex:       5,
			DescriptorIndex: 6,
			Attributes: []classfile.Attribute{&classfile.CodeAttribute{
				MaxStack:  1,
				MaxLocals: 0,
				Code:      []byte{0x10, 0x2A, 0xAC},
			}},
		}},
		Attributes: []classfile.Attribute{&classfile.SourceFileAttribute{Index: 9}},
		Size:       200,
	}
	var buf bytes.Buffer
	if err := Class(&buf, cf); err != nil {
		t.Fatalf("Class: %v", err)
	}
	want := strings.Join([]string{
		`Compiled from "Answer.java"`,
		"public class Answer extends java.lang.Object",
		"  minor version: 0",
		"  major version: 50",
		"",
		"const #1 = Asciz\tAnswer;",
		"const #2 = class\t#1;\t//  Answer",
		"const #3 = Asciz\tjava/lang/Object;",
		"const #4 = class\t#3;\t//  java/lang/Object",
		"const #5 = Asciz\tanswer;",
		"const #6 = Asciz\t()I;",
		"const #7 = Asciz\tCode;",
		"const #8 = Asciz\tSourceFile;",
		"const #9 = Asciz\tAnswer.java;",
		"",
		"public static int answer();",
		"  Signature: ()I",
		"  Code:",
		"   Stack=1, Locals=0, Args_size=0",
		"   0:\tbipush\t42",
		"   2:\tireturn",
		"",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("rendering diff (-want +got):\n%s", diff)
	}
}

func TestTableswitchRendering(t *testing.T) {
	code := &classfile.CodeAttribute{Code: []byte{
		0xAA, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x10,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x00, 0x00, 0x0C,
	}}
	var buf bytes.Buffer
	if err := Code(&buf, nil, code); err != nil {
		t.Fatalf("Code: %v", err)
	}
	want := strings.Join([]string{
		"   0:\ttableswitch\tdefault: 16, low: 0, high: 1",
		"\t\t0: 8",
		"\t\t1: 12",
		"\t\tdefault: 16",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("tableswitch diff (-want +got):\n%s", diff)
	}
}

func TestLookupswitchRendering(t *testing.T) {
	code := &classfile.CodeAttribute{Code: []byte{
		0xAB, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x14, // default 20
		0x00, 0x00, 0x00, 0x01, // npairs 1
		0x00, 0x00, 0x00, 0x63, // match 99
		0x00, 0x00, 0x00, 0x08, // offset 8
	}}
	var buf bytes.Buffer
	if err := Code(&buf, nil, code); err != nil {
		t.Fatalf("Code: %v", err)
	}
	want := strings.Join([]string{
		"   0:\tlookupswitch\tdefault: 20, npairs: 1",
		"\t\t99: 8",
		"\t\tdefault: 20",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("lookupswitch diff (-want +got):\n%s", diff)
	}
}

func TestInstructionComments(t *testing.T) {
	pool := classfile.ConstantPool{
		nil,
		utf8("java/io/PrintStream"),     // 1
		&classfile.Class{NameIndex: 1},  // 2
		utf8("println"),                 // 3
		utf8("(Ljava/lang/String;)V"),   // 4
		&classfile.NameAndType{NameIndex: 3, DescriptorIndex: 4}, // 5
		&classfile.MethodRef{ClassIndex: 2, NameAndTypeIndex: 5}, // 6
	}
	code := &classfile.CodeAttribute{Code: []byte{
		0xB6, 0x00, 0x06, // invokevirtual #6
		0xA7, 0x00, 0x03, // goto +3 (absolute 6)
		0xB1, // return
	}}
	var buf bytes.Buffer
	if err := Code(&buf, pool, code); err != nil {
		t.Fatalf("Code: %v", err)
	}
	want := strings.Join([]string{
		"   0:\tinvokevirtual\t#6; //Method java/io/PrintStream.println:(Ljava/lang/String;)V",
		"   3:\tgoto\t6",
		"   6:\treturn",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("comments diff (-want +got):\n%s", diff)
	}
}

func TestExceptionTableRendering(t *testing.T) {
	pool := classfile.ConstantPool{
		nil,
		utf8("java/lang/Exception"),
		&classfile.Class{NameIndex: 1},
	}
	code := &classfile.CodeAttribute{
		Code: []byte{0xB1}, // return
		ExceptionTable: []classfile.ExceptionEntry{
			{StartPC: 0, EndPC: 4, HandlerPC: 7, CatchType: 2},
			{StartPC: 0, EndPC: 4, HandlerPC: 12, CatchType: 0},
		},
	}
	var buf bytes.Buffer
	if err := Code(&buf, pool, code); err != nil {
		t.Fatalf("Code: %v", err)
	}
	want := strings.Join([]string{
		"   0:\treturn",
		"  Exception table:",
		"   from   to  target type",
		"     0     4     7   Class java/lang/Exception",
		"     0     4    12   any",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("exception table diff (-want +got):\n%s", diff)
	}
}
