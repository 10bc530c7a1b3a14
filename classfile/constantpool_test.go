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

package classfile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testPool() ConstantPool {
	return ConstantPool{
		nil,
		&Utf8{Bytes: []byte("java/lang/String")},           // 1
		&Class{NameIndex: 1},                               // 2
		&Utf8{Bytes: []byte("length")},                     // 3
		&Utf8{Bytes: []byte("()I")},                        // 4
		&NameAndType{NameIndex: 3, DescriptorIndex: 4},     // 5
		&MethodRef{ClassIndex: 2, NameAndTypeIndex: 5},     // 6
		&Long{Value: 7},                                    // 7
		nil,                                                // 8: sentinel
		&FieldRef{ClassIndex: 2, NameAndTypeIndex: 5},      // 9
		&InterfaceMethodRef{ClassIndex: 2, NameAndTypeIndex: 5}, // 10
	}
}

func TestEntryBounds(t *testing.T) {
	pool := testPool()
	for _, i := range []uint16{0, 11, 400} {
		if _, err := pool.Entry(i); !errors.Is(err, ErrBadPoolIndex) {
			t.Errorf("Entry(%d) error = %v, want ErrBadPoolIndex", i, err)
		}
	}
	if _, err := pool.Entry(8); !errors.Is(err, ErrBadPoolIndex) {
		t.Errorf("Entry(sentinel) error = %v, want ErrBadPoolIndex", err)
	}
	if _, err := pool.Entry(7); err != nil {
		t.Errorf("Entry(7): %v", err)
	}
}

func TestTypedAccessors(t *testing.T) {
	pool := testPool()
	if s, err := pool.Utf8At(1); err != nil || s != "java/lang/String" {
		t.Errorf("Utf8At(1) = %q, %v", s, err)
	}
	if _, err := pool.Utf8At(2); !errors.Is(err, ErrBadConstantKind) {
		t.Errorf("Utf8At(Class) error = %v, want ErrBadConstantKind", err)
	}
	if n, err := pool.ClassNameAt(2); err != nil || n != "java/lang/String" {
		t.Errorf("ClassNameAt(2) = %q, %v", n, err)
	}
	if _, err := pool.ClassNameAt(3); !errors.Is(err, ErrBadConstantKind) {
		t.Errorf("ClassNameAt(Utf8) error = %v, want ErrBadConstantKind", err)
	}
	name, desc, err := pool.NameAndTypeAt(5)
	if err != nil || name != "length" || desc != "()I" {
		t.Errorf("NameAndTypeAt(5) = %q, %q, %v", name, desc, err)
	}
}

func TestRefAt(t *testing.T) {
	pool := testPool()
	want := MemberRef{Class: "java/lang/String", Name: "length", Descriptor: "()I"}
	for _, i := range []uint16{6, 9, 10} {
		got, err := pool.RefAt(i)
		if err != nil {
			t.Errorf("RefAt(%d): %v", i, err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("RefAt(%d) diff (-want +got):\n%s", i, diff)
		}
	}
	if _, err := pool.RefAt(5); !errors.Is(err, ErrBadConstantKind) {
		t.Errorf("RefAt(NameAndType) error = %v, want ErrBadConstantKind", err)
	}
}
