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

package bytereader

import (
	"errors"
	"testing"
)

func TestReads(t *testing.T) {
	r := New([]byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00, 0x32, 0xFF, 0xFF, 0xFF, 0xFE, 0x41})
	u32, err := r.U32()
	if err != nil || u32 != 0xCAFEBABE {
		t.Errorf("U32() = %x, %v, want cafebabe, nil", u32, err)
	}
	u16, err := r.U16()
	if err != nil || u16 != 0x32 {
		t.Errorf("U16() = %x, %v, want 32, nil", u16, err)
	}
	s32, err := r.S32()
	if err != nil || s32 != -2 {
		t.Errorf("S32() = %d, %v, want -2, nil", s32, err)
	}
	u8, err := r.U8()
	if err != nil || u8 != 0x41 {
		t.Errorf("U8() = %x, %v, want 41, nil", u8, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
	if r.Position() != 11 {
		t.Errorf("Position() = %d, want 11", r.Position())
	}
}

func TestFloats(t *testing.T) {
	// 1.5f = 0x3FC00000, 2.5 = 0x4004000000000000.
	r := New([]byte{0x3F, 0xC0, 0x00, 0x00, 0x40, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	f32, err := r.F32()
	if err != nil || f32 != 1.5 {
		t.Errorf("F32() = %v, %v, want 1.5, nil", f32, err)
	}
	f64, err := r.F64()
	if err != nil || f64 != 2.5 {
		t.Errorf("F64() = %v, %v, want 2.5, nil", f64, err)
	}
}

func TestTruncated(t *testing.T) {
	tests := []struct {
		desc string
		read func(r *Reader) error
	}{
		{"U16 past end", func(r *Reader) error { _, err := r.U16(); return err }},
		{"U32 past end", func(r *Reader) error { _, err := r.U32(); return err }},
		{"F64 past end", func(r *Reader) error { _, err := r.F64(); return err }},
		{"Bytes past end", func(r *Reader) error { _, err := r.Bytes(2); return err }},
	}
	for _, tt := range tests {
		r := New([]byte{0x01})
		if err := tt.read(r); !errors.Is(err, ErrTruncated) {
			t.Errorf("%s: got %v, want ErrTruncated", tt.desc, err)
		}
		// A failed read must not move the cursor.
		if r.Position() != 0 {
			t.Errorf("%s: Position() = %d after failed read, want 0", tt.desc, r.Position())
		}
	}
}

func TestBytesAliases(t *testing.T) {
	r := New([]byte{1, 2, 3, 4})
	b, err := r.Bytes(4)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 4 || b[3] != 4 {
		t.Errorf("Bytes(4) = %v", b)
	}
}
