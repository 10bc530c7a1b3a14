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
	"fmt"
)

// Constant pool tags, per the JVM specification.
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldRef           = 9
	TagMethodRef          = 10
	TagInterfaceMethodRef = 11
	TagNameAndType        = 12
)

var (
	// ErrBadConstantTag is returned when an entry carries an unknown tag.
	ErrBadConstantTag = errors.New("bad constant pool tag")
	// ErrBadPoolIndex is returned when an index is outside [1, pool length]
	// or lands on the sentinel slot after a Long or Double.
	ErrBadPoolIndex = errors.New("bad constant pool index")
	// ErrBadConstantKind is returned when an index refers to a constant of
	// an unexpected kind.
	ErrBadConstantKind = errors.New("bad constant kind")
)

// Constant is one constant pool entry. The concrete type determines the kind.
type Constant interface {
	Tag() uint8
}

// Utf8 holds the raw modified-UTF-8 bytes of a string constant.
type Utf8 struct {
	Bytes []byte
}

func (c *Utf8) Tag() uint8 { return TagUtf8 }

// String decodes the entry. Modified UTF-8 is close enough to UTF-8 for
// every name and descriptor the tools print; surrogate-pair encodings pass
// through undecoded.
func (c *Utf8) String() string { return string(c.Bytes) }

// Integer is a 32-bit integer constant.
type Integer struct {
	Value int32
}

func (c *Integer) Tag() uint8 { return TagInteger }

// Float is a 32-bit float constant.
type Float struct {
	Value float32
}

func (c *Float) Tag() uint8 { return TagFloat }

// Long is a 64-bit integer constant. It occupies two pool slots.
type Long struct {
	Value int64
}

func (c *Long) Tag() uint8 { return TagLong }

// Double is a 64-bit float constant. It occupies two pool slots.
type Double struct {
	Value float64
}

func (c *Double) Tag() uint8 { return TagDouble }

// Class references the Utf8 entry holding an internal class name.
type Class struct {
	NameIndex uint16
}

func (c *Class) Tag() uint8 { return TagClass }

// StringConst references the Utf8 entry holding a string literal.
type StringConst struct {
	StringIndex uint16
}

func (c *StringConst) Tag() uint8 { return TagString }

// FieldRef references a field of a class.
type FieldRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *FieldRef) Tag() uint8 { return TagFieldRef }

// MethodRef references a method of a class.
type MethodRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *MethodRef) Tag() uint8 { return TagMethodRef }

// InterfaceMethodRef references a method of an interface.
type InterfaceMethodRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *InterfaceMethodRef) Tag() uint8 { return TagInterfaceMethodRef }

// NameAndType pairs a member name with its descriptor.
type NameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *NameAndType) Tag() uint8 { return TagNameAndType }

// ConstantPool is the 1-indexed constant table of a class file. Slot 0 is
// nil, and the slot after each Long or Double is nil (the sentinel slot).
type ConstantPool []Constant

// Entry returns the constant at index i, rejecting out-of-range indexes and
// sentinel slots.
func (p ConstantPool) Entry(i uint16) (Constant, error) {
	if i == 0 || int(i) >= len(p) {
		return nil, fmt.Errorf("%w: %d (pool length %d)", ErrBadPoolIndex, i, len(p)-1)
	}
	if p[i] == nil {
		return nil, fmt.Errorf("%w: %d refers to the slot after a long or double", ErrBadPoolIndex, i)
	}
	return p[i], nil
}

// Utf8At returns the decoded string at index i, which must be a Utf8 entry.
func (p ConstantPool) Utf8At(i uint16) (string, error) {
	c, err := p.Entry(i)
	if err != nil {
		return "", err
	}
	u, ok := c.(*Utf8)
	if !ok {
		return "", fmt.Errorf("%w: index %d has tag %d, want Utf8", ErrBadConstantKind, i, c.Tag())
	}
	return u.String(), nil
}

// ClassNameAt returns the internal (slash-form) name of the Class entry at i.
func (p ConstantPool) ClassNameAt(i uint16) (string, error) {
	c, err := p.Entry(i)
	if err != nil {
		return "", err
	}
	cl, ok := c.(*Class)
	if !ok {
		return "", fmt.Errorf("%w: index %d has tag %d, want Class", ErrBadConstantKind, i, c.Tag())
	}
	return p.Utf8At(cl.NameIndex)
}

// NameAndTypeAt resolves the NameAndType entry at i to (name, descriptor).
func (p ConstantPool) NameAndTypeAt(i uint16) (name, desc string, err error) {
	c, err := p.Entry(i)
	if err != nil {
		return "", "", err
	}
	nt, ok := c.(*NameAndType)
	if !ok {
		return "", "", fmt.Errorf("%w: index %d has tag %d, want NameAndType", ErrBadConstantKind, i, c.Tag())
	}
	if name, err = p.Utf8At(nt.NameIndex); err != nil {
		return "", "", err
	}
	if desc, err = p.Utf8At(nt.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, desc, nil
}

// MemberRef is a field, method, or interface-method reference resolved to
// plain strings. Class is in internal slash form.
type MemberRef struct {
	Class      string
	Name       string
	Descriptor string
}

// RefAt resolves the FieldRef, MethodRef, or InterfaceMethodRef entry at i.
func (p ConstantPool) RefAt(i uint16) (MemberRef, error) {
	c, err := p.Entry(i)
	if err != nil {
		return MemberRef{}, err
	}
	var classIdx, natIdx uint16
	switch ref := c.(type) {
	case *FieldRef:
		classIdx, natIdx = ref.ClassIndex, ref.NameAndTypeIndex
	case *MethodRef:
		classIdx, natIdx = ref.ClassIndex, ref.NameAndTypeIndex
	case *InterfaceMethodRef:
		classIdx, natIdx = ref.ClassIndex, ref.NameAndTypeIndex
	default:
		return MemberRef{}, fmt.Errorf("%w: index %d has tag %d, want a member reference", ErrBadConstantKind, i, c.Tag())
	}
	cls, err := p.ClassNameAt(classIdx)
	if err != nil {
		return MemberRef{}, err
	}
	name, desc, err := p.NameAndTypeAt(natIdx)
	if err != nil {
		return MemberRef{}, err
	}
	return MemberRef{Class: cls, Name: name, Descriptor: desc}, nil
}
