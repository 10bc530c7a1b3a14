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
	"os"

	"github.com/yodamaster/jnm/bytereader"
)

const classMagic = 0xCAFEBABE

// MaxMajorVersion is the newest class format the parser accepts (Java 7).
const MaxMajorVersion = 51

var (
	// ErrBadMagic is returned when the input does not start with 0xCAFEBABE.
	ErrBadMagic = errors.New("bad magic")
	// ErrUnsupportedVersion is returned for class files newer than Java 7.
	ErrUnsupportedVersion = errors.New("unsupported class file version")
	// ErrExtraData is returned when bytes remain after the class structure.
	ErrExtraData = errors.New("extra data after class file")
	// ErrBadAttribute is returned when an attribute's declared length
	// disagrees with its payload.
	ErrBadAttribute = errors.New("bad attribute")
)

// ParseFile reads and parses the class file at path.
func ParseFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes one class file from data. The entire input must be consumed;
// trailing bytes are an error. Constant pool entries store raw indices only,
// so structurally valid files with dangling indices parse successfully and
// fail later, on resolution.
func Parse(data []byte) (*ClassFile, error) {
	r := bytereader.New(data)
	cf := &ClassFile{}

	magic, err := r.U32()
	if err != nil {
		return nil, err
	}
	if magic != classMagic {
		return nil, fmt.Errorf("%w: 0x%08X", ErrBadMagic, magic)
	}
	if cf.MinorVersion, err = r.U16(); err != nil {
		return nil, err
	}
	if cf.MajorVersion, err = r.U16(); err != nil {
		return nil, err
	}
	if cf.MajorVersion > MaxMajorVersion {
		return nil, fmt.Errorf("%w: major %d (newest supported is %d)", ErrUnsupportedVersion, cf.MajorVersion, MaxMajorVersion)
	}

	if cf.Pool, err = parsePool(r); err != nil {
		return nil, fmt.Errorf("constant pool: %w", err)
	}

	if cf.AccessFlags, err = r.U16(); err != nil {
		return nil, err
	}
	if cf.ThisClass, err = r.U16(); err != nil {
		return nil, err
	}
	if cf.SuperClass, err = r.U16(); err != nil {
		return nil, err
	}

	ifCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < ifCount; i++ {
		idx, err := r.U16()
		if err != nil {
			return nil, fmt.Errorf("interface %d: %w", i, err)
		}
		cf.Interfaces = append(cf.Interfaces, idx)
	}

	fieldCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < fieldCount; i++ {
		f, err := parseMember(r, cf.Pool)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		cf.Fields = append(cf.Fields, Field(f))
	}

	methodCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < methodCount; i++ {
		m, err := parseMember(r, cf.Pool)
		if err != nil {
			return nil, fmt.Errorf("method %d: %w", i, err)
		}
		cf.Methods = append(cf.Methods, Method(m))
	}

	if cf.Attributes, err = parseAttributes(r, cf.Pool); err != nil {
		return nil, fmt.Errorf("class attributes: %w", err)
	}

	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrExtraData, r.Remaining())
	}
	cf.Size = uint32(r.Position())
	return cf, nil
}

// parsePool reads constant_pool_count-1 entries. The slot following a Long
// or Double stays nil; references to it are rejected at resolution time.
func parsePool(r *bytereader.Reader) (ConstantPool, error) {
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	pool := make(ConstantPool, count)
	for i := uint16(1); i < count; i++ {
		tag, err := r.U8()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		var c Constant
		switch tag {
		case TagUtf8:
			n, err := r.U16()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			b, err := r.Bytes(int(n))
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			c = &Utf8{Bytes: b}
		case TagInteger:
			v, err := r.S32()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			c = &Integer{Value: v}
		case TagFloat:
			v, err := r.F32()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			c = &Float{Value: v}
		case TagLong:
			hi, err := r.U32()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			lo, err := r.U32()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			c = &Long{Value: int64(uint64(hi)<<32 | uint64(lo))}
		case TagDouble:
			v, err := r.F64()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			c = &Double{Value: v}
		case TagClass:
			n, err := r.U16()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			c = &Class{NameIndex: n}
		case TagString:
			n, err := r.U16()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			c = &StringConst{StringIndex: n}
		case TagFieldRef, TagMethodRef, TagInterfaceMethodRef:
			cls, err := r.U16()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			nat, err := r.U16()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			switch tag {
			case TagFieldRef:
				c = &FieldRef{ClassIndex: cls, NameAndTypeIndex: nat}
			case TagMethodRef:
				c = &MethodRef{ClassIndex: cls, NameAndTypeIndex: nat}
			default:
				c = &InterfaceMethodRef{ClassIndex: cls, NameAndTypeIndex: nat}
			}
		case TagNameAndType:
			name, err := r.U16()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			desc, err := r.U16()
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			c = &NameAndType{NameIndex: name, DescriptorIndex: desc}
		default:
			return nil, fmt.Errorf("%w: tag %d at index %d", ErrBadConstantTag, tag, i)
		}
		pool[i] = c
		if tag == TagLong || tag == TagDouble {
			i++ // the next slot is the sentinel
		}
	}
	return pool, nil
}

// member is the common shape of field_info and method_info.
type member struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

func parseMember(r *bytereader.Reader, pool ConstantPool) (member, error) {
	var m member
	var err error
	if m.AccessFlags, err = r.U16(); err != nil {
		return m, err
	}
	if m.NameIndex, err = r.U16(); err != nil {
		return m, err
	}
	if m.DescriptorIndex, err = r.U16(); err != nil {
		return m, err
	}
	m.Attributes, err = parseAttributes(r, pool)
	return m, err
}

// parseAttributes reads an attributes_count and that many attributes,
// dispatching on the attribute's Utf8 name.
func parseAttributes(r *bytereader.Reader, pool ConstantPool) ([]Attribute, error) {
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	var attrs []Attribute
	for i := uint16(0); i < count; i++ {
		nameIdx, err := r.U16()
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		length, err := r.U32()
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		data, err := r.Bytes(int(length))
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		name, err := pool.Utf8At(nameIdx)
		if err != nil {
			return nil, fmt.Errorf("attribute %d name: %w", i, err)
		}
		a, err := decodeAttribute(name, nameIdx, data, pool)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func decodeAttribute(name string, nameIdx uint16, data []byte, pool ConstantPool) (Attribute, error) {
	switch name {
	case "Code":
		return decodeCode(data, pool)
	case "Exceptions":
		return decodeExceptions(data)
	case "SourceFile":
		return decodeSourceFile(data)
	default:
		return &UnknownAttribute{NameIndex: nameIdx, Name: name, Data: data}, nil
	}
}

func decodeCode(data []byte, pool ConstantPool) (*CodeAttribute, error) {
	r := bytereader.New(data)
	a := &CodeAttribute{}
	var err error
	if a.MaxStack, err = r.U16(); err != nil {
		return nil, err
	}
	if a.MaxLocals, err = r.U16(); err != nil {
		return nil, err
	}
	codeLen, err := r.U32()
	if err != nil {
		return nil, err
	}
	if a.Code, err = r.Bytes(int(codeLen)); err != nil {
		return nil, err
	}
	tableLen, err := r.U16()
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < tableLen; i++ {
		var e ExceptionEntry
		if e.StartPC, err = r.U16(); err != nil {
			return nil, err
		}
		if e.EndPC, err = r.U16(); err != nil {
			return nil, err
		}
		if e.HandlerPC, err = r.U16(); err != nil {
			return nil, err
		}
		if e.CatchType, err = r.U16(); err != nil {
			return nil, err
		}
		a.ExceptionTable = append(a.ExceptionTable, e)
	}
	if a.Attributes, err = parseAttributes(r, pool); err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: Code has %d undeclared trailing bytes", ErrBadAttribute, r.Remaining())
	}
	return a, nil
}

func decodeExceptions(data []byte) (*ExceptionsAttribute, error) {
	r := bytereader.New(data)
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	a := &ExceptionsAttribute{}
	for i := uint16(0); i < count; i++ {
		idx, err := r.U16()
		if err != nil {
			return nil, err
		}
		a.ClassIndexes = append(a.ClassIndexes, idx)
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: Exceptions has %d undeclared trailing bytes", ErrBadAttribute, r.Remaining())
	}
	return a, nil
}

func decodeSourceFile(data []byte) (*SourceFileAttribute, error) {
	r := bytereader.New(data)
	idx, err := r.U16()
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: SourceFile has %d undeclared trailing bytes", ErrBadAttribute, r.Remaining())
	}
	return &SourceFileAttribute{Index: idx}, nil
}
