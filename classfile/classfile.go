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

// Package classfile parses compiled JVM class files (major versions up to
// 51, i.e. Java 7) into an immutable model: constant pool, fields, methods,
// and decoded attributes.
package classfile

// Access flags shared by classes, fields, and methods.
const (
	AccPublic       = 0x0001
	AccPrivate      = 0x0002
	AccProtected    = 0x0004
	AccStatic       = 0x0008
	AccFinal        = 0x0010
	AccSuper        = 0x0020 // classes
	AccSynchronized = 0x0020 // methods
	AccVolatile     = 0x0040
	AccTransient    = 0x0080
	AccNative       = 0x0100
	AccInterface    = 0x0200
	AccAbstract     = 0x0400
)

// ClassFile is one parsed class. All fields are fixed after Parse returns.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	Pool         ConstantPool
	AccessFlags  uint16
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []Field
	Methods      []Method
	Attributes   []Attribute

	// Size is the total number of bytes the class occupied on disk.
	Size uint32
}

// Field is one field record. Names resolve lazily through the pool.
type Field struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// Method is one method record.
type Method struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// ClassName returns the internal (slash-form) name of this class.
func (cf *ClassFile) ClassName() (string, error) {
	return cf.Pool.ClassNameAt(cf.ThisClass)
}

// SuperClassName returns the internal name of the super class, or "" when
// super_class is zero (the java.lang.Object case).
func (cf *ClassFile) SuperClassName() (string, error) {
	if cf.SuperClass == 0 {
		return "", nil
	}
	return cf.Pool.ClassNameAt(cf.SuperClass)
}

// InterfaceNames returns the internal names of the directly implemented
// interfaces, in declaration order.
func (cf *ClassFile) InterfaceNames() ([]string, error) {
	var names []string
	for _, idx := range cf.Interfaces {
		n, err := cf.Pool.ClassNameAt(idx)
		if err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, nil
}

// SourceFile returns the SourceFile attribute value, or "" if absent.
func (cf *ClassFile) SourceFile() string {
	for _, a := range cf.Attributes {
		if sf, ok := a.(*SourceFileAttribute); ok {
			name, err := cf.Pool.Utf8At(sf.Index)
			if err == nil {
				return name
			}
		}
	}
	return ""
}

// Name resolves the field name through the pool of the owning class.
func (f *Field) Name(pool ConstantPool) (string, error) {
	return pool.Utf8At(f.NameIndex)
}

// Descriptor resolves the field descriptor through the pool.
func (f *Field) Descriptor(pool ConstantPool) (string, error) {
	return pool.Utf8At(f.DescriptorIndex)
}

// Name resolves the method name through the pool of the owning class.
func (m *Method) Name(pool ConstantPool) (string, error) {
	return pool.Utf8At(m.NameIndex)
}

// Descriptor resolves the method descriptor through the pool.
func (m *Method) Descriptor(pool ConstantPool) (string, error) {
	return pool.Utf8At(m.DescriptorIndex)
}

// Code returns the method's Code attribute, or nil for abstract and native
// methods.
func (m *Method) Code() *CodeAttribute {
	for _, a := range m.Attributes {
		if c, ok := a.(*CodeAttribute); ok {
			return c
		}
	}
	return nil
}

// Exceptions returns the class indices of the method's declared exceptions.
func (m *Method) Exceptions() []uint16 {
	for _, a := range m.Attributes {
		if e, ok := a.(*ExceptionsAttribute); ok {
			return e.ClassIndexes
		}
	}
	return nil
}
