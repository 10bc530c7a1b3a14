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

// Attribute is a decoded class, field, method, or code attribute. Known
// attributes get a concrete type; everything else is preserved as Unknown.
type Attribute interface {
	AttrName() string
}

// ExceptionEntry is one row of a Code attribute's exception table.
// CatchType is a Class constant index, or 0 for a catch-all handler.
type ExceptionEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// CodeAttribute is a method body: operand stack and local sizes, raw
// bytecode, exception table, and nested attributes.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionEntry
	Attributes     []Attribute
}

func (a *CodeAttribute) AttrName() string { return "Code" }

// ExceptionsAttribute lists the Class constant indices of a method's
// declared thrown exceptions.
type ExceptionsAttribute struct {
	ClassIndexes []uint16
}

func (a *ExceptionsAttribute) AttrName() string { return "Exceptions" }

// SourceFileAttribute points at the Utf8 entry naming the source file.
type SourceFileAttribute struct {
	Index uint16
}

func (a *SourceFileAttribute) AttrName() string { return "SourceFile" }

// UnknownAttribute preserves an attribute the tools do not interpret.
type UnknownAttribute struct {
	NameIndex uint16
	Name      string
	Data      []byte
}

func (a *UnknownAttribute) AttrName() string { return a.Name }
