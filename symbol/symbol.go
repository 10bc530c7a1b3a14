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

// Package symbol models defined and referenced entities of a class file and
// extracts them by walking fields, methods, and bytecode.
package symbol

import "strings"

// Kind classifies a symbol. The first four kinds are definitions and carry
// a value; the Ref kinds are references and carry none.
type Kind int

const (
	Class Kind = iota
	StaticField
	InstanceField
	Method
	RefClass
	RefStaticField
	RefInstanceField
	RefMethod
)

var kindChars = "CDITKFRJ"

// Char returns the one-letter display code for the kind, lowercased when
// private is set.
func (k Kind) Char(private bool) byte {
	c := kindChars[k]
	if private {
		c += 'a' - 'A'
	}
	return c
}

// Defined reports whether the kind is a definition (as opposed to a
// reference into another class).
func (k Kind) Defined() bool {
	return k < RefClass
}

// IsClass reports whether the kind names a class rather than a member.
func (k Kind) IsClass() bool {
	return k == Class || k == RefClass
}

func (k Kind) String() string {
	switch k {
	case Class:
		return "class"
	case StaticField:
		return "static field"
	case InstanceField:
		return "field"
	case Method:
		return "method"
	case RefClass:
		return "class ref"
	case RefStaticField:
		return "static field ref"
	case RefInstanceField:
		return "field ref"
	case RefMethod:
		return "method ref"
	}
	return "unknown"
}

// Symbol is one defined or referenced entity. Value is nil for references
// and for methods without code. Name is the fully-qualified dotted name.
// Descriptor holds the raw JVM descriptor when the symbol has one; the
// demangle display stage turns it into Expanded.
type Symbol struct {
	Value      *uint64
	Kind       Kind
	Private    bool
	Name       string
	Descriptor string
	Expanded   string
}

// Equal compares symbols by (value, kind, name), the identity used by
// filters. Kind comparison ignores the defined/referenced distinction's
// case, i.e. a definition and a reference to the same entity compare equal
// in name and value only if both sides agree.
func (s Symbol) Equal(o Symbol) bool {
	if (s.Value == nil) != (o.Value == nil) {
		return false
	}
	if s.Value != nil && *s.Value != *o.Value {
		return false
	}
	return s.Kind == o.Kind && s.Name == o.Name
}

// ClassName returns the dotted class component of the symbol's name: the
// whole name for class kinds, the name minus the member for member kinds.
func (s Symbol) ClassName() string {
	if s.Kind.IsClass() {
		return s.Name
	}
	if i := strings.LastIndexByte(s.Name, '.'); i >= 0 {
		return s.Name[:i]
	}
	return s.Name
}

// Package returns the dotted package of the symbol's class, or "" for the
// default package.
func (s Symbol) Package() string {
	cls := s.ClassName()
	if i := strings.LastIndexByte(cls, '.'); i >= 0 {
		return cls[:i]
	}
	return ""
}
