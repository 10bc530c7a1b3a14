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

package symbol

import (
	"fmt"
	"strings"

	"github.com/yodamaster/jnm/bytecode"
	"github.com/yodamaster/jnm/classfile"
	"github.com/yodamaster/jnm/descriptor"
)

// Extract produces the symbols of one parsed class: a Class definition,
// one definition per field and method, and one reference per bytecode
// operand that names another class, field, or method. Order is discovery
// order: class, then fields, then methods with each method's references in
// bytecode order.
func Extract(cf *classfile.ClassFile) ([]Symbol, error) {
	className, err := cf.ClassName()
	if err != nil {
		return nil, fmt.Errorf("class name: %w", err)
	}
	fqcn := descriptor.FQCN(className)

	size := uint64(cf.Size)
	syms := []Symbol{{
		Value:   &size,
		Kind:    Class,
		Private: cf.AccessFlags&classfile.AccPrivate != 0,
		Name:    fqcn,
	}}

	for i := range cf.Fields {
		f := &cf.Fields[i]
		name, err := f.Name(cf.Pool)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		desc, err := f.Descriptor(cf.Pool)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		sz, err := descriptor.Size(desc)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		kind := InstanceField
		if f.AccessFlags&classfile.AccStatic != 0 {
			kind = StaticField
		}
		syms = append(syms, Symbol{
			Value:      &sz,
			Kind:       kind,
			Private:    f.AccessFlags&classfile.AccPrivate != 0,
			Name:       fqcn + "." + name,
			Descriptor: desc,
		})
	}

	for i := range cf.Methods {
		m := &cf.Methods[i]
		name, err := m.Name(cf.Pool)
		if err != nil {
			return nil, fmt.Errorf("method %d: %w", i, err)
		}
		desc, err := m.Descriptor(cf.Pool)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", name, err)
		}
		sym := Symbol{
			Kind:       Method,
			Private:    m.AccessFlags&classfile.AccPrivate != 0,
			Name:       fqcn + "." + name,
			Descriptor: desc,
		}
		code := m.Code()
		if code != nil {
			n := uint64(len(code.Code))
			sym.Value = &n
		}
		syms = append(syms, sym)
		if code == nil {
			continue
		}
		refs, err := references(cf.Pool, code.Code)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", name, err)
		}
		syms = append(syms, refs...)
	}
	return syms, nil
}

// references walks one method body and emits a reference symbol for every
// operand that names a class or member in the constant pool.
func references(pool classfile.ConstantPool, code []byte) ([]Symbol, error) {
	var refs []Symbol
	err := bytecode.Walk(code, func(ins bytecode.Instruction) error {
		switch ins.Opcode {
		case bytecode.OpNew, bytecode.OpAnewarray, bytecode.OpCheckcast,
			bytecode.OpInstanceof, bytecode.OpMultianewarray:
			name, err := pool.ClassNameAt(uint16(ins.Operands[0].Value))
			if err != nil {
				return fmt.Errorf("pc %d (%s): %w", ins.PC, ins.Mnemonic, err)
			}
			// Class constants of array types name no class.
			if strings.HasPrefix(name, "[") {
				return nil
			}
			refs = append(refs, Symbol{Kind: RefClass, Name: descriptor.FQCN(name)})
		case bytecode.OpLdc, bytecode.OpLdcW:
			c, err := pool.Entry(uint16(ins.Operands[0].Value))
			if err != nil {
				return fmt.Errorf("pc %d (%s): %w", ins.PC, ins.Mnemonic, err)
			}
			cls, ok := c.(*classfile.Class)
			if !ok {
				return nil
			}
			name, err := pool.Utf8At(cls.NameIndex)
			if err != nil {
				return fmt.Errorf("pc %d (%s): %w", ins.PC, ins.Mnemonic, err)
			}
			if strings.HasPrefix(name, "[") {
				return nil
			}
			refs = append(refs, Symbol{Kind: RefClass, Name: descriptor.FQCN(name)})
		case bytecode.OpGetfield, bytecode.OpPutfield:
			s, err := memberRef(pool, ins, RefInstanceField)
			if err != nil {
				return err
			}
			refs = append(refs, s)
		case bytecode.OpGetstatic, bytecode.OpPutstatic:
			s, err := memberRef(pool, ins, RefStaticField)
			if err != nil {
				return err
			}
			refs = append(refs, s)
		case bytecode.OpInvokevirtual, bytecode.OpInvokespecial,
			bytecode.OpInvokestatic, bytecode.OpInvokeinterface:
			s, err := memberRef(pool, ins, RefMethod)
			if err != nil {
				return err
			}
			refs = append(refs, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func memberRef(pool classfile.ConstantPool, ins bytecode.Instruction, kind Kind) (Symbol, error) {
	ref, err := pool.RefAt(uint16(ins.Operands[0].Value))
	if err != nil {
		return Symbol{}, fmt.Errorf("pc %d (%s): %w", ins.PC, ins.Mnemonic, err)
	}
	return Symbol{
		Kind:       kind,
		Name:       descriptor.FQCN(ref.Class) + "." + ref.Name,
		Descriptor: ref.Descriptor,
	}, nil
}
