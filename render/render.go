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

// Package render prints parsed class files in a javap-like textual form:
// header, constant pool, field and method signatures, and disassembled
// bytecode.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/yodamaster/jnm/bytecode"
	"github.com/yodamaster/jnm/classfile"
	"github.com/yodamaster/jnm/descriptor"
)

// Class writes the full textual transcription of one class file.
func Class(w io.Writer, cf *classfile.ClassFile) error {
	if err := header(w, cf); err != nil {
		return err
	}
	if err := constantPool(w, cf.Pool); err != nil {
		return err
	}
	fmt.Fprintln(w)
	className, err := cf.ClassName()
	if err != nil {
		return err
	}
	for i := range cf.Fields {
		if err := field(w, cf, &cf.Fields[i]); err != nil {
			return err
		}
	}
	for i := range cf.Methods {
		if err := method(w, cf, &cf.Methods[i], descriptor.FQCN(className)); err != nil {
			return err
		}
	}
	return nil
}

func header(w io.Writer, cf *classfile.ClassFile) error {
	if sf := cf.SourceFile(); sf != "" {
		fmt.Fprintf(w, "Compiled from %q\n", sf)
	}
	className, err := cf.ClassName()
	if err != nil {
		return err
	}
	superName, err := cf.SuperClassName()
	if err != nil {
		return err
	}
	ifaces, err := cf.InterfaceNames()
	if err != nil {
		return err
	}
	decl := classAccessWords(cf.AccessFlags)
	decl += descriptor.FQCN(className)
	if superName != "" {
		decl += " extends " + descriptor.FQCN(superName)
	}
	if len(ifaces) > 0 {
		dotted := make([]string, len(ifaces))
		for i, n := range ifaces {
			dotted[i] = descriptor.FQCN(n)
		}
		decl += " implements " + strings.Join(dotted, ", ")
	}
	fmt.Fprintln(w, decl)
	fmt.Fprintf(w, "  minor version: %d\n", cf.MinorVersion)
	fmt.Fprintf(w, "  major version: %d\n\n", cf.MajorVersion)
	return nil
}

// classAccessWords renders class-level flags; "class" or "interface" is
// always the last word.
func classAccessWords(flags uint16) string {
	var words []string
	if flags&classfile.AccPublic != 0 {
		words = append(words, "public")
	}
	if flags&classfile.AccFinal != 0 {
		words = append(words, "final")
	}
	if flags&classfile.AccInterface != 0 {
		words = append(words, "interface")
	} else {
		if flags&classfile.AccAbstract != 0 {
			words = append(words, "abstract")
		}
		words = append(words, "class")
	}
	return strings.Join(words, " ") + " "
}

func memberAccessWords(flags uint16) string {
	var words []string
	if flags&classfile.AccPublic != 0 {
		words = append(words, "public")
	}
	if flags&classfile.AccPrivate != 0 {
		words = append(words, "private")
	}
	if flags&classfile.AccProtected != 0 {
		words = append(words, "protected")
	}
	if flags&classfile.AccStatic != 0 {
		words = append(words, "static")
	}
	if flags&classfile.AccFinal != 0 {
		words = append(words, "final")
	}
	if flags&classfile.AccVolatile != 0 {
		words = append(words, "volatile")
	}
	if flags&classfile.AccTransient != 0 {
		words = append(words, "transient")
	}
	if flags&classfile.AccNative != 0 {
		words = append(words, "native")
	}
	if flags&classfile.AccAbstract != 0 {
		words = append(words, "abstract")
	}
	if len(words) == 0 {
		return ""
	}
	return strings.Join(words, " ") + " "
}

func field(w io.Writer, cf *classfile.ClassFile, f *classfile.Field) error {
	name, err := f.Name(cf.Pool)
	if err != nil {
		return err
	}
	desc, err := f.Descriptor(cf.Pool)
	if err != nil {
		return err
	}
	typ, _, err := descriptor.Field(desc)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s%s %s;\n", memberAccessWords(f.AccessFlags), typ, name)
	fmt.Fprintf(w, "  Signature: %s\n\n", desc)
	return nil
}

func method(w io.Writer, cf *classfile.ClassFile, m *classfile.Method, className string) error {
	name, err := m.Name(cf.Pool)
	if err != nil {
		return err
	}
	desc, err := m.Descriptor(cf.Pool)
	if err != nil {
		return err
	}
	params, ret, err := descriptor.Method(desc)
	if err != nil {
		return err
	}
	var head string
	switch name {
	case "<clinit>":
		head = "static {}"
	case "<init>":
		head = memberAccessWords(m.AccessFlags) + className + "(" + strings.Join(params, ", ") + ")"
	default:
		head = memberAccessWords(m.AccessFlags) + ret + " " + name + "(" + strings.Join(params, ", ") + ")"
	}
	if throws := m.Exceptions(); len(throws) > 0 {
		names := make([]string, len(throws))
		for i, idx := range throws {
			n, err := cf.Pool.ClassNameAt(idx)
			if err != nil {
				return err
			}
			names[i] = descriptor.FQCN(n)
		}
		head += " throws " + strings.Join(names, ", ")
	}
	fmt.Fprintf(w, "%s;\n", head)
	fmt.Fprintf(w, "  Signature: %s\n", desc)
	if code := m.Code(); code != nil {
		argCount := len(params)
		if m.AccessFlags&classfile.AccStatic == 0 {
			argCount++
		}
		fmt.Fprintf(w, "  Code:\n   Stack=%d, Locals=%d, Args_size=%d\n", code.MaxStack, code.MaxLocals, argCount)
		if err := Code(w, cf.Pool, code); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	return nil
}

// Code disassembles one Code attribute: the instruction listing followed by
// the exception table when present.
func Code(w io.Writer, pool classfile.ConstantPool, code *classfile.CodeAttribute) error {
	err := bytecode.Walk(code.Code, func(ins bytecode.Instruction) error {
		return instruction(w, pool, ins)
	})
	if err != nil {
		return err
	}
	if len(code.ExceptionTable) > 0 {
		fmt.Fprintln(w, "  Exception table:")
		fmt.Fprintln(w, "   from   to  target type")
		for _, e := range code.ExceptionTable {
			typ := "any"
			if e.CatchType != 0 {
				name, err := pool.ClassNameAt(e.CatchType)
				if err != nil {
					return err
				}
				typ = "Class " + name
			}
			fmt.Fprintf(w, "  %4d  %4d  %4d   %s\n", e.StartPC, e.EndPC, e.HandlerPC, typ)
		}
	}
	return nil
}

func instruction(w io.Writer, pool classfile.ConstantPool, ins bytecode.Instruction) error {
	switch ins.Opcode {
	case bytecode.OpTableswitch:
		return tableswitch(w, ins)
	case bytecode.OpLookupswitch:
		return lookupswitch(w, ins)
	}
	mnemonic := ins.Mnemonic
	if ins.Wide {
		mnemonic = "wide " + mnemonic
	}
	fmt.Fprintf(w, "   %d:\t%s", ins.PC, mnemonic)
	var parts []string
	var suffix string
	for _, op := range ins.Operands {
		switch op.Kind {
		case bytecode.KindPoolIndex:
			parts = append(parts, fmt.Sprintf("#%d", op.Value))
			s, err := constComment(pool, uint16(op.Value))
			if err != nil {
				return err
			}
			suffix = s
		case bytecode.KindOffset:
			parts = append(parts, fmt.Sprintf("%d", ins.PC+int(op.Value)))
		case bytecode.KindArrayType:
			parts = append(parts, arrayTypeName(op.Value))
		default:
			parts = append(parts, fmt.Sprintf("%d", op.Value))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "\t%s", strings.Join(parts, ", "))
	}
	if suffix != "" {
		fmt.Fprintf(w, "; //%s", suffix)
	}
	fmt.Fprintln(w)
	return nil
}

// tableswitch prints the decoded header ints, then one absolute-pc line per
// case, then the default target.
func tableswitch(w io.Writer, ins bytecode.Instruction) error {
	def, low, high := ins.Operands[0].Value, ins.Operands[1].Value, ins.Operands[2].Value
	fmt.Fprintf(w, "   %d:\ttableswitch\tdefault: %d, low: %d, high: %d\n", ins.PC, ins.PC+int(def), low, high)
	for i, op := range ins.Operands[3:] {
		fmt.Fprintf(w, "\t\t%d: %d\n", low+int64(i), ins.PC+int(op.Value))
	}
	fmt.Fprintf(w, "\t\tdefault: %d\n", ins.PC+int(def))
	return nil
}

func lookupswitch(w io.Writer, ins bytecode.Instruction) error {
	def, npairs := ins.Operands[0].Value, ins.Operands[1].Value
	fmt.Fprintf(w, "   %d:\tlookupswitch\tdefault: %d, npairs: %d\n", ins.PC, ins.PC+int(def), npairs)
	for i := int64(0); i < npairs; i++ {
		match := ins.Operands[2+2*i].Value
		off := ins.Operands[3+2*i].Value
		fmt.Fprintf(w, "\t\t%d: %d\n", match, ins.PC+int(off))
	}
	fmt.Fprintf(w, "\t\tdefault: %d\n", ins.PC+int(def))
	return nil
}

// constComment renders the javap-style trailing comment for a pool operand.
func constComment(pool classfile.ConstantPool, i uint16) (string, error) {
	c, err := pool.Entry(i)
	if err != nil {
		return "", err
	}
	switch e := c.(type) {
	case *classfile.Class:
		name, err := pool.Utf8At(e.NameIndex)
		if err != nil {
			return "", err
		}
		return "class " + name, nil
	case *classfile.StringConst:
		s, err := pool.Utf8At(e.StringIndex)
		if err != nil {
			return "", err
		}
		return "String " + s, nil
	case *classfile.FieldRef:
		ref, err := pool.RefAt(i)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Field %s.%s:%s", ref.Class, ref.Name, ref.Descriptor), nil
	case *classfile.MethodRef:
		ref, err := pool.RefAt(i)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Method %s.%s:%s", ref.Class, ref.Name, ref.Descriptor), nil
	case *classfile.InterfaceMethodRef:
		ref, err := pool.RefAt(i)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("InterfaceMethod %s.%s:%s", ref.Class, ref.Name, ref.Descriptor), nil
	case *classfile.Integer:
		return fmt.Sprintf("int %d", e.Value), nil
	case *classfile.Float:
		return fmt.Sprintf("float %gf", e.Value), nil
	case *classfile.Long:
		return fmt.Sprintf("long %dl", e.Value), nil
	case *classfile.Double:
		return fmt.Sprintf("double %gd", e.Value), nil
	}
	return "", nil
}

var arrayTypeNames = map[int64]string{
	4:  "boolean",
	5:  "char",
	6:  "float",
	7:  "double",
	8:  "byte",
	9:  "short",
	10: "int",
	11: "long",
}

func arrayTypeName(code int64) string {
	if n, ok := arrayTypeNames[code]; ok {
		return n
	}
	return fmt.Sprintf("%d", code)
}
