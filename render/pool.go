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
	"fmt"
	"io"

	"github.com/yodamaster/jnm/classfile"
)

// constantPool prints one "const #N = tag\tvalue" line per usable pool slot.
// Sentinel slots after Long and Double entries are skipped.
func constantPool(w io.Writer, pool classfile.ConstantPool) error {
	for i := 1; i < len(pool); i++ {
		if pool[i] == nil {
			continue
		}
		line, err := constLine(pool, uint16(i))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func constLine(pool classfile.ConstantPool, i uint16) (string, error) {
	c, err := pool.Entry(i)
	if err != nil {
		return "", err
	}
	switch e := c.(type) {
	case *classfile.Utf8:
		return fmt.Sprintf("const #%d = Asciz\t%s;", i, e.String()), nil
	case *classfile.Integer:
		return fmt.Sprintf("const #%d = int\t%d;", i, e.Value), nil
	case *classfile.Float:
		return fmt.Sprintf("const #%d = float\t%gf;", i, e.Value), nil
	case *classfile.Long:
		return fmt.Sprintf("const #%d = long\t%dl;", i, e.Value), nil
	case *classfile.Double:
		return fmt.Sprintf("const #%d = double\t%gd;", i, e.Value), nil
	case *classfile.Class:
		name, err := pool.Utf8At(e.NameIndex)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("const #%d = class\t#%d;\t//  %s", i, e.NameIndex, name), nil
	case *classfile.StringConst:
		s, err := pool.Utf8At(e.StringIndex)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("const #%d = String\t#%d;\t//  %s", i, e.StringIndex, s), nil
	case *classfile.FieldRef:
		return refLine(pool, i, "Field", e.ClassIndex, e.NameAndTypeIndex)
	case *classfile.MethodRef:
		return refLine(pool, i, "Method", e.ClassIndex, e.NameAndTypeIndex)
	case *classfile.InterfaceMethodRef:
		return refLine(pool, i, "InterfaceMethod", e.ClassIndex, e.NameAndTypeIndex)
	case *classfile.NameAndType:
		name, err := pool.Utf8At(e.NameIndex)
		if err != nil {
			return "", err
		}
		desc, err := pool.Utf8At(e.DescriptorIndex)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("const #%d = NameAndType\t#%d:#%d;//  %s:%s", i, e.NameIndex, e.DescriptorIndex, name, desc), nil
	}
	return "", fmt.Errorf("%w: tag %d", classfile.ErrBadConstantTag, c.Tag())
}

func refLine(pool classfile.ConstantPool, i uint16, kind string, classIdx, natIdx uint16) (string, error) {
	ref, err := pool.RefAt(i)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("const #%d = %s\t#%d.#%d;\t//  %s.%s:%s",
		i, kind, classIdx, natIdx, ref.Class, ref.Name, ref.Descriptor), nil
}
