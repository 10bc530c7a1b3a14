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

package sympipe

import (
	"fmt"
	"strings"

	"github.com/yodamaster/jnm/descriptor"
	"github.com/yodamaster/jnm/symbol"
)

// NormalDisplay renders "value kind name" with the value as eight hex
// digits, or nine spaces when the symbol has no value.
func NormalDisplay(r Row) Row {
	c := r.Sym.Kind.Char(r.Sym.Private)
	if r.Sym.Value != nil {
		r.Text = fmt.Sprintf("%08x %c %s", *r.Sym.Value, c, r.Sym.Name)
	} else {
		r.Text = fmt.Sprintf("%9s%c %s", "", c, r.Sym.Name)
	}
	return r
}

// NameOnly renders just the symbol name.
func NameOnly(r Row) Row {
	r.Text = r.Sym.Name
	return r
}

// PrependFilename prefixes the rendering with the row's origin label.
func PrependFilename(r Row) Row {
	r.Text = r.Label() + ": " + r.Text
	return r
}

// Demangle replaces the symbol name in the rendering with a human-readable
// signature built from the descriptor. Applying it twice is a no-op: once a
// symbol carries an expanded name the stage leaves it alone.
func Demangle(r Row) Row {
	if r.Sym.Expanded != "" || r.Sym.Descriptor == "" {
		return r
	}
	expanded, err := expand(r.Sym)
	if err != nil {
		return r
	}
	r.Text = strings.Replace(r.Text, r.Sym.Name, expanded, 1)
	r.Sym.Expanded = expanded
	return r
}

func expand(s symbol.Symbol) (string, error) {
	if strings.HasPrefix(s.Descriptor, "(") {
		params, ret, err := descriptor.Method(s.Descriptor)
		if err != nil {
			return "", err
		}
		return ret + " " + s.Name + "(" + strings.Join(params, ", ") + ")", nil
	}
	typ, _, err := descriptor.Field(s.Descriptor)
	if err != nil {
		return "", err
	}
	return typ + " " + s.Name, nil
}
