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

// Package descriptor parses and renders JVM type descriptors: the terse
// encodings like "I", "[Ljava/lang/String;" and "(IJ)V" that class files use
// for field and method types.
package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadDescriptor is returned on any ill-formed descriptor.
var ErrBadDescriptor = errors.New("bad descriptor")

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// baseSizes is the on-heap byte size of each base type.
var baseSizes = map[byte]uint64{
	'B': 1,
	'Z': 1,
	'C': 2,
	'S': 2,
	'F': 4,
	'I': 4,
	'D': 8,
	'J': 8,
}

// pointerSize is the byte size charged for reference and array fields.
// It is set once by the CLI front-end (--m32/--m64) before any extraction.
var pointerSize uint64 = 8

// SetPointerSize sets the byte size of reference and array fields; n must be
// 4 or 8.
func SetPointerSize(n int) error {
	if n != 4 && n != 8 {
		return fmt.Errorf("pointer size must be 4 or 8, got %d", n)
	}
	pointerSize = uint64(n)
	return nil
}

// PointerSize returns the current reference field size in bytes.
func PointerSize() int {
	return int(pointerSize)
}

// Field demangles one field descriptor at the start of s. It returns the
// human-readable type ("java.lang.String", "int[][]") and the number of
// bytes of s consumed.
func Field(s string) (string, int, error) {
	dims := 0
	i := 0
	for i < len(s) && s[i] == '[' {
		dims++
		i++
	}
	if i >= len(s) {
		return "", 0, fmt.Errorf("%w: %q", ErrBadDescriptor, s)
	}
	var typ string
	switch c := s[i]; {
	case baseTypes[c] != "":
		typ = baseTypes[c]
		i++
	case c == 'L':
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			return "", 0, fmt.Errorf("%w: unterminated class type in %q", ErrBadDescriptor, s)
		}
		typ = FQCN(s[i+1 : i+end])
		i += end + 1
	default:
		return "", 0, fmt.Errorf("%w: unknown type character %q in %q", ErrBadDescriptor, c, s)
	}
	return typ + strings.Repeat("[]", dims), i, nil
}

// Method demangles a method descriptor into its parameter type renderings
// and its return type rendering. The return type may be "void".
func Method(s string) (params []string, ret string, err error) {
	if len(s) == 0 || s[0] != '(' {
		return nil, "", fmt.Errorf("%w: method descriptor %q does not start with '('", ErrBadDescriptor, s)
	}
	i := 1
	params = []string{}
	for i < len(s) && s[i] != ')' {
		typ, n, err := Field(s[i:])
		if err != nil {
			return nil, "", err
		}
		params = append(params, typ)
		i += n
	}
	if i >= len(s) {
		return nil, "", fmt.Errorf("%w: method descriptor %q has no ')'", ErrBadDescriptor, s)
	}
	i++ // ')'
	if i >= len(s) {
		return nil, "", fmt.Errorf("%w: method descriptor %q has no return type", ErrBadDescriptor, s)
	}
	if s[i] == 'V' {
		if i+1 != len(s) {
			return nil, "", fmt.Errorf("%w: trailing characters in %q", ErrBadDescriptor, s)
		}
		return params, "void", nil
	}
	ret, n, err := Field(s[i:])
	if err != nil {
		return nil, "", err
	}
	if i+n != len(s) {
		return nil, "", fmt.Errorf("%w: trailing characters in %q", ErrBadDescriptor, s)
	}
	return params, ret, nil
}

// Size returns the byte size of a field of the given descriptor. References
// and arrays are charged the configured pointer size; the size therefore
// depends only on the first character after any '[' prefix.
func Size(s string) (uint64, error) {
	i := 0
	for i < len(s) && s[i] == '[' {
		i++
	}
	if i >= len(s) {
		return 0, fmt.Errorf("%w: %q", ErrBadDescriptor, s)
	}
	if i > 0 {
		return pointerSize, nil
	}
	if s[i] == 'L' {
		return pointerSize, nil
	}
	if n, ok := baseSizes[s[i]]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: unknown type character %q in %q", ErrBadDescriptor, s[i], s)
}

// FQCN converts an internal slash-form class name, optionally wrapped in
// "L...;", to dotted form.
func FQCN(s string) string {
	if strings.HasPrefix(s, "L") && strings.HasSuffix(s, ";") {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, "/", ".")
}
