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

// keep returns the rows satisfying pred, preserving order.
func keep(rows []Row, pred func(Row) bool) []Row {
	var out []Row
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// ResolveClass drops references whose target is defined in the same class
// file. It is the always-on head filter: self-references inside one class
// carry no information for a symbol listing.
func ResolveClass(rows []Row) []Row {
	defined := make(map[string]map[string]bool)
	for _, r := range rows {
		if !r.Sym.Kind.Defined() {
			continue
		}
		key := r.Label()
		if defined[key] == nil {
			defined[key] = make(map[string]bool)
		}
		defined[key][r.Sym.Name] = true
	}
	return keep(rows, func(r Row) bool {
		return r.Sym.Kind.Defined() || !defined[r.Label()][r.Sym.Name]
	})
}

// ResolveAll drops references whose target is defined anywhere in the
// input set, across all files and archive entries.
func ResolveAll(rows []Row) []Row {
	defined := make(map[string]bool)
	for _, r := range rows {
		if r.Sym.Kind.Defined() {
			defined[r.Sym.Name] = true
		}
	}
	return keep(rows, func(r Row) bool {
		return r.Sym.Kind.Defined() || !defined[r.Sym.Name]
	})
}

// RemoveDefined keeps only references.
func RemoveDefined(rows []Row) []Row {
	return keep(rows, func(r Row) bool { return !r.Sym.Kind.Defined() })
}

// RemoveUndefined keeps only definitions.
func RemoveUndefined(rows []Row) []Row {
	return keep(rows, func(r Row) bool { return r.Sym.Kind.Defined() })
}

// RemovePrivate drops symbols whose originating access flags had
// ACC_PRIVATE set.
func RemovePrivate(rows []Row) []Row {
	return keep(rows, func(r Row) bool { return !r.Sym.Private })
}

// RemoveNonclass keeps only class definitions and class references.
func RemoveNonclass(rows []Row) []Row {
	return keep(rows, func(r Row) bool { return r.Sym.Kind.IsClass() })
}
