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

import "sort"

// NoSort leaves rows in discovery order.
func NoSort(rows []Row) []Row { return rows }

// Alphabetic sorts rows by symbol name, stably.
func Alphabetic(rows []Row) []Row {
	out := append([]Row(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sym.Name < out[j].Sym.Name
	})
	return out
}

// Numeric sorts rows by symbol value, stably. Rows with no value sort
// after all valued rows.
func Numeric(rows []Row) []Row {
	out := append([]Row(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := out[i].Sym.Value, out[j].Sym.Value
		switch {
		case vi == nil:
			return false
		case vj == nil:
			return true
		default:
			return *vi < *vj
		}
	})
	return out
}

// Reverse reverses the current order.
func Reverse(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}
