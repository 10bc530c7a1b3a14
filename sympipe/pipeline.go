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

// Package sympipe runs extracted symbols through a composable chain of
// filters, sorts, and display stages. Filters shrink the row set, sorts
// reorder it, and displays rewrite each row's rendered text. Stages always
// run in that order regardless of how the caller registered them.
package sympipe

import "github.com/yodamaster/jnm/symbol"

// Row is one symbol together with where it came from and its current
// rendering. Archive is empty for symbols read from a bare .class file.
type Row struct {
	Archive string
	Path    string
	Sym     symbol.Symbol
	Text    string
}

// Label names the row's origin the way it is shown to the user:
// the file path, or "jar(entry)" for archive members.
func (r Row) Label() string {
	if r.Archive != "" {
		return r.Archive + "(" + r.Path + ")"
	}
	return r.Path
}

// Filter removes rows. It sees the whole sequence because some filters
// need to know what is defined elsewhere in the input set.
type Filter func([]Row) []Row

// Sort reorders rows. Sorts must be stable.
type Sort func([]Row) []Row

// Display rewrites one row's Text from its previous value.
type Display func(Row) Row

// Pipeline is an ordered stage chain. The zero value is not usable;
// construct with New, which installs the always-on defaults.
type Pipeline struct {
	filters  []Filter
	sorts    []Sort
	initial  Display
	displays []Display
}

// New returns a pipeline with the default head stages: the ResolveClass
// filter and NormalDisplay as the initial rendering.
func New() *Pipeline {
	return &Pipeline{
		filters: []Filter{ResolveClass},
		initial: NormalDisplay,
	}
}

// AddFilter appends a filter stage.
func (p *Pipeline) AddFilter(f Filter) { p.filters = append(p.filters, f) }

// AddSort appends a sort stage.
func (p *Pipeline) AddSort(s Sort) { p.sorts = append(p.sorts, s) }

// AddDisplay appends a display stage.
func (p *Pipeline) AddDisplay(d Display) { p.displays = append(p.displays, d) }

// SetInitialDisplay replaces the stage that produces each row's first
// rendering.
func (p *Pipeline) SetInitialDisplay(d Display) { p.initial = d }

// Run filters, sorts, and renders rows. The input slice is not modified.
func (p *Pipeline) Run(rows []Row) []Row {
	for _, f := range p.filters {
		rows = f(rows)
	}
	for _, s := range p.sorts {
		rows = s(rows)
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		r = p.initial(r)
		for _, d := range p.displays {
			r = d(r)
		}
		out[i] = r
	}
	return out
}

// Rows pairs each symbol of one class with its origin.
func Rows(archive, path string, syms []symbol.Symbol) []Row {
	rows := make([]Row, len(syms))
	for i, s := range syms {
		rows[i] = Row{Archive: archive, Path: path, Sym: s}
	}
	return rows
}
