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

package classpath

import (
	"sort"

	"github.com/yodamaster/jnm/symbol"
)

// Report is the resolution outcome for one input file's references,
// grouped by the package of the referenced class. A package maps to the
// ordered, deduplicated sources that supply its referenced classes; a
// package with no sources is unknown. Unresolved lists the individual
// symbol names that no index supplied.
type Report struct {
	Packages   map[string][]string
	Unresolved []string
}

// Resolve looks every reference up in the boot index first, then the user
// index, mirroring JVM loading order. Either index may be nil.
func Resolve(refs []symbol.Symbol, boot, user *Index) Report {
	rep := Report{Packages: make(map[string][]string)}
	seen := make(map[string]map[string]bool)
	for _, ref := range refs {
		cls := ref.ClassName()
		pkg := ref.Package()
		if seen[pkg] == nil {
			seen[pkg] = make(map[string]bool)
			rep.Packages[pkg] = nil
		}
		source, ok := lookup(cls, boot, user)
		if !ok {
			rep.Unresolved = append(rep.Unresolved, ref.Name)
			continue
		}
		if !seen[pkg][source] {
			seen[pkg][source] = true
			rep.Packages[pkg] = append(rep.Packages[pkg], source)
		}
	}
	return rep
}

func lookup(fqcn string, boot, user *Index) (string, bool) {
	if boot != nil {
		if s, ok := boot.Lookup(fqcn); ok {
			return s, true
		}
	}
	if user != nil {
		if s, ok := user.Lookup(fqcn); ok {
			return s, true
		}
	}
	return "", false
}

// PackageNames returns the report's packages in sorted order, for stable
// rendering.
func (r Report) PackageNames() []string {
	names := make([]string, 0, len(r.Packages))
	for pkg := range r.Packages {
		names = append(names, pkg)
	}
	sort.Strings(names)
	return names
}
