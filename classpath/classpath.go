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

// Package classpath indexes jar files and class directories and resolves
// class references against them.
package classpath

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yodamaster/jnm/jar"
	"github.com/yodamaster/jnm/vlog"
)

// Index maps fully-qualified dotted class names to the source that supplies
// them: the path of a jar file or of a top-level class directory. The first
// source to supply a name wins, which gives classpath entries their usual
// left-to-right precedence.
type Index struct {
	classes map[string]string
	jars    map[string]bool
}

// New returns an empty index.
func New() *Index {
	return &Index{
		classes: make(map[string]string),
		jars:    make(map[string]bool),
	}
}

// Build indexes the given sources in order. Sources that cannot be read are
// skipped; an incomplete classpath shows up later as unresolved classes,
// which is more useful than aborting the run.
func Build(sources []string) *Index {
	ix := New()
	for _, s := range sources {
		if err := ix.Add(s); err != nil {
			vlog.V(1).Printf("skipping classpath entry %s: %v", s, err)
		}
	}
	return ix
}

// Add indexes one source, dispatching on whether it is a directory or a jar.
func (ix *Index) Add(source string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ix.AddDir(source)
	}
	return ix.AddJar(source)
}

// AddJar indexes the class entries of one jar, then any jars named by its
// manifest's Class-Path attribute. Jars already indexed are not revisited.
func (ix *Index) AddJar(path string) error {
	if ix.jars[path] {
		return nil
	}
	ix.jars[path] = true
	names, err := jar.ClassNames(path)
	if err != nil {
		return err
	}
	for _, fqcn := range names {
		ix.put(fqcn, path)
	}
	ext, err := jar.ClassPathExtension(path)
	if err != nil {
		return err
	}
	for _, dep := range ext {
		if err := ix.Add(dep); err != nil {
			vlog.V(1).Printf("skipping manifest Class-Path entry %s: %v", dep, err)
		}
	}
	return nil
}

// AddDir indexes every .class file under root, naming classes by their
// path relative to root.
func (ix *Index) AddDir(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".class") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		fqcn := strings.ReplaceAll(filepath.ToSlash(strings.TrimSuffix(rel, ".class")), "/", ".")
		ix.put(fqcn, root)
		return nil
	})
}

func (ix *Index) put(fqcn, source string) {
	if _, ok := ix.classes[fqcn]; !ok {
		ix.classes[fqcn] = source
	}
}

// Lookup returns the source supplying fqcn.
func (ix *Index) Lookup(fqcn string) (string, bool) {
	s, ok := ix.classes[fqcn]
	return s, ok
}

// Len returns the number of indexed classes.
func (ix *Index) Len() int {
	return len(ix.classes)
}
