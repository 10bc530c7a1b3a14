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

// Package jar reads class files and manifests out of jar archives.
package jar

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yodamaster/jnm/classfile"
)

// ErrBadArchive is returned when a jar cannot be opened as a ZIP archive.
// Per-entry class parse failures are not archive failures; they are reported
// on the entry.
var ErrBadArchive = errors.New("bad archive")

// Entry is one .class member of a jar. Exactly one of Class and Err is set.
type Entry struct {
	Name  string
	Class *classfile.ClassFile
	Err   error
}

// Classes parses every .class entry of the jar named fileName, in archive
// order. A member that fails to parse yields an Entry with Err set and the
// iteration continues.
func Classes(fileName string) ([]Entry, error) {
	r, err := zip.OpenReader(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadArchive, fileName, err)
	}
	defer r.Close()

	var entries []Entry
	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		data, err := readMember(f)
		if err != nil {
			entries = append(entries, Entry{Name: f.Name, Err: err})
			continue
		}
		cf, err := classfile.Parse(data)
		if err != nil {
			entries = append(entries, Entry{Name: f.Name, Err: err})
			continue
		}
		entries = append(entries, Entry{Name: f.Name, Class: cf})
	}
	return entries, nil
}

// ClassNames returns the fully-qualified dotted names of the class entries
// in the jar named fileName, in archive order, without parsing their bodies.
func ClassNames(fileName string) ([]string, error) {
	r, err := zip.OpenReader(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadArchive, fileName, err)
	}
	defer r.Close()

	var result []string
	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		c := strings.Replace(strings.TrimSuffix(f.Name, ".class"), "/", ".", -1)
		result = append(result, c)
	}
	return result, nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening jar member %s:\n%v", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
