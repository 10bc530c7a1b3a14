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

package jar

import (
	"archive/zip"
	"fmt"
	"path/filepath"
	"strings"
)

const manifestPath = "META-INF/MANIFEST.MF"

// Manifest returns the main-section attributes of the jar's manifest.
// A jar without a manifest yields an empty map, not an error.
func Manifest(fileName string) (map[string]string, error) {
	r, err := zip.OpenReader(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadArchive, fileName, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != manifestPath {
			continue
		}
		data, err := readMember(f)
		if err != nil {
			return nil, err
		}
		return ParseManifest(string(data)), nil
	}
	return map[string]string{}, nil
}

// ParseManifest parses the main section of a manifest: "Name: Value" lines
// where a line starting with a single space continues the previous value.
// Parsing stops at the first blank line; per-entry sections carry nothing
// the tools need.
func ParseManifest(text string) map[string]string {
	attrs := make(map[string]string)
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var name, value string
	flush := func() {
		if name != "" {
			attrs[name] = value
		}
		name, value = "", ""
	}
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			value += line[1:]
			continue
		}
		flush()
		if i := strings.Index(line, ": "); i >= 0 {
			name, value = line[:i], line[i+2:]
		}
	}
	flush()
	return attrs
}

// ClassPathExtension returns the jars named by the manifest's Class-Path
// attribute, resolved relative to the jar's own directory. Jars without the
// attribute yield nil.
func ClassPathExtension(fileName string) ([]string, error) {
	attrs, err := Manifest(fileName)
	if err != nil {
		return nil, err
	}
	cp := attrs["Class-Path"]
	if cp == "" {
		return nil, nil
	}
	dir := filepath.Dir(fileName)
	var paths []string
	for _, rel := range strings.Fields(cp) {
		paths = append(paths, filepath.Join(dir, rel))
	}
	return paths, nil
}
