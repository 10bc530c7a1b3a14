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

package cli

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var minimalClass = []byte{
	0xCA, 0xFE, 0xBA, 0xBE,
	0x00, 0x00, 0x00, 0x32,
	0x00, 0x01,
	0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
	0x00, 0x01, 0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
}

func TestLoadClassFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A.class")
	require.NoError(t, os.WriteFile(path, minimalClass, 0600))

	var stderr bytes.Buffer
	inputs, ok := Load([]string{path}, &stderr)
	require.True(t, ok, "stderr: %s", stderr.String())
	require.Len(t, inputs, 1)
	assert.Equal(t, path, inputs[0].Path)
	assert.Empty(t, inputs[0].Archive)
	assert.NotNil(t, inputs[0].Class)
	assert.Equal(t, path, inputs[0].Label())
}

func TestLoadJar(t *testing.T) {
	jarPath := filepath.Join(t.TempDir(), "lib.jar")
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range []string{"p/A.class", "p/B.class"} {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(minimalClass)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(jarPath, buf.Bytes(), 0600))

	var stderr bytes.Buffer
	inputs, ok := Load([]string{jarPath}, &stderr)
	require.True(t, ok, "stderr: %s", stderr.String())
	require.Len(t, inputs, 2)
	assert.Equal(t, jarPath, inputs[0].Archive)
	assert.Equal(t, "p/A.class", inputs[0].Path)
	assert.Equal(t, jarPath+"(p/A.class)", inputs[0].Label())
}

func TestLoadReportsAndContinues(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "Good.class")
	require.NoError(t, os.WriteFile(good, minimalClass, 0600))
	bad := filepath.Join(dir, "Bad.class")
	require.NoError(t, os.WriteFile(bad, []byte{0x00, 0x01}, 0600))
	missing := filepath.Join(dir, "Gone.class")

	var stderr bytes.Buffer
	inputs, ok := Load([]string{bad, missing, good}, &stderr)
	assert.False(t, ok)
	require.Len(t, inputs, 1)
	assert.Equal(t, good, inputs[0].Path)
	assert.Contains(t, stderr.String(), bad)
	assert.Contains(t, stderr.String(), missing)
}
