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

// Package bootcp discovers the JVM boot classpath by running a bundled
// helper jar under the installed java binary.
package bootcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/yodamaster/jnm/future"
	"github.com/yodamaster/jnm/vlog"
)

// darwinFallback is the boot classpath of the Apple-shipped Java 6 runtime,
// used when the probe fails on Darwin.
var darwinFallback = func() []string {
	const dir = "/System/Library/Java/JavaVirtualMachines/1.6.0.jdk/Contents/Classes/"
	names := []string{"jsfd", "classes", "ui", "laf", "sunrsasign", "jsse", "jce", "charsets"}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = dir + n + ".jar"
	}
	return paths
}()

// Result carries the outcome of a boot classpath probe.
type Result struct {
	Paths []string
	Err   error
}

// Background starts Detect concurrently and returns a future for its
// result, so callers can index the user classpath while java starts up.
func Background(ctx context.Context) *future.Value[Result] {
	return future.New(func() Result {
		paths, err := Detect(ctx)
		return Result{Paths: paths, Err: err}
	})
}

// Detect probes the installed JVM for its boot classpath. On Darwin a
// failed probe falls back to the Apple system runtime's known jar list;
// elsewhere the error is returned and the caller must ask the user for an
// explicit boot classpath.
func Detect(ctx context.Context) ([]string, error) {
	paths, err := Probe(ctx)
	if err == nil {
		return paths, nil
	}
	vlog.V(1).Printf("boot classpath probe failed: %v", err)
	if runtime.GOOS == "darwin" {
		return darwinFallback, nil
	}
	return nil, fmt.Errorf("cannot determine boot classpath: %v", err)
}

// Probe materializes the helper jar to a temporary file, runs
// "java -jar" on it, and parses the report it prints. The temporary file
// is removed whether or not the probe succeeds.
func Probe(ctx context.Context) ([]string, error) {
	jar, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(helperJarBase64, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decoding helper jar: %v", err)
	}
	tmp, err := os.CreateTemp("", "bootcp-*.jar")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(jar); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	out, err := exec.CommandContext(ctx, "java", "-jar", tmp.Name()).Output()
	if err != nil {
		return nil, fmt.Errorf("running java: %v", err)
	}
	paths := ParseReport(string(out))
	if paths == nil {
		return nil, fmt.Errorf("helper output carried no Boot-Class-Path line:\n%s", out)
	}
	return paths, nil
}

// ParseReport extracts the boot classpath from the helper's output:
// a "Boot-Class-Path: <paths>" line split on the separator from an
// optional "Class-Path-Separator: <char>" line (default ":").
func ParseReport(out string) []string {
	sep := ":"
	var joined string
	var found bool
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if v, ok := strings.CutPrefix(line, "Boot-Class-Path: "); ok {
			joined = v
			found = true
		} else if v, ok := strings.CutPrefix(line, "Class-Path-Separator: "); ok && v != "" {
			sep = v[:1]
		}
	}
	if !found {
		return nil
	}
	var paths []string
	for _, p := range strings.Split(joined, sep) {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
