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

// Package cli provides the plumbing shared by the jdump, jnm, and jldd
// front-ends: argument expansion into parsed classes, error reporting, and
// the common exit code convention.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yodamaster/jnm/classfile"
	"github.com/yodamaster/jnm/jar"
	"github.com/yodamaster/jnm/vlog"
)

// Exit codes shared by the three tools.
const (
	ExitOK = 0
	// ExitIncomplete means the run finished but some inputs were missing,
	// failed to parse, or did not resolve.
	ExitIncomplete = 1
	ExitUsage      = 2
)

// Input is one class to process, with its origin. Archive is empty for
// classes read from bare .class files.
type Input struct {
	Archive string
	Path    string
	Class   *classfile.ClassFile
}

// Load expands args into parsed classes: a .jar argument contributes one
// Input per class entry, anything else is read as a single class file.
// Unreadable or unparsable inputs are reported to stderr and skipped; ok is
// false if any were.
func Load(args []string, stderr io.Writer) (inputs []Input, ok bool) {
	ok = true
	for _, arg := range args {
		if strings.HasSuffix(arg, ".jar") {
			entries, err := jar.Classes(arg)
			if err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", arg, err)
				ok = false
				continue
			}
			for _, e := range entries {
				if e.Err != nil {
					fmt.Fprintf(stderr, "%s(%s): %v\n", arg, e.Name, e.Err)
					ok = false
					continue
				}
				inputs = append(inputs, Input{Archive: arg, Path: e.Name, Class: e.Class})
			}
			continue
		}
		cf, err := classfile.ParseFile(arg)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", arg, err)
			ok = false
			continue
		}
		inputs = append(inputs, Input{Path: arg, Class: cf})
	}
	return inputs, ok
}

// Label names an input the way it is shown in per-file prologs.
func (in Input) Label() string {
	if in.Archive != "" {
		return in.Archive + "(" + in.Path + ")"
	}
	return in.Path
}

// AddVerboseFlag registers the -v/--verbose counted flag, wired to vlog.
func AddVerboseFlag(cmd *cobra.Command) {
	var level int
	cmd.PersistentFlags().CountVarP(&level, "verbose", "v", "increase verbose logging level")
	existing := cmd.PersistentPreRun
	cmd.PersistentPreRun = func(c *cobra.Command, args []string) {
		vlog.Level = level
		if existing != nil {
			existing(c, args)
		}
	}
}

// Execute runs cmd and maps its outcome to the exit code convention:
// unknown options exit 1, other usage errors exit 2. It does not return on
// error.
func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(ExitOK)
		}
		msg := err.Error()
		if strings.HasPrefix(msg, "unknown flag") || strings.HasPrefix(msg, "unknown shorthand flag") {
			os.Exit(ExitIncomplete)
		}
		os.Exit(ExitUsage)
	}
}
