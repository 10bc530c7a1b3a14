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

// The jdump command prints JVM class files in a javap-like textual form:
// constant pool, signatures, and disassembled bytecode.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yodamaster/jnm/cli"
	"github.com/yodamaster/jnm/render"
)

func main() {
	cmd := &cobra.Command{
		Use:   "jdump file[s]",
		Short: "jdump disassembles JVM class files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}
	cli.AddVerboseFlag(cmd)
	cli.Execute(cmd)
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	inputs, ok := cli.Load(args, os.Stderr)
	multi := len(inputs) > 1
	for i, in := range inputs {
		if multi {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s:\n", in.Label())
		}
		if err := render.Class(os.Stdout, in.Class); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", in.Label(), err)
			ok = false
		}
	}
	if !ok {
		os.Exit(cli.ExitIncomplete)
	}
	return nil
}
