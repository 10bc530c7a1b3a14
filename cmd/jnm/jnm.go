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

// The jnm command lists the symbols defined and referenced by JVM class
// files and jars, in the manner of nm(1).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yodamaster/jnm/cli"
	"github.com/yodamaster/jnm/descriptor"
	"github.com/yodamaster/jnm/symbol"
	"github.com/yodamaster/jnm/sympipe"
)

var (
	noSort      bool
	numericSort bool
	reverseSort bool
	alphaSort   bool

	undefinedOnly bool
	definedOnly   bool
	externOnly    bool
	classOnly     bool
	flatten       bool

	printFileName bool
	symbolsOnly   bool
	demangle      bool

	m32 bool
	m64 bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "jnm [options] file[s]",
		Short: "jnm lists symbols in JVM class and jar files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}
	f := cmd.Flags()
	f.BoolVarP(&noSort, "no-sort", "p", false, "keep symbols in discovery order (default)")
	f.BoolVarP(&numericSort, "numeric-sort", "n", false, "sort symbols by value; valueless symbols last")
	f.BoolVarP(&reverseSort, "reverse-sort", "r", false, "reverse the final order")
	f.BoolVarP(&alphaSort, "alpha-sort", "a", false, "sort symbols by name")
	f.BoolVarP(&undefinedOnly, "undefined-only", "u", false, "show only referenced symbols")
	f.BoolVarP(&definedOnly, "defined-only", "U", false, "show only defined symbols")
	f.BoolVarP(&externOnly, "extern-only", "g", false, "hide private symbols")
	f.BoolVarP(&classOnly, "class-only", "c", false, "show only class symbols")
	f.BoolVarP(&flatten, "flatten", "f", false, "drop references resolved anywhere in the input set")
	f.BoolVarP(&printFileName, "print-file-name", "A", false, "prefix each line with its input file")
	f.BoolVarP(&symbolsOnly, "symbols-only", "j", false, "print symbol names only")
	f.BoolVarP(&demangle, "demangle", "C", false, "print demangled signatures")
	f.BoolVar(&m32, "m32", false, "charge references and arrays 4 bytes")
	f.BoolVar(&m64, "m64", false, "charge references and arrays 8 bytes (default)")
	cli.AddVerboseFlag(cmd)
	cli.Execute(cmd)
}

func run(cmd *cobra.Command, args []string) error {
	if m32 && m64 {
		return fmt.Errorf("--m32 and --m64 are mutually exclusive")
	}
	if m32 {
		if err := descriptor.SetPointerSize(4); err != nil {
			return err
		}
	}
	cmd.SilenceUsage = true

	inputs, ok := cli.Load(args, os.Stderr)

	p := sympipe.New()
	if flatten {
		p.AddFilter(sympipe.ResolveAll)
	}
	if undefinedOnly {
		p.AddFilter(sympipe.RemoveDefined)
	}
	if definedOnly {
		p.AddFilter(sympipe.RemoveUndefined)
	}
	if externOnly {
		p.AddFilter(sympipe.RemovePrivate)
	}
	if classOnly {
		p.AddFilter(sympipe.RemoveNonclass)
	}
	switch {
	case numericSort:
		p.AddSort(sympipe.Numeric)
	case alphaSort:
		p.AddSort(sympipe.Alphabetic)
	}
	if reverseSort {
		p.AddSort(sympipe.Reverse)
	}
	if symbolsOnly {
		p.SetInitialDisplay(sympipe.NameOnly)
	}
	if demangle {
		p.AddDisplay(sympipe.Demangle)
	}
	if printFileName {
		p.AddDisplay(sympipe.PrependFilename)
	}

	var rows []sympipe.Row
	for _, in := range inputs {
		syms, err := symbol.Extract(in.Class)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", in.Label(), err)
			ok = false
			continue
		}
		rows = append(rows, sympipe.Rows(in.Archive, in.Path, syms)...)
	}

	multi := len(inputs) > 1 && !printFileName
	lastLabel := ""
	for _, r := range p.Run(rows) {
		if multi && r.Label() != lastLabel {
			fmt.Printf("\n%s:\n", r.Label())
			lastLabel = r.Label()
		}
		fmt.Println(r.Text)
	}
	if !ok {
		os.Exit(cli.ExitIncomplete)
	}
	return nil
}
