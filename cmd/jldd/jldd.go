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

// The jldd command reports which classpath source supplies each package a
// class file depends on, in the manner of ldd(1).
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yodamaster/jnm/bootcp"
	"github.com/yodamaster/jnm/classpath"
	"github.com/yodamaster/jnm/cli"
	"github.com/yodamaster/jnm/future"
	"github.com/yodamaster/jnm/symbol"
)

var (
	classpathList     string
	bootclasspathList string
	resolveAll        bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "jldd [options] file[s]",
		Short: "jldd lists the classpath sources a class file depends on",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}
	f := cmd.Flags()
	f.StringVarP(&classpathList, "classpath", "c", "", "colon-separated jars and directories (default $CLASSPATH or \".\")")
	f.StringVarP(&bootclasspathList, "bootclasspath", "b", "", "colon-separated boot classpath (default: probe the installed JVM)")
	f.BoolVarP(&resolveAll, "resolve-all", "r", false, "resolve field and method references too, not just classes")
	cli.AddVerboseFlag(cmd)
	cli.Execute(cmd)
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	// Start the boot classpath probe first; it runs a JVM, which dwarfs the
	// cost of indexing the user classpath.
	var bootFut *future.Value[bootcp.Result]
	if bootclasspathList != "" {
		bootFut = future.Immediate(bootcp.Result{Paths: splitList(bootclasspathList)})
	} else {
		bootFut = bootcp.Background(context.Background())
	}

	if classpathList == "" {
		classpathList = os.Getenv("CLASSPATH")
	}
	if classpathList == "" {
		classpathList = "."
	}
	userIx := classpath.Build(splitList(classpathList))

	inputs, ok := cli.Load(args, os.Stderr)

	boot := bootFut.Get()
	if boot.Err != nil {
		fmt.Fprintf(os.Stderr, "%v (use --bootclasspath)\n", boot.Err)
		ok = false
	}
	bootIx := classpath.Build(boot.Paths)

	multi := len(inputs) > 1
	for _, in := range inputs {
		syms, err := symbol.Extract(in.Class)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", in.Label(), err)
			ok = false
			continue
		}
		var refs []symbol.Symbol
		for _, s := range syms {
			if s.Kind == symbol.RefClass || (resolveAll && !s.Kind.Defined()) {
				refs = append(refs, s)
			}
		}
		rep := classpath.Resolve(refs, bootIx, userIx)
		if multi {
			fmt.Printf("%s:\n", in.Label())
		}
		for _, pkg := range rep.PackageNames() {
			sources := rep.Packages[pkg]
			if len(sources) == 0 {
				fmt.Printf("\t %s => ???\n", pkg)
			} else {
				fmt.Printf("\t %s => %s\n", pkg, strings.Join(sources, ", "))
			}
		}
		if len(rep.Unresolved) > 0 {
			ok = false
			fmt.Println("Failed to resolve:")
			for _, name := range rep.Unresolved {
				fmt.Printf("\t %s\n", name)
			}
		}
	}
	if !ok {
		os.Exit(cli.ExitIncomplete)
	}
	return nil
}

func splitList(list string) []string {
	var out []string
	for _, p := range strings.Split(list, ":") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
