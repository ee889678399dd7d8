// Copyright 2025 The Arbre Authors.
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

// Command arbredump prints a host type's published component table as
// YAML. A host becomes dumpable by registering itself with the dump
// package from an init function in its own package; this binary only
// knows about whatever registrants its own import graph pulled in, so
// real users vendor this command's main package and add a blank import
// per host package they want to inspect.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.arbre.dev/arbre/dump"
)

var typeName = flag.String("type", "", "registered host name to dump, e.g. \"widgets.Foo\"")

func run() error {
	if *typeName == "" {
		return fmt.Errorf("arbredump: -type is required (known: %s)", strings.Join(dump.Names(), ", "))
	}

	table, ok := dump.Lookup(*typeName)
	if !ok {
		return fmt.Errorf("arbredump: no host registered as %q (known: %s)", *typeName, strings.Join(dump.Names(), ", "))
	}

	return dump.Dump(os.Stdout, table())
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
