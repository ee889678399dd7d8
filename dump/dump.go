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

// Package dump renders a host's published component table as YAML, for
// debugging what a host actually exposes — the Arbre analogue of the
// teacher's internal/tools/hyperdump, which dumps a compiled protobuf
// Type's field layout instead of a Go struct's.
package dump

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"go.arbre.dev/arbre"
)

// registered maps a -type name (conventionally "pkg.Host") to a thunk
// producing that host's already-built table. Go has no way to look up an
// arbitrary compiled-in type by name at runtime, so a package that wants
// its hosts dumpable calls Register from an init function; cmd/arbredump
// discovers registrants through blank imports, the same shape as
// database/sql driver registration.
var registered = map[string]func() *arbre.RawVTable{}

// Register associates name with a thunk producing a host type's table.
func Register(name string, table func() *arbre.RawVTable) {
	registered[name] = table
}

// Lookup returns the thunk registered under name, or nil if none was.
func Lookup(name string) (func() *arbre.RawVTable, bool) {
	t, ok := registered[name]
	return t, ok
}

// Names returns every registered name, sorted, for an error message
// suggesting alternatives.
func Names() []string {
	names := make([]string, 0, len(registered))
	for n := range registered {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// entry is one row of a table's YAML rendering.
type entry struct {
	Key    string  `yaml:"key"`
	Offset uintptr `yaml:"offset"`
	Kind   string  `yaml:"kind"`
}

// Dump renders table's entries as YAML to w, sorted by key for a stable
// diff-friendly rendering (RawVTable.All otherwise iterates in unspecified
// bucket order).
func Dump(w io.Writer, table *arbre.RawVTable) error {
	var entries []entry
	table.All(func(k arbre.RawKey, d arbre.FieldDescriptor) bool {
		entries = append(entries, entry{
			Key:    fmt.Sprintf("%#x", uint64(k)),
			Offset: d.Offset(),
			Kind:   d.Kind(),
		})
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(entries)
}
