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

package arbre

import (
	"reflect"
	"sync"

	"go.arbre.dev/arbre/internal/dbg"
)

// registryEntry lazily builds and memoizes exactly one *RawVTable, however
// many goroutines race to build it first.
type registryEntry struct {
	once  sync.Once
	table *RawVTable
}

var registry sync.Map // reflect.Type -> *registryEntry

// TableFor returns the lazily-constructed table for host type H, invoking
// build exactly once across the process regardless of how many goroutines
// call TableFor[H] concurrently before the first build completes.
//
// TableFor exists for hosts assembled purely through the manual builder
// API at runtime — e.g. a plugin-provided component set whose layout isn't
// known until after the program starts. Generated HasTable.Table
// implementations do not use TableFor; each gets the "construct once"
// guarantee from its own package-level sync.OnceValue.
func TableFor[H any](build func() (*RawVTable, error)) *RawVTable {
	t := reflect.TypeFor[H]()
	v, _ := registry.LoadOrStore(t, &registryEntry{})
	e := v.(*registryEntry)

	e.once.Do(func() {
		table, err := build()
		if err != nil {
			panic("arbre: TableFor[" + t.String() + "]: " + err.Error())
		}
		dbg.Log(nil, "TableFor", "built table for %s: %d entries", t, table.Len())
		e.table = table
	})
	return e.table
}
