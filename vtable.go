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
	"go.arbre.dev/arbre/internal/phash"
)

// RawVTable is the untyped, type-erased dispatch table underlying every
// component table: a perfect-hash map from a [RawKey] to the
// [FieldDescriptor] that projects a host's address to that component.
//
// RawVTable is immutable once built and is therefore safe to share across
// goroutines and to stash in a package-level var produced once, lazily, by
// [registry].
type RawVTable struct {
	fields *phash.Map[FieldDescriptor]
}

// lookup returns the descriptor registered for k, or (_, false) if the
// table does not expose a component under k.
func (t *RawVTable) lookup(k RawKey) (FieldDescriptor, bool) {
	if t == nil || t.fields == nil {
		return FieldDescriptor{}, false
	}
	d, ok := t.fields.Get(uint64(k))
	if d == nil {
		return FieldDescriptor{}, false
	}
	return *d, ok
}

// Len returns the number of components exposed by the table.
func (t *RawVTable) Len() int {
	if t == nil || t.fields == nil {
		return 0
	}
	return t.fields.Len()
}

// Cap returns the number of buckets backing the table.
func (t *RawVTable) Cap() int {
	if t == nil || t.fields == nil {
		return 0
	}
	return t.fields.Cap()
}

// All iterates the table's (key, descriptor) pairs, in unspecified but
// deterministic order. Chiefly useful for diagnostics (see cmd/arbredump).
func (t *RawVTable) All(yield func(RawKey, FieldDescriptor) bool) {
	if t == nil || t.fields == nil {
		return
	}
	for k, d := range t.fields.All() {
		if !yield(RawKey(k), d) {
			return
		}
	}
}
