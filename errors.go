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
	"errors"
	"fmt"

	"go.arbre.dev/arbre/internal/phash"
)

// ErrZeroKey is returned when a RawKey of zero reaches the builder; zero is
// reserved for phash's empty-bucket sentinel and can never be published.
var ErrZeroKey = phash.ErrZeroKey

// ErrDuplicateKey is returned by expose/extends/expand/merge when a RawKey
// is already present in the builder.
var ErrDuplicateKey = errors.New("arbre: duplicate component key")

// ErrMetaMismatch is returned by extends when field itself is not a plain
// sized descriptor (i.e. it was built by FieldOfIface, not FieldOf).
// Rebasing a sub-table's entries through field only does the right thing
// when field is a flat offset from Host's address to sub's address; a
// field exposed through an interface has no such address of its own — its
// data pointer only exists once the interface value itself is
// reconstructed — so splicing through one would silently widen every
// rebased entry's offset against the wrong base.
var ErrMetaMismatch = errors.New("arbre: cannot extend through a field exposed via FieldOfIface")

// ErrTableTooFull is returned by Build when the perfect-hash search could
// not find a disjoint multiplier for the accumulated entries.
type ErrTableTooFull = phash.ErrTableTooFull

// MustBuild calls Build and panics if it returns an error, for parity with
// the generated codegen path (which treats a construction failure as a
// compile-time panic) and with FetchKey's panic-on-miss sibling.
func MustBuild[Host, Root any](b *VTableBuilder[Host, Root]) *RawVTable {
	t, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("arbre: MustBuild: %v", err))
	}
	return t
}
