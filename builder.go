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
	"fmt"

	"go.arbre.dev/arbre/internal/dbg"
	"go.arbre.dev/arbre/internal/phash"
)

// maxComponents bounds how many entries a single VTableBuilder may
// accumulate. The builder is linear-scanned on every expose/extends call
// (see entry), which is only acceptable because a host's own component
// count is small; this is the Go rendition of the original's
// "MAX_COMPONENTS, order of 16" capacity note.
const maxComponents = 64

// VTableBuilder accumulates (RawKey, FieldDescriptor) pairs for a host type
// Host whose ultimate Root type (the type ComponentRef.Root downcasts to)
// is Root. Host and Root coincide unless this builder's table is itself
// being spliced into some larger host via extends.
//
// The zero VTableBuilder is ready to use.
type VTableBuilder[Host, Root any] struct {
	pairs []phash.Pair[FieldDescriptor]
}

// NewBuilder returns an empty VTableBuilder for Host, rooted at Root.
func NewBuilder[Host, Root any]() *VTableBuilder[Host, Root] {
	return &VTableBuilder[Host, Root]{}
}

func (b *VTableBuilder[Host, Root]) indexOf(key RawKey) int {
	for i, p := range b.pairs {
		if p.Key == uint64(key) {
			return i
		}
	}
	return -1
}

// Expose appends (key, d) to the builder. It is an error for key to already
// be present, or for key to be zero.
func (b *VTableBuilder[Host, Root]) Expose(key RawKey, d FieldDescriptor) error {
	if key.IsZero() {
		return ErrZeroKey
	}
	if b.indexOf(key) >= 0 {
		return fmt.Errorf("%w: %#x", ErrDuplicateKey, uint64(key))
	}
	if len(b.pairs) >= maxComponents {
		return fmt.Errorf("arbre: builder exceeds maxComponents (%d)", maxComponents)
	}
	b.pairs = append(b.pairs, phash.Pair[FieldDescriptor]{Key: uint64(key), Value: d})
	dbg.Log(nil, "VTableBuilder.Expose", "key=%#x offset=%d kind=%d", uint64(key), d.offset, d.kind)
	return nil
}

// ExposeUnsized is Expose for a component published through an interface
// type, computed via FieldOfIface at the call site; it exists only to make
// the "this descriptor carries itab metadata" intent explicit at call
// sites that build a table by hand rather than through codegen.
func (b *VTableBuilder[Host, Root]) ExposeUnsized(key RawKey, d FieldDescriptor) error {
	return b.Expose(key, d)
}

// Extends rebases every entry of sub through field (summing offsets) and
// folds the results into b. It is the manual-builder counterpart of the
// `#[extends]` directive: field must describe where, within Host, the
// sub-table's own host lives.
//
// field must be a sized descriptor (built via FieldOf): rebasing assumes
// a flat offset from Host's address to sub's address, which only holds
// when field locates sub directly in Host's memory. Extending through a
// field built via FieldOfIface would silently rebase against the wrong
// base, so that combination is rejected with ErrMetaMismatch before any
// entry is touched.
func (b *VTableBuilder[Host, Root]) Extends(field FieldDescriptor, sub *RawVTable) error {
	if sub == nil {
		return nil
	}
	if field.kind != metaSized {
		return ErrMetaMismatch
	}
	var err error
	sub.All(func(k RawKey, d FieldDescriptor) bool {
		rebased := FieldDescriptor{
			offset: field.offset + d.offset,
			kind:   d.kind,
			itab:   d.itab,
		}
		if e := b.Expose(k, rebased); e != nil {
			err = fmt.Errorf("arbre: extends through field at offset %d: %w", field.offset, e)
			return false
		}
		return true
	})
	return err
}

// ExtendsDefault is Extends for the common case where Sub already
// publishes its own default table via HasTable; it is the manual
// counterpart of the `#[extends]` directive with no explicit table
// expression.
func ExtendsDefault[Host, Root, Sub any](b *VTableBuilder[Host, Root], field FieldDescriptor, sub HasTable) error {
	return b.Extends(field, sub.Table())
}

// Expand folds other's entries into b as if through an identity
// descriptor (offset 0, no metadata) — the builder-level equivalent of
// splicing in another builder's components directly, with no field
// indirection.
func (b *VTableBuilder[Host, Root]) Expand(other *VTableBuilder[Host, Root]) error {
	if other == nil {
		return nil
	}
	for _, p := range other.pairs {
		if e := b.Expose(RawKey(p.Key), p.Value); e != nil {
			return fmt.Errorf("arbre: expand: %w", e)
		}
	}
	return nil
}

// Merge folds other's entries into b, conflict-erroring on any duplicate
// key — the same behavior as Expand, offered under the name the original
// design uses for combining two sibling builders (as opposed to Expand's
// "splice a nested builder" framing).
func (b *VTableBuilder[Host, Root]) Merge(other *VTableBuilder[Host, Root]) error {
	return b.Expand(other)
}

// Without removes key from the builder. It is a no-op if key is absent.
func (b *VTableBuilder[Host, Root]) Without(key RawKey) {
	i := b.indexOf(key)
	if i < 0 {
		return
	}
	b.pairs = append(b.pairs[:i], b.pairs[i+1:]...)
}

// Len reports how many components are currently accumulated.
func (b *VTableBuilder[Host, Root]) Len() int {
	return len(b.pairs)
}

// Build materializes an immutable RawVTable from the accumulated entries by
// feeding them through the perfect-hash constructor.
func (b *VTableBuilder[Host, Root]) Build() (*RawVTable, error) {
	m, err := phash.Build(b.pairs)
	if err != nil {
		return nil, err
	}
	dbg.Log(nil, "VTableBuilder.Build", "entries=%d cap=%d", m.Len(), m.Cap())
	return &RawVTable{fields: m}, nil
}

// buildWithCapacity is Build with an explicit starting bucket capacity,
// used by BuildWithOptions when a caller supplies WithCapacityHint.
func (b *VTableBuilder[Host, Root]) buildWithCapacity(capacity int) (*RawVTable, error) {
	c := 1
	for c < capacity {
		c *= 2
	}
	m, err := phash.BuildWithCapacity(b.pairs, c)
	if err != nil {
		return nil, err
	}
	dbg.Log(nil, "VTableBuilder.buildWithCapacity", "entries=%d cap=%d", m.Len(), m.Cap())
	return &RawVTable{fields: m}, nil
}
