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
	"unsafe"

	"go.arbre.dev/arbre/internal/dbg"
	"go.arbre.dev/arbre/internal/xunsafe"
	"go.arbre.dev/arbre/internal/xunsafe/layout"
)

// metaKind discriminates what a FieldDescriptor's pointee needs beyond a
// bare byte offset to be reconstructed into a typed reference.
//
// This is the Go rendition of the inline-metadata union the specification
// describes: Go has exactly one "fat pointer" shape, the two-word interface
// value, so metaIface is the only kind that carries anything beyond the
// offset itself.
type metaKind uint8

const (
	metaSized metaKind = iota
	metaIface
)

// FieldDescriptor describes how to project a host's address to one of its
// sub-objects: a byte offset, plus whatever pointer metadata the pointee
// needs to be reconstructed.
//
// FieldDescriptor is trivially copyable and holds no pointers into Go's
// heap other than itab (a pointer to immutable runtime type metadata, never
// to a moving or collectible object), so it is safe to embed in a
// [phash.Map] and to copy freely.
type FieldDescriptor struct {
	offset uintptr
	kind   metaKind
	itab   unsafe.Pointer
}

// Offset returns the descriptor's byte offset from a host's address.
func (d FieldDescriptor) Offset() uintptr { return d.offset }

// Kind names d's metadata kind ("sized" or "iface"), for diagnostics (see
// the dump package); it carries no information a caller could use to
// reconstruct d's itab, which remains unexported.
func (d FieldDescriptor) Kind() string {
	if d.kind == metaIface {
		return "iface"
	}
	return "sized"
}

// Identity describes the host itself as its own sub-component: offset zero,
// no extra metadata.
func Identity() FieldDescriptor {
	return FieldDescriptor{}
}

// FieldOf describes a sized sub-object (anything with a static, known-at
// compile-time layout — including slices, strings, maps, and plain
// structs, all of which are self-describing fixed-size headers in Go)
// living at offset within Host.
//
// Host and Field are accepted as type parameters purely so that FieldOf can
// check, in every build, that the descriptor is in-bounds for Host, panicking
// if it is not; FieldDescriptor
// itself carries no type information once constructed (that is carried
// separately by the TypedKey it is paired with in the builder).
func FieldOf[Host, Field any](offset uintptr) FieldDescriptor {
	assertInBounds[Host, Field](offset)
	return FieldDescriptor{offset: offset, kind: metaSized}
}

// FieldOfIface describes a field exposed through an interface type I, where
// Concrete is the field's own static type (or a pointer to it, if I is
// implemented on the pointer receiver — the common case for an embedded
// struct field).
//
// The itab for the (Concrete, I) pair is computed once, here, and baked
// into the descriptor; projecting it later (see [internal/xunsafe.MakeIface])
// costs only the offset arithmetic, no interface-satisfaction work.
func FieldOfIface[Host any, I any, Concrete I](offset uintptr) FieldDescriptor {
	var zero Concrete
	return FieldDescriptor{
		offset: offset,
		kind:   metaIface,
		itab:   xunsafe.IfaceTab[I](zero),
	}
}

// OffsetOf looks up the byte offset of a named field of Host via
// reflection. This is the manual-API counterpart to what cmd/arbregen emits
// as a direct unsafe.Offsetof expression; it is slower (paid once, at table
// construction time) but lets a caller build a [VTableBuilder] by hand,
// without code generation, per the library's documented external contract.
func OffsetOf[Host any](field string) uintptr {
	sf, ok := reflect.TypeFor[Host]().FieldByName(field)
	if !ok {
		panic("arbre: type " + reflect.TypeFor[Host]().String() + " has no field " + field)
	}
	return sf.Offset
}

func assertInBounds[Host, Field any](offset uintptr) {
	hostSize := uintptr(layout.Size[Host]())
	fieldSize := uintptr(layout.Size[Field]())
	if hostSize != 0 && offset+fieldSize > hostSize {
		panic("arbre: field descriptor out of bounds for host type")
	}
}

// project applies d to a host's address, reconstructing a reference of
// type T: for a sized field, T must be a pointer to the field's declared
// type, and project returns the field's own address unchanged (so that
// the fetched component has the same address as the field itself); for a
// field exposed through an interface, T is that interface type, and
// project reconstructs the interface value whose data word already is
// that same address (see [internal/xunsafe.MakeIface]).
//
// This is the one unsafety-critical primitive in the whole package: it is
// only sound when d was built against a host whose layout matches host's
// dynamic type, and T matches the reference type d's kind was computed
// for. Whoever publishes d (expose/extends via the builder, or the
// generated HasTable methods) and whoever calls project (TryFetchKey) are
// responsible for that pairing; project itself performs no check beyond
// what the debug build can assert.
func project[T any](host unsafe.Pointer, d FieldDescriptor) T {
	addr := unsafe.Add(host, d.offset)

	switch d.kind {
	case metaIface:
		return xunsafe.MakeIface[T](d.itab, addr)
	default:
		dbg.Assert(reflect.TypeFor[T]().Kind() == reflect.Pointer,
			"arbre: sized component must be fetched by pointer type, got %s", reflect.TypeFor[T]())
		return xunsafe.BitCast[T](addr)
	}
}
