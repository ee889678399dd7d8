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
	"reflect"
	"unsafe"

	"go.arbre.dev/arbre/internal/dbg"
	"go.arbre.dev/arbre/internal/xunsafe"
)

// TryFetchKey looks up raw in host's table. On a hit, it applies the
// resolved descriptor to host and returns a ComponentRef wrapping the
// projected T. On a miss, it returns the zero ComponentRef and false.
//
// For a sized component, T must be a pointer to the field's declared type
// (e.g. fetch a *uint32 for a field exposed via FieldOf[Host, uint32]) so
// that the returned reference shares the field's own address. For a
// component exposed through an interface, T is that interface type
// itself, which is already reference-shaped.
func TryFetchKey[T any](host HasTable, raw RawKey) (ComponentRef[T], bool) {
	t := host.Table()
	d, ok := t.lookup(raw)
	if !ok {
		return ComponentRef[T]{}, false
	}
	addr := hostAddr(host)
	return ComponentRef[T]{root: host, sub: project[T](addr, d)}, true
}

// FetchKey is TryFetchKey, panicking on a miss with a diagnostic naming T
// and the host's own dynamic type.
func FetchKey[T any](host HasTable, raw RawKey) ComponentRef[T] {
	ref, ok := TryFetchKey[T](host, raw)
	if !ok {
		dbg.Log(nil, "FetchKey", "miss: key=%#x host=%T", uint64(raw), host)
		panic(fmt.Sprintf("arbre: no component %#x of type %v on host %T", uint64(raw), reflect.TypeFor[T](), host))
	}
	return ref
}

// HasKey reports whether host's table publishes an entry for raw.
func HasKey(host HasTable, raw RawKey) bool {
	_, ok := host.Table().lookup(raw)
	return ok
}

// TryFetch is TryFetchKey sugared with the nominal key for T, i.e.
// TryFetch[T](host) is TryFetchKey[T](host, Of[T]().Raw()); see
// TryFetchKey for T's pointer-vs-interface convention. Of[T] names the
// same key whether T is a pointer or its pointee, so TryFetch[*uint32]
// finds what was exposed under Of[uint32]().
func TryFetch[T any](host HasTable) (ComponentRef[T], bool) {
	return TryFetchKey[T](host, Of[T]().Raw())
}

// Fetch is FetchKey sugared with the nominal key for T.
func Fetch[T any](host HasTable) ComponentRef[T] {
	return FetchKey[T](host, Of[T]().Raw())
}

// Has is HasKey sugared with the nominal key for T.
func Has[T any](host HasTable) bool {
	return HasKey(host, Of[T]().Raw())
}

// hostAddr recovers host's address as an unsafe.Pointer. HasTable
// implementations are expected to be pointer-receiver types (a value-typed
// host has no stable address to project from), which this asserts in the
// debug build.
func hostAddr(host HasTable) unsafe.Pointer {
	v := any(host)
	dbg.Assert(xunsafe.IsDirectAny(v), "arbre: host %T does not have a pointer-shaped underlying value", host)
	return unsafe.Pointer(xunsafe.AnyData(v))
}
