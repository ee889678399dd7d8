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
	"hash/fnv"
	"reflect"
	"runtime"
	"strconv"

	"go.arbre.dev/arbre/internal/xsync"
)

// RawKey is a program-unique, non-zero tag identifying a component slot.
//
// Zero is reserved to mark an empty bucket in a [phash.Map], so a RawKey of
// zero can never be produced by [Of] or [NewKey]; both panic if their hash
// construction would otherwise yield zero, which astronomically rare as
// that is.
type RawKey uint64

// IsZero reports whether k is the reserved empty-bucket sentinel.
func (k RawKey) IsZero() bool { return k == 0 }

// TypedKey is a zero-size (at the value level, a single uint64) key that
// additionally witnesses the Go type of the component it addresses.
//
// Two TypedKey values of different instantiations of T can never be
// compared to one another, because TypedKey[A] and TypedKey[B] are
// distinct Go types for distinct A, B — the invariant that "two TypedKeys
// for different T must never compare equal" is therefore enforced by the
// compiler rather than at runtime.
type TypedKey[T any] struct {
	raw RawKey
}

// Raw returns the underlying key.
func (k TypedKey[T]) Raw() RawKey { return k.raw }

// nominalKeys caches the RawKey assigned to each reflect.Type seen by Of,
// so that repeated calls to Of[T]() for the same T agree.
var nominalKeys xsync.Map[reflect.Type, RawKey]

// Of returns the TypedKey naming T's own type identity: every call to
// Of[T]() for the same T, anywhere in the program, returns an equal key.
//
// T must be a concrete, named-or-structural Go type; Of does not accept
// type parameters that vary across a single declaration (that is what
// [NewKey] is for).
//
// If T is a pointer type, Of names its pointee's identity instead of the
// pointer type itself: Of[*Widget]() and Of[Widget]() agree. This is what
// lets [Fetch] request a sized component by its pointer type (so that
// [ComponentRef.Comp] can return an address into the host, per the
// "fetching a component yields a reference to it in place" contract) while
// still landing on the same key a [VTableBuilder.Expose] call keyed by the
// field's own declared (non-pointer) type.
func Of[T any]() TypedKey[T] {
	t := keyType(reflect.TypeFor[T]())
	if k, ok := nominalKeys.Load(t); ok {
		return TypedKey[T]{raw: k}
	}
	k, _ := nominalKeys.LoadOrStore(t, func() RawKey {
		return hashNonZero(typeTag(t))
	})
	return TypedKey[T]{raw: k}
}

// keyType strips one level of pointer indirection, so that a type and a
// pointer to it always resolve to the same nominal identity.
func keyType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// NewKey returns a TypedKey derived from the source location of its own
// call site rather than from T's identity: two NewKey[T]() calls written
// at different source positions always produce distinct keys, even for an
// identical T, because each is the Go stand-in for Arbre's "fresh witness
// type generated at the use site" — Go has no macros to expand a new type
// per call site, so the call site's own file:line stands in for it.
//
// NewKey is meant to be called once, from a package-level var or const-like
// initializer, e.g.:
//
//	var widgetSlot = arbre.NewKey[Widget]()
func NewKey[T any]() TypedKey[T] {
	_, file, line, _ := runtime.Caller(1)
	tag := file + ":" + strconv.Itoa(line) + "#" + typeTag(reflect.TypeFor[T]())
	return TypedKey[T]{raw: hashNonZero(tag)}
}

// typeTag returns a string uniquely naming t, preferring its package-qualified
// name and falling back to its structural description for unnamed types.
func typeTag(t reflect.Type) string {
	if t.Name() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// hashNonZero hashes s to a non-zero RawKey, resolving the zero-tag failure
// mode from a second, distinguishable hash attempt before giving up.
func hashNonZero(s string) RawKey {
	if k := fnv64a(s); k != 0 {
		return RawKey(k)
	}
	if k := fnv64a(s + "\x00arbre-zero-guard"); k != 0 {
		return RawKey(k)
	}
	panic("arbre: could not derive a non-zero key for " + strconv.Quote(s) + "; this should never happen")
}

func fnv64a(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
