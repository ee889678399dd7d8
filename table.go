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

// HasTable is the contract that a host type publishes a RawVTable
// constructed once and immortal for the process lifetime.
//
// Generated hosts implement this by calling a package-level
// sync.OnceValue that builds the table on the first Table call; hosts
// assembled at runtime via the manual
// builder API typically implement it by delegating to
// [TableFor] against the lazy-once registry.
type HasTable interface {
	// Table returns the host's published component table. Implementations
	// must always return the same, already-built *RawVTable.
	Table() *RawVTable
}

// ComponentTrait is implemented by a component type to record, at the type
// level, which Root type it expects to be fetched from.
//
// Nothing in this package consults ComponentTrait: [Root] and [RootOf]
// always take the root type as an explicit type argument and do not infer
// it from Sub. Implementing ComponentTrait is optional: [Fetch] and friends
// work for any Sub, with or without it. A component advertises its Root by
// embedding a RootedIn[Root] value, which supplies ArbreRoot for free.
type ComponentTrait[Root any] interface {
	// ArbreRoot identifies Root without constructing one; callers never
	// invoke it directly.
	ArbreRoot() *Root
}

// RootedIn is embedded in a component struct to implement
// ComponentTrait[Root] for it with no boilerplate, e.g.:
//
//	type Engine struct {
//		arbre.RootedIn[Car]
//		RPM int
//	}
type RootedIn[Root any] struct{}

// ArbreRoot implements ComponentTrait[Root]. It is never called; its
// return value is always nil and exists only to carry Root at the type
// level for a type assertion against ComponentTrait[Root].
func (RootedIn[Root]) ArbreRoot() *Root { return nil }
