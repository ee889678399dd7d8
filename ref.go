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

import "fmt"

// ComponentRef is a host-rooted reference to a fetched sub-component: the
// component itself, plus an erased handle back to the host it was fetched
// from.
//
// A ComponentRef is trivially copyable, mirroring the original's
// "copyability is preserved" invariant — it holds only two fields (an
// interface and a Sub), neither of which ComponentRef itself allocates.
type ComponentRef[Sub any] struct {
	root HasTable
	sub  Sub
}

// Comp returns the fetched component: for a sized field, fetched by its
// pointer type, this is the same address as the host field it came from;
// for a field exposed through an interface, this is the interface value
// whose data word already addresses that same field.
func (r ComponentRef[Sub]) Comp() Sub { return r.sub }

// ErasedRoot returns the component's root host, type-erased to HasTable.
// Most callers want [Root] instead, which downcasts to a concrete type.
func (r ComponentRef[Sub]) ErasedRoot() HasTable { return r.root }

// Root recovers the root host a component was originally fetched from,
// downcasting the erased root reference to R.
//
// Root reports an error rather than panicking on a type mismatch: unlike
// Rust's associated-type-driven downcast (resolved and checked by the
// compiler at the fetch call site), Go has no way to constrain R against
// the erased HasTable ComponentRef actually holds until this call, so a
// caller-supplied R that does not match the live root is a recoverable,
// reportable condition rather than undefined behavior.
func Root[R any, Sub any](r ComponentRef[Sub]) (R, error) {
	var zero R
	root, ok := r.root.(R)
	if !ok {
		return zero, fmt.Errorf("arbre: component root is %T, not %T", r.root, zero)
	}
	return root, nil
}

// RootOf is the panicking sibling of Root, for callers who have already
// established by construction that Sub was fetched from an R.
func RootOf[R any, Sub any](r ComponentRef[Sub]) R {
	root, err := Root[R](r)
	if err != nil {
		panic(err)
	}
	return root
}
