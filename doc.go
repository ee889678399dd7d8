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

// Package arbre is a component-fetch system for composing host objects out
// of typed sub-objects ("components") and looking them up in O(1) by a
// program-unique key.
//
// A host publishes a [RawVTable] mapping [TypedKey] values to the
// [FieldDescriptor] of one of its fields. Fetching a component applies the
// descriptor to the host's address and wraps the result in a
// [ComponentRef], which remembers the host it was fetched from so that
// sibling components can be reached from it in turn.
//
// Tables are built once, either by generated code (see cmd/arbregen) or by
// hand using [VTableBuilder], and are immutable and safe to read from any
// number of goroutines once published.
//
// # Support status
//
// Hot-swapping a table after it has been published, inserting fields into a
// published table, and lifetime/pool management of host objects are not
// supported by this package; see the package-level documentation of
// [VTableBuilder] for the operations that are supported.
package arbre
