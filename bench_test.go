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
	"testing"

	"github.com/google/uuid"
)

// benchHost is a large opaque byte blob standing in for a host type with
// many independently addressable sub-objects; benchmarks below carve it
// into single-byte fields at synthetic offsets.
type benchHost [4096]byte

// uuidKeys derives n distinct, non-zero RawKeys from freshly generated
// UUIDs, the same trick the teacher's swiss-table benchmark uses to get
// large volumes of distinct, cheaply-generated synthetic keys without
// coupling the benchmark's key distribution to any real domain type.
func uuidKeys(n int) []RawKey {
	keys := make([]RawKey, n)
	for i := range keys {
		keys[i] = hashNonZero(uuid.New().String())
	}
	return keys
}

// BenchmarkVTableBuildLarge measures VTableBuilder.Build over a table wide
// enough to exercise phash's multiplier search under real collision
// pressure, rather than the handful of fields a typical host exposes.
func BenchmarkVTableBuildLarge(b *testing.B) {
	const n = 512
	keys := uuidKeys(n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bld := NewBuilder[benchHost, benchHost]()
		for j, k := range keys {
			if err := bld.Expose(k, FieldOf[benchHost, byte](uintptr(j%4096))); err != nil {
				b.Fatal(err)
			}
		}
		if _, err := bld.Build(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRawVTableLookup measures steady-state lookup cost once a large
// table is built, mixing hits against uuid-derived keys with misses
// against keys that were never exposed.
func BenchmarkRawVTableLookup(b *testing.B) {
	const n = 512
	keys := uuidKeys(n)
	missing := uuidKeys(n)

	bld := NewBuilder[benchHost, benchHost]()
	for j, k := range keys {
		if err := bld.Expose(k, FieldOf[benchHost, byte](uintptr(j%4096))); err != nil {
			b.Fatal(err)
		}
	}
	table := MustBuild(bld)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = table.lookup(keys[i%n])
		_, _ = table.lookup(missing[i%n])
	}
}
