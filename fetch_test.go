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

	"github.com/stretchr/testify/assert"
)

func TestTryFetchMiss(t *testing.T) {
	t.Parallel()

	h := &fooHost{A: 1, B: 2}
	_, ok := TryFetch[*int32](h)
	assert.False(t, ok)
}

func TestFetchPanicsOnMiss(t *testing.T) {
	t.Parallel()

	h := &fooHost{A: 1, B: 2}
	assert.Panics(t, func() {
		Fetch[*int32](h)
	})
}

func TestHasKeyAndHas(t *testing.T) {
	t.Parallel()

	h := &fooHost{A: 1, B: 2}
	assert.True(t, Has[uint32](h))
	assert.True(t, HasKey(h, Of[uint64]().Raw()))
	assert.False(t, Has[string](h))
}

// Property 1: a fetched component has the same address as the host field
// it was exposed from, and the published descriptor's offset matches the
// field's actual offset within the host.
func TestFetchedValueMatchesField(t *testing.T) {
	t.Parallel()

	h := &fooHost{A: 42, B: 99}
	ref := Fetch[*uint32](h)
	assert.Same(t, &h.A, ref.Comp())
	assert.Equal(t, h.A, *ref.Comp())

	d, ok := fooTable.lookup(Of[uint32]().Raw())
	assert.True(t, ok)
	assert.Equal(t, OffsetOf[fooHost]("A"), d.Offset())
}
