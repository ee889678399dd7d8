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
	"github.com/stretchr/testify/require"
)

// Property 8 / root binding: a component's ref.Root() recovers the exact
// root it was fetched from.
func TestRootBinding(t *testing.T) {
	t.Parallel()

	h := &fooHost{A: 1, B: 2}
	ref := Fetch[*uint32](h)

	root, err := Root[*fooHost](ref)
	require.NoError(t, err)
	assert.Same(t, h, root)
}

func TestRootMismatchReturnsError(t *testing.T) {
	t.Parallel()

	h := &fooHost{A: 1, B: 2}
	ref := Fetch[*uint32](h)

	_, err := Root[*bazHost](ref)
	assert.Error(t, err)
}

func TestRootOfPanicsOnMismatch(t *testing.T) {
	t.Parallel()

	h := &fooHost{A: 1, B: 2}
	ref := Fetch[*uint32](h)

	assert.Panics(t, func() {
		RootOf[*bazHost](ref)
	})
}

func TestComponentRefIsCopyable(t *testing.T) {
	t.Parallel()

	h := &fooHost{A: 1, B: 2}
	ref := Fetch[*uint32](h)
	cp := ref
	assert.Equal(t, ref.Comp(), cp.Comp())
}
