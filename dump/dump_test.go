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

package dump_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.arbre.dev/arbre"
	"go.arbre.dev/arbre/dump"
)

type widget struct {
	A uint32
	B uint64
}

func (w *widget) Table() *arbre.RawVTable {
	b := arbre.NewBuilder[widget, widget]()
	_ = b.Expose(arbre.Of[uint32]().Raw(), arbre.FieldOf[widget, uint32](arbre.OffsetOf[widget]("A")))
	_ = b.Expose(arbre.Of[uint64]().Raw(), arbre.FieldOf[widget, uint64](arbre.OffsetOf[widget]("B")))
	return arbre.MustBuild(b)
}

func TestDumpRendersEntries(t *testing.T) {
	t.Parallel()

	h := &widget{}
	var buf bytes.Buffer
	require.NoError(t, dump.Dump(&buf, h.Table()))

	out := buf.String()
	assert.Contains(t, out, "offset:")
	assert.Contains(t, out, "kind: sized")
}

func TestRegisterAndLookup(t *testing.T) {
	h := &widget{}
	dump.Register("dump_test.widget", h.Table)

	table, ok := dump.Lookup("dump_test.widget")
	require.True(t, ok)
	assert.Equal(t, 2, table().Len())

	assert.Contains(t, dump.Names(), "dump_test.widget")
}
