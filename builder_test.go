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

// --- Scenario S1: simple expose. ---

type fooHost struct {
	A uint32
	B uint64
}

var fooTable = MustBuild(func() *VTableBuilder[fooHost, fooHost] {
	b := NewBuilder[fooHost, fooHost]()
	require := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	require(b.Expose(Of[uint32]().Raw(), FieldOf[fooHost, uint32](OffsetOf[fooHost]("A"))))
	require(b.Expose(Of[uint64]().Raw(), FieldOf[fooHost, uint64](OffsetOf[fooHost]("B"))))
	return b
}())

func (h *fooHost) Table() *RawVTable { return fooTable }

func TestS1SimpleExpose(t *testing.T) {
	t.Parallel()

	h := &fooHost{A: 7, B: 9}
	assert.Equal(t, uint32(7), *Fetch[*uint32](h).Comp())
	assert.Equal(t, uint64(9), *Fetch[*uint64](h).Comp())
	assert.False(t, Has[int32](h))
}

// --- Scenario S3: extends with non-conflicting types. ---

type barHost struct {
	X int32
}

var barTable = MustBuild(func() *VTableBuilder[barHost, barHost] {
	b := NewBuilder[barHost, barHost]()
	if err := b.Expose(Of[int32]().Raw(), FieldOf[barHost, int32](OffsetOf[barHost]("X"))); err != nil {
		panic(err)
	}
	return b
}())

func (h *barHost) Table() *RawVTable { return barTable }

type bazHost struct {
	Bar barHost
	Y   uint16
}

var bazTable = MustBuild(func() *VTableBuilder[bazHost, bazHost] {
	b := NewBuilder[bazHost, bazHost]()
	barField := FieldOf[bazHost, barHost](OffsetOf[bazHost]("Bar"))
	if err := b.Extends(barField, barTable); err != nil {
		panic(err)
	}
	if err := b.Expose(Of[uint16]().Raw(), FieldOf[bazHost, uint16](OffsetOf[bazHost]("Y"))); err != nil {
		panic(err)
	}
	return b
}())

func (h *bazHost) Table() *RawVTable { return bazTable }

func TestS3ExtendsNonConflicting(t *testing.T) {
	t.Parallel()

	h := &bazHost{Bar: barHost{X: 3}, Y: 5}
	assert.Equal(t, int32(3), *Fetch[*int32](h).Comp())
	assert.Equal(t, uint16(5), *Fetch[*uint16](h).Comp())
}

// Property 4: offsets compose across extends.
func TestExtendsComposesOffsets(t *testing.T) {
	t.Parallel()

	field := FieldOf[bazHost, barHost](OffsetOf[bazHost]("Bar"))
	d, ok := barTable.lookup(Of[int32]().Raw())
	require.True(t, ok)

	composed, ok := bazTable.lookup(Of[int32]().Raw())
	require.True(t, ok)
	assert.Equal(t, field.offset+d.offset, composed.offset)
	assert.Equal(t, d.kind, composed.kind)
}

// --- Scenario S2: conflicting extends must be rejected. ---

type conflictBaz struct {
	Bar barHost
	Y   int32
}

func TestS2ExtendsConflictRejected(t *testing.T) {
	t.Parallel()

	b := NewBuilder[conflictBaz, conflictBaz]()
	barField := FieldOf[conflictBaz, barHost](OffsetOf[conflictBaz]("Bar"))
	require.NoError(t, b.Extends(barField, barTable))

	err := b.Expose(Of[int32]().Raw(), FieldOf[conflictBaz, int32](OffsetOf[conflictBaz]("Y")))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

// Extends must reject splicing through a field whose own descriptor was
// built via FieldOfIface: the offset-summing rebase only makes sense
// against a plain sized field.
func TestExtendsRejectsUnsizedField(t *testing.T) {
	t.Parallel()

	b := NewBuilder[bazHost, bazHost]()
	unsizedField := FieldOfIface[bazHost, drawable, square](0)
	err := b.Extends(unsizedField, barTable)
	assert.ErrorIs(t, err, ErrMetaMismatch)
}

// --- Without / Expand / Merge. ---

func TestWithoutIsNoopOnAbsence(t *testing.T) {
	t.Parallel()

	b := NewBuilder[fooHost, fooHost]()
	require.NoError(t, b.Expose(Of[uint32]().Raw(), FieldOf[fooHost, uint32](0)))
	b.Without(Of[uint64]().Raw()) // absent: no-op
	assert.Equal(t, 1, b.Len())
	b.Without(Of[uint32]().Raw())
	assert.Equal(t, 0, b.Len())
}

func TestExpandConflictPanicsViaError(t *testing.T) {
	t.Parallel()

	a := NewBuilder[fooHost, fooHost]()
	require.NoError(t, a.Expose(Of[uint32]().Raw(), FieldOf[fooHost, uint32](0)))

	b := NewBuilder[fooHost, fooHost]()
	require.NoError(t, b.Expose(Of[uint32]().Raw(), FieldOf[fooHost, uint32](0)))

	err := a.Expand(b)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMergeIsExpand(t *testing.T) {
	t.Parallel()

	a := NewBuilder[fooHost, fooHost]()
	require.NoError(t, a.Expose(Of[uint32]().Raw(), FieldOf[fooHost, uint32](0)))

	b := NewBuilder[fooHost, fooHost]()
	require.NoError(t, b.Expose(Of[uint64]().Raw(), FieldOf[fooHost, uint64](4)))

	require.NoError(t, a.Merge(b))
	assert.Equal(t, 2, a.Len())
}

// Property 3: every exposed pair round-trips byte-equal through Build.
func TestExposedPairRoundTripsByteEqual(t *testing.T) {
	t.Parallel()

	d := FieldOf[fooHost, uint32](4)
	b := NewBuilder[fooHost, fooHost]()
	require.NoError(t, b.Expose(Of[uint32]().Raw(), d))
	table, err := b.Build()
	require.NoError(t, err)

	got, ok := table.lookup(Of[uint32]().Raw())
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestExposeRejectsZeroKey(t *testing.T) {
	t.Parallel()

	b := NewBuilder[fooHost, fooHost]()
	err := b.Expose(RawKey(0), FieldOf[fooHost, uint32](0))
	assert.ErrorIs(t, err, ErrZeroKey)
}
