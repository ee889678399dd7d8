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

package main

import (
	"go/ast"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(text string) *ast.CommentGroup {
	return &ast.CommentGroup{List: []*ast.Comment{{Text: text}}}
}

func TestParseFieldDirective(t *testing.T) {
	t.Parallel()

	d, ok := parseFieldDirective(doc("//arbre:expose"))
	require.True(t, ok)
	assert.Equal(t, directiveExpose, d.kind)

	d, ok = parseFieldDirective(doc("//arbre:expose=Drawable"))
	require.True(t, ok)
	assert.Equal(t, directiveExposeUnsized, d.kind)
	assert.Equal(t, "Drawable", d.expr)

	d, ok = parseFieldDirective(doc("//arbre:extends"))
	require.True(t, ok)
	assert.Equal(t, directiveExtends, d.kind)

	d, ok = parseFieldDirective(doc("//arbre:extends=customTable()"))
	require.True(t, ok)
	assert.Equal(t, directiveExtendsExpr, d.kind)
	assert.Equal(t, "customTable()", d.expr)

	_, ok = parseFieldDirective(doc("// a plain comment"))
	assert.False(t, ok)

	_, ok = parseFieldDirective(nil)
	assert.False(t, ok)
}

// Scenario S9: two //arbre:expose fields of the same type must be rejected,
// naming both fields and their source positions.
func TestHostSpecValidateRejectsDuplicateExpose(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()
	f := fset.AddFile("host.go", -1, 1000)
	posA := f.Pos(10)
	posB := f.Pos(40)

	h := hostSpec{
		Name: "Baz",
		Root: "Baz",
		Fields: []fieldSpec{
			{FieldName: "A", FieldType: "int32", Dir: directive{kind: directiveExpose}, Pos: posA},
			{FieldName: "B", FieldType: "int32", Dir: directive{kind: directiveExpose}, Pos: posB},
		},
	}

	err := h.validate(fset)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A")
	assert.Contains(t, err.Error(), "B")
}

func TestHostSpecValidateAcceptsNonConflicting(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()
	f := fset.AddFile("host.go", -1, 1000)

	h := hostSpec{
		Name: "Baz",
		Root: "Baz",
		Fields: []fieldSpec{
			{FieldName: "A", FieldType: "int32", Dir: directive{kind: directiveExpose}, Pos: f.Pos(1)},
			{FieldName: "B", FieldType: "uint16", Dir: directive{kind: directiveExpose}, Pos: f.Pos(2)},
		},
	}

	assert.NoError(t, h.validate(fset))
}
