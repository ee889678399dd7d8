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

// Command arbregen reads //arbre:... directives from doc comments on a host
// struct's fields and type parameters, and emits a Go source file that
// builds and publishes that host's component table.
//
// Directives are doc comments immediately above the annotated field or
// type-parameter, since Go has no field attribute syntax:
//
//	//arbre:expose            — expose this field under its own type's key.
//	//arbre:expose=Iface      — expose this field, unsized, as Iface.
//	//arbre:extends           — splice this field's own HasTable.Table() in.
//	//arbre:extends=expr      — splice in the table produced by expr.
//	//arbre:root              — (on a type parameter) designates Root.
package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"regexp"
	"strings"
)

type directiveKind int

const (
	directiveExpose directiveKind = iota
	directiveExposeUnsized
	directiveExtends
	directiveExtendsExpr
	directiveRoot
)

// directive is one parsed //arbre:... annotation, attached to the field or
// type parameter it was found above.
type directive struct {
	kind directiveKind
	expr string // for expose=, the interface expression; for extends=, the table expression.
	pos  token.Pos
}

var directiveRe = regexp.MustCompile(`^//arbre:(expose|extends|root)(=(.+))?$`)

// parseFieldDirective inspects a field's doc comment (if any) for an
// //arbre:... directive. If the comment holds more than one, only the
// first is returned; the rest are ignored.
func parseFieldDirective(doc *ast.CommentGroup) (directive, bool) {
	if doc == nil {
		return directive{}, false
	}
	for _, c := range doc.List {
		m := directiveRe.FindStringSubmatch(strings.TrimSpace(c.Text))
		if m == nil {
			continue
		}
		d := directive{pos: c.Pos()}
		switch m[1] {
		case "expose":
			if m[3] != "" {
				d.kind = directiveExposeUnsized
				d.expr = strings.TrimSpace(m[3])
			} else {
				d.kind = directiveExpose
			}
		case "extends":
			if m[3] != "" {
				d.kind = directiveExtendsExpr
				d.expr = strings.TrimSpace(m[3])
			} else {
				d.kind = directiveExtends
			}
		case "root":
			d.kind = directiveRoot
		}
		return d, true
	}
	return directive{}, false
}

// hostSpec is everything arbregen needs to emit one host's generated file.
type hostSpec struct {
	Name   string // the host struct's type name.
	Root   string // the Root type expression; defaults to Name if no //arbre:root is found.
	Fields []fieldSpec
}

type fieldSpec struct {
	FieldName string
	FieldType string // Go source text of the field's type.
	Dir       directive
	Pos       token.Pos
}

// validate checks for duplicate exposed keys (scenario S9): two exposed
// fields of the same Go type (or the same unsized interface expression)
// collide, because TypedKey.Of derives its key from that same type
// identity.
func (h hostSpec) validate(fset *token.FileSet) error {
	seen := map[string]fieldSpec{}
	for _, f := range h.Fields {
		if f.Dir.kind != directiveExpose && f.Dir.kind != directiveExposeUnsized {
			continue
		}
		key := f.FieldType
		if f.Dir.kind == directiveExposeUnsized {
			key = "unsized:" + f.Dir.expr
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf(
				"%s: duplicate //arbre:expose for type %s on fields %q (%s) and %q (%s)",
				h.Name, key,
				prev.FieldName, fset.Position(prev.Pos),
				f.FieldName, fset.Position(f.Pos),
			)
		}
		seen[key] = f
	}
	return nil
}
