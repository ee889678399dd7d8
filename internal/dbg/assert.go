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

//go:build debug

package dbg

import "fmt"

// Enabled is true if the binary was built with the debug tag, which turns
// on internal assertions and trace logging.
const Enabled = true

// Assert panics if cond is false, but only in builds with the debug tag.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("arbre: internal assertion failed: "+format, args...))
	}
}
