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

package xunsafe

import (
	"unsafe"

	"go.arbre.dev/arbre/internal/xunsafe/layout"
)

// Slice is like [unsafe.Slice], but generic over the length's integer type.
func Slice[P ~*E, E any, I Int](p P, length I) []E {
	return unsafe.Slice(p, int(length))
}

// Bytes converts a pointer into a slice over its raw contents.
func Bytes[P ~*E, E any](p P) []byte {
	return Slice(Cast[byte](p), layout.Size[E]())
}

// PC is a raw function pointer, used to keep a captureless func's code
// pointer local instead of indirecting through a runtime.funcval.
type PC[F any] uintptr

// NewPC wraps a func. This performs no checking that the func does not
// capture any variables; capturing funcs must not be passed here.
func NewPC[F any](f F) PC[F] {
	return *BitCast[*PC[F]](f)
}

// Get returns the func this PC wraps.
func (pc *PC[F]) Get() F {
	return BitCast[F](pc)
}
