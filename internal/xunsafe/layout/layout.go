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

// Package layout provides helpers for reasoning about the in-memory layout
// of Go values: sizes, alignments, and rounding arithmetic shared by the
// xunsafe package and the arbre package's field descriptors.
package layout

import "unsafe"

// Int is any integer type usable as an offset or index.
type Int interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Size returns the size in bytes of T.
func Size[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// Align returns the alignment in bytes of T.
func Align[T any]() int {
	var z T
	return int(unsafe.Alignof(z))
}

// Bits returns the size in bits of T.
func Bits[T any]() int {
	return Size[T]() * 8
}

// RoundUp rounds n up to the nearest multiple of align, which must be a
// power of two.
func RoundUp[N Int](n, align N) N {
	return (n + align - 1) &^ (align - 1)
}

// Padding returns the number of bytes between n and the next multiple of
// align, which must be a power of two.
func Padding[N Int](n, align N) N {
	return RoundUp(n, align) - n
}
