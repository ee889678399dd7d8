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

// buildConfig holds the options collected from a caller's BuildOptions
// for a VTableBuilder.BuildWithOptions call. The zero buildConfig picks
// Build's own capacity heuristic and never panics.
type buildConfig struct {
	capacityHint int
	panicOnError bool
}

// BuildOption configures how a table is materialized from its accumulated
// entries. Options compose: later options in one BuildWithOptions call win
// over earlier ones when they set the same field.
type BuildOption func(*buildConfig)

// WithCapacityHint makes the perfect-hash search use capacity (rounded up
// to a power of two) as the bucket count instead of the default
// 2*len(entries) heuristic. The capacity is not grown: if the entries do
// not fit or cannot be dispersed into it, the build returns an error.
func WithCapacityHint(capacity int) BuildOption {
	return func(c *buildConfig) { c.capacityHint = capacity }
}

// WithPanicOnError makes the option-aware build helpers
// ([VTableBuilder.BuildWithOptions]) panic instead of returning an error,
// matching the codegen path's "construction failure is a compile-time
// panic" semantics for callers who have already decided they want
// MustBuild-style behavior but also want capacity control.
func WithPanicOnError() BuildOption {
	return func(c *buildConfig) { c.panicOnError = true }
}

func applyOptions(opts []BuildOption) buildConfig {
	var c buildConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// BuildWithOptions is Build, configured by opts (see [WithCapacityHint],
// [WithPanicOnError]).
func (b *VTableBuilder[Host, Root]) BuildWithOptions(opts ...BuildOption) (*RawVTable, error) {
	cfg := applyOptions(opts)

	var t *RawVTable
	var err error
	if cfg.capacityHint > 0 {
		t, err = b.buildWithCapacity(cfg.capacityHint)
	} else {
		t, err = b.Build()
	}

	if err != nil && cfg.panicOnError {
		panic("arbre: BuildWithOptions: " + err.Error())
	}
	return t, err
}
