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
	"log/slog"

	"go.arbre.dev/arbre/internal/dbg"
)

// SetLogger redirects this package's diagnostic logging (table
// construction, fetch misses) to l. Passing nil restores slog's default
// logger. Diagnostic logging is opt-in: by default it flows to
// slog.Default(), which discards below its configured level.
func SetLogger(l *slog.Logger) {
	dbg.SetLogger(l)
}
