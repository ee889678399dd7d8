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

package dbg

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/timandy/routine"
)

// logger is the destination for Log calls. It defaults to slog's default
// handler; callers of the arbre package can redirect it with SetLogger.
var logger = slog.Default()

// SetLogger redirects where Log writes. Passing nil restores the default
// logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

// Log emits a goroutine- and call-site-tagged debug line through the
// configured [slog.Logger].
//
// context is optional leading Sprintf-style args rendered before operation,
// for correlating a run of related log lines (e.g. a host type name).
func Log(context []any, operation string, format string, args ...any) {
	skip := 2
again:
	pc, file, line, _ := runtime.Caller(skip)
	fn := runtime.FuncForPC(pc)
	name := fn.Name()
	short := name[strings.LastIndex(name, ".")+1:]
	if strings.HasPrefix(short, "log") || strings.Contains(short, "Log") {
		skip++
		goto again
	}

	pkg := name
	if slash := strings.LastIndexByte(pkg, '/'); slash >= 0 {
		pkg = pkg[slash+1:]
	}
	if dot := strings.Index(pkg, "."); dot >= 0 {
		pkg = pkg[:dot]
	}

	msg := Fprintf(format, args...).String()
	if len(context) >= 1 {
		prefix, _ := context[0].(string)
		msg = Fprintf(prefix, context[1:]...).String() + ": " + msg
	}

	logger.Debug(msg,
		"op", operation,
		"pkg", pkg,
		"file", filepath.Base(file),
		"line", line,
		"goroutine", routine.Goid(),
	)
}
