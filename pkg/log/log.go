// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/tidy/pkg/sorter"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	kindWidth   = 16 // Width for event kind
	targetWidth = 12 // Width for the category column
)

// 📦 RootOperation represents one root being sorted
type RootOperation struct {
	Path   string // Root directory
	Layout string // nested or flat
	RunID  string // Identifier shared by every record of this pass
}

type rootState struct {
	op     RootOperation
	events int
}

// 🎯 Logger handles structured logging with console output. Several roots
// may be in flight at once; each gets its own reporter.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	verbose bool
	ops     map[string]*rootState
}

// 🏭 New creates a new logger. Quiet events (skipped, unclassified) are only
// printed when verbose is set.
func New(console io.Writer, zlog zerolog.Logger, verbose bool) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		verbose: verbose,
		ops:     make(map[string]*rootState),
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func isQuiet(kind sorter.EventKind) bool {
	switch kind {
	case sorter.EventSkippedReserved, sorter.EventUnclassified, sorter.EventIgnored:
		return true
	default:
		return false
	}
}

// 📝 formatEvent formats an event for display
func (l *Logger) formatEvent(ev sorter.Event) string {
	var symbol rune
	var symbolColor color.Attribute
	switch ev.Kind {
	case sorter.EventPruned:
		symbol = '✗'
		symbolColor = color.FgRed
	case sorter.EventMoved, sorter.EventExtracted:
		symbol = '✓'
		symbolColor = color.FgGreen
	case sorter.EventRenamed:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case sorter.EventOverwrote, sorter.EventRenameBlocked:
		symbol = '!'
		symbolColor = color.FgYellow
	default:
		symbol = '-'
		symbolColor = color.FgCyan
	}

	name := filepath.Base(ev.Path)
	if ev.Dest != "" {
		name = fmt.Sprintf("%s → %s", name, filepath.Base(ev.Dest))
	}

	target := ""
	if ev.Category != sorter.Unclassified {
		target = ev.Category.DirName()
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, name),
		color.New(color.FgBlue).Sprint(fmt.Sprintf("%-*s", kindWidth, ev.Kind)),
		fmt.Sprintf("%-*s", targetWidth, target))
}

// report prints ev and records it under st's run id
func (l *Logger) report(ev sorter.Event, st *rootState) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !isQuiet(ev.Kind) || l.verbose {
		fmt.Fprintln(l.console, l.formatEvent(ev))
	}

	rec := l.zlog.Debug()
	if ev.Kind == sorter.EventOverwrote {
		rec = l.zlog.Warn()
	}
	st.events++
	rec.Str("run_id", st.op.RunID).
		Str("kind", ev.Kind.String()).
		Str("path", ev.Path).
		Str("dest", ev.Dest).
		Str("category", ev.Category.String()).
		Msg("sort event")
}

// 📝 StartRootOperation starts a new root operation and returns a reporter
// whose records carry the operation's run id
func (l *Logger) StartRootOperation(ctx context.Context, op RootOperation) sorter.Reporter {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := &rootState{op: op}
	l.ops[op.Path] = st

	fmt.Fprintf(l.console, "[sorting %s]\n",
		color.New(color.FgCyan).Sprint(op.Path))

	l.zlog.Info().
		Str("root", op.Path).
		Str("layout", op.Layout).
		Str("run_id", op.RunID).
		Msg("starting sort")

	return sorter.ReporterFunc(func(ctx context.Context, ev sorter.Event) {
		l.report(ev, st)
	})
}

// 📝 EndRootOperation ends the operation started for root
func (l *Logger) EndRootOperation(ctx context.Context, root string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.ops[root]
	if !ok {
		return
	}
	delete(l.ops, root)

	l.zlog.Info().
		Str("root", st.op.Path).
		Str("run_id", st.op.RunID).
		Int("events", st.events).
		Msg("sort complete")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tidyText := color.New(color.Bold, color.FgCyan).Sprint("tidy")
	fmt.Fprintf(l.console, "\n%s %s\n\n", tidyText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

