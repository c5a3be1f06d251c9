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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	detailWidth = 15 // Width for the phase detail column
	statusWidth = 15 // Width for status text
)

// 🎯 FileEvent represents a per-file migration outcome for logging
type FileEvent struct {
	Path   string // Relative file path
	Status string // written/changed/unchanged/errored
	Phases int    // Number of phases that fired
	Phase  string // Failing phase, for errored files
	Rule   string // Failing rule, for errored files
}

// 📦 RunOperation represents a migration run for logging
type RunOperation struct {
	Root   string // Migration root directory
	Config string // Config file the run came from
	Phases int    // Number of configured phases
	DryRun bool   // Whether writes are suppressed
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *RunOperation
	events    []FileEvent
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
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

// 📝 formatFileEvent formats a file outcome for display
func (l *Logger) formatFileEvent(ev FileEvent) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch ev.Status {
	case "written":
		symbol = '✓'
		symbolColor = color.FgGreen
	case "changed":
		symbol = '⟳'
		symbolColor = color.FgBlue
	case "errored":
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	// The detail column carries fired phases, or the failing rule identity
	var detail string
	detailColor := color.FgCyan
	switch {
	case ev.Status == "errored":
		detail = ev.Phase + "/" + ev.Rule
		detailColor = color.FgRed
	case ev.Phases > 0:
		detail = fmt.Sprintf("%d phase(s)", ev.Phases)
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, ev.Path),
		color.New(detailColor).Sprint(fmt.Sprintf("%-*s", detailWidth, detail)),
		fmt.Sprintf("%-*s", statusWidth, ev.Status))
}

// 📝 LogFileEvent logs a per-file outcome
func (l *Logger) LogFileEvent(ctx context.Context, ev FileEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to events list
	l.events = append(l.events, ev)

	// Format and print
	fmt.Fprintln(l.console, l.formatFileEvent(ev))

	// Log to zerolog
	l.zlog.Info().
		Str("file", ev.Path).
		Str("status", ev.Status).
		Int("phases", ev.Phases).
		Str("phase", ev.Phase).
		Str("rule", ev.Rule).
		Msg("file outcome")
}

// 📝 StartRun starts a new migration run
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.events = nil

	// Print run header
	verb := "migrating"
	if op.DryRun {
		verb = "previewing"
	}
	fmt.Fprintf(l.console, "[%s %s]\n", verb,
		color.New(color.FgCyan).Sprint(op.Root))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Config),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%d phase(s)", op.Phases)))

	// Log to zerolog
	l.zlog.Info().
		Str("root", op.Root).
		Str("config", op.Config).
		Int("phases", op.Phases).
		Bool("dry_run", op.DryRun).
		Msg("starting migration run")
}

// 📝 EndRun ends the current migration run
func (l *Logger) EndRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	// Log summary
	l.zlog.Info().
		Str("root", l.currentOp.Root).
		Int("files", len(l.events)).
		Msg("migration run complete")

	l.currentOp = nil
	l.events = nil
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
	shiftrcText := color.New(color.Bold, color.FgCyan).Sprint("shiftrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", shiftrcText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
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

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
