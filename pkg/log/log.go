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

	"github.com/walteh/remodel/pkg/logctx"
)

// 🎯 Logger writes user-facing lines to the console and mirrors every one of
// them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context. Without one, lines are
// discarded.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Nop())
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 FormatEntry renders a diagnostic entry as a console line
func FormatEntry(e logctx.Entry) string {
	switch e.Category {
	case logctx.Performance:
		ms := float64(e.Elapsed.Microseconds()) / 1000
		return color.New(color.FgMagenta).Sprintf("⏱  %-8s %9.3fms", e.Stage, ms)
	case logctx.Error:
		return color.New(color.FgRed).Sprintf("❌ %s", e.Message)
	case logctx.Warn:
		return color.New(color.FgYellow).Sprintf("⚠️  %s", e.Message)
	default:
		return e.Message
	}
}

// 🔌 Sink returns a logctx sink printing every entry it receives
func (l *Logger) Sink() logctx.Sink {
	return func(e logctx.Entry) {
		l.mu.Lock()
		defer l.mu.Unlock()

		fmt.Fprintln(l.console, FormatEntry(e))

		ev := l.zlog.WithLevel(zerologLevel(e.Category)).
			Str("category", e.Category.String()).
			Int("level", e.Level)
		if e.Category == logctx.Performance {
			ev = ev.Str("stage", e.Stage).Dur("elapsed", e.Elapsed)
		}
		ev.Msg(e.Message)
	}
}

func zerologLevel(c logctx.Category) zerolog.Level {
	switch c {
	case logctx.Error:
		return zerolog.ErrorLevel
	case logctx.Warn:
		return zerolog.WarnLevel
	case logctx.Info:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("remodel")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
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

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}
