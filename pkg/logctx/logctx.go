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

package logctx

import (
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Category classifies a log entry
type Category int

const (
	Debug Category = iota
	Info
	Warn
	Error
	Performance
)

// String returns a string representation of Category
func (c Category) String() string {
	switch c {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	case Performance:
		return "performance"
	default:
		return "unknown"
	}
}

// ParseCategory is the inverse of Category.String
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	case "performance", "perf":
		return Performance, nil
	}
	return 0, errors.Errorf("unknown log category %q", s)
}

// 📝 Entry is a single diagnostic event
type Entry struct {
	Level    int
	Category Category
	Time     time.Time
	Message  string

	// Stage and Elapsed are set on performance entries
	Stage   string
	Elapsed time.Duration
}

// Sink receives entries that pass a Logger's filter
type Sink func(Entry)

// 🎯 Logger decides which entries reach its sink
type Logger struct {
	Categories   []Category
	MinimalLevel int
	Sink         Sink
}

// Interested reports whether c is one of the logger's categories
func (l Logger) Interested(c Category) bool {
	for _, cat := range l.Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// 📦 Context pairs a value with the diagnostic events produced while computing it
type Context[T any] struct {
	value   T
	pending []Entry
	emitted []Entry
}

// now is replaced in tests
var now = time.Now

// Of wraps v with no events
func Of[T any](v T) Context[T] {
	return Context[T]{value: v}
}

func newEntry[T any](c Category, level int, msg string, v T) Context[T] {
	return Context[T]{
		value:   v,
		pending: []Entry{{Level: level, Category: c, Time: now(), Message: msg}},
	}
}

func NewDebug[T any](level int, msg string, v T) Context[T] {
	return newEntry(Debug, level, msg, v)
}

func NewInfo[T any](level int, msg string, v T) Context[T] {
	return newEntry(Info, level, msg, v)
}

func NewWarn[T any](level int, msg string, v T) Context[T] {
	return newEntry(Warn, level, msg, v)
}

func NewError[T any](level int, msg string, v T) Context[T] {
	return newEntry(Error, level, msg, v)
}

// NewPerformance records that stage took elapsed
func NewPerformance[T any](level int, stage string, elapsed time.Duration, v T) Context[T] {
	ctx := newEntry(Performance, level, stage, v)
	ctx.pending[0].Stage = stage
	ctx.pending[0].Elapsed = elapsed
	return ctx
}

// Value returns the wrapped value
func (c Context[T]) Value() T {
	return c.value
}

// Pending returns the entries no logger has been interested in yet
func (c Context[T]) Pending() []Entry {
	return append([]Entry(nil), c.pending...)
}

// Emitted returns the entries a logger has already consumed
func (c Context[T]) Emitted() []Entry {
	return append([]Entry(nil), c.emitted...)
}

// Append adds entries to the pending list, after the existing ones
func (c Context[T]) Append(entries ...Entry) Context[T] {
	return Context[T]{
		value:   c.value,
		pending: concat(c.pending, entries),
		emitted: c.emitted,
	}
}

// 🔄 Map transforms the value and keeps the events
func Map[T, U any](c Context[T], fn func(T) U) Context[U] {
	return Context[U]{
		value:   fn(c.value),
		pending: c.pending,
		emitted: c.emitted,
	}
}

// 🔗 Bind threads the value into fn. The events fn produces come first,
// followed by the events already carried by c.
func Bind[T, U any](c Context[T], fn func(T) Context[U]) Context[U] {
	inner := fn(c.value)
	return Context[U]{
		value:   inner.value,
		pending: concat(inner.pending, c.pending),
		emitted: concat(inner.emitted, c.emitted),
	}
}

// 📣 Evaluate checks every pending entry against logger, in order. Entries in
// a category the logger is interested in are emitted, and reach the sink when
// their level is at least the logger's minimal level. Other entries stay
// pending for a later Evaluate.
func Evaluate[T any](logger Logger, c Context[T]) Context[T] {
	var pending, emitted []Entry
	emitted = append(emitted, c.emitted...)

	for _, e := range c.pending {
		if !logger.Interested(e.Category) {
			pending = append(pending, e)
			continue
		}
		emitted = append(emitted, e)
		if logger.MinimalLevel <= e.Level && logger.Sink != nil {
			logger.Sink(e)
		}
	}

	return Context[T]{value: c.value, pending: pending, emitted: emitted}
}

func concat(a, b []Entry) []Entry {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
