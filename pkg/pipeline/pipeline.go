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

package pipeline

import (
	"time"

	"github.com/walteh/remodel/pkg/future"
	"github.com/walteh/remodel/pkg/logctx"
)

// PerformanceLevel is the level of the entries Instrument records
const PerformanceLevel = 1

// now is replaced in tests
var now = time.Now

// ✅ Result is either a value or the error that prevented computing it
type Result[T any] struct {
	Value T
	Err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Ok reports whether r holds a value
func (r Result[T]) Ok() bool {
	return r.Err == nil
}

// Stage is an asynchronous step whose result carries its own log events
type Stage[A, B any] func(A) *future.Future[logctx.Context[B]]

// 📏 Instrument lifts stage so that it accepts a Context. The returned stage
// merges the incoming events with the ones stage produces and records a
// performance entry with the wall-clock time stage took.
func Instrument[A, B any](name string, stage Stage[A, B]) Stage[logctx.Context[A], B] {
	return func(in logctx.Context[A]) *future.Future[logctx.Context[B]] {
		start := now()
		return future.Map(stage(in.Value()), func(out logctx.Context[B]) logctx.Context[B] {
			perf := logctx.NewPerformance(PerformanceLevel, name, now().Sub(start), struct{}{})
			return logctx.Bind(in, func(A) logctx.Context[B] {
				return out.Append(perf.Pending()...)
			})
		})
	}
}

// Lift turns a synchronous function into a Stage that resolves immediately
func Lift[A, B any](fn func(A) logctx.Context[B]) Stage[A, B] {
	return func(a A) *future.Future[logctx.Context[B]] {
		return future.Resolved(fn(a))
	}
}

// Evaluated checks the events of f's context against logger once f resolves
func Evaluated[T any](logger logctx.Logger, f *future.Future[logctx.Context[T]]) *future.Future[logctx.Context[T]] {
	return future.Map(f, func(c logctx.Context[T]) logctx.Context[T] {
		return logctx.Evaluate(logger, c)
	})
}
