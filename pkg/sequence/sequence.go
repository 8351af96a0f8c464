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

// Package sequence provides a push-based, replayable stream of values.
//
// A Source is the producer side, a Sequence the read-only view over it. Every
// value pushed into a Source is buffered, so a subscriber that arrives late
// still sees the complete history in push order before any new value.
//
// Subscriber callbacks run on the goroutine that pushes the value and must not
// subscribe to, push into or finish the source that is delivering to them.
package sequence

import (
	"sync"

	"github.com/walteh/remodel/pkg/future"
)

type state[T any] struct {
	// deliver serializes pushes and replays so subscribers never observe
	// values out of push order
	deliver sync.Mutex

	mu          sync.Mutex
	buffer      []T
	finished    bool
	subscribers []func(T)
	waiting     []*future.Deferred[[]T]
}

// 📤 Source is the producer side of a sequence
type Source[T any] struct {
	st *state[T]
}

// 📥 Sequence is a read-only view over a Source
type Sequence[T any] struct {
	st *state[T]
}

// 🏭 NewSource creates an empty, unfinished source
func NewSource[T any]() *Source[T] {
	return &Source[T]{st: &state[T]{}}
}

// FromSlice returns a finished sequence holding vs
func FromSlice[T any](vs []T) *Sequence[T] {
	src := NewSource[T]()
	for _, v := range vs {
		src.NextValue(v)
	}
	src.Finished()
	return src.Sequence()
}

// Sequence returns the read side of s
func (s *Source[T]) Sequence() *Sequence[T] {
	return &Sequence[T]{st: s.st}
}

// NextValue buffers v and hands it to every subscriber. Pushing into a
// finished source panics.
func (s *Source[T]) NextValue(v T) {
	st := s.st
	st.deliver.Lock()
	defer st.deliver.Unlock()

	st.mu.Lock()
	if st.finished {
		st.mu.Unlock()
		panic("sequence: NextValue called after Finished")
	}
	st.buffer = append(st.buffer, v)
	subs := make([]func(T), len(st.subscribers))
	copy(subs, st.subscribers)
	st.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Finished marks the source complete and resolves every pending Evaluate
// with the full buffer.
func (s *Source[T]) Finished() {
	st := s.st
	st.deliver.Lock()
	st.mu.Lock()
	if st.finished {
		st.mu.Unlock()
		st.deliver.Unlock()
		panic("sequence: Finished called twice")
	}
	st.finished = true
	snapshot := st.snapshot()
	waiting := st.waiting
	st.waiting = nil
	st.subscribers = nil
	st.mu.Unlock()
	st.deliver.Unlock()

	for _, d := range waiting {
		d.SetValue(snapshot)
	}
}

// IsFinished reports whether Finished has been called
func (s *Sequence[T]) IsFinished() bool {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.st.finished
}

// 🔁 ForEach calls fn for every buffered value, in push order, before
// returning, then for every value pushed afterwards.
func (s *Sequence[T]) ForEach(fn func(T)) {
	st := s.st
	st.deliver.Lock()
	defer st.deliver.Unlock()

	st.mu.Lock()
	history := st.snapshot()
	if !st.finished {
		st.subscribers = append(st.subscribers, fn)
	}
	st.mu.Unlock()

	for _, v := range history {
		fn(v)
	}
}

// Evaluate returns a future holding every value of the sequence once it is
// finished. It may be called any number of times, before or after Finished.
func (s *Sequence[T]) Evaluate() *future.Future[[]T] {
	st := s.st
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.finished {
		return future.Resolved(st.snapshot())
	}
	d, f := future.Pending[[]T]()
	st.waiting = append(st.waiting, d)
	return f
}

func (st *state[T]) snapshot() []T {
	out := make([]T, len(st.buffer))
	copy(out, st.buffer)
	return out
}

// 🔄 Map returns a sequence of fn applied to every value of s, finished when s is
func Map[T, U any](s *Sequence[T], fn func(T) U) *Sequence[U] {
	out := NewSource[U]()
	s.ForEach(func(v T) {
		out.NextValue(fn(v))
	})
	s.Evaluate().Then(func([]T) {
		out.Finished()
	})
	return out.Sequence()
}

// Filter returns a sequence holding the values of s for which keep is true
func Filter[T any](s *Sequence[T], keep func(T) bool) *Sequence[T] {
	out := NewSource[T]()
	s.ForEach(func(v T) {
		if keep(v) {
			out.NextValue(v)
		}
	})
	s.Evaluate().Then(func([]T) {
		out.Finished()
	})
	return out.Sequence()
}

// 📊 Foldl accumulates the values of s from the left and resolves once s finishes
func Foldl[T, U any](s *Sequence[T], fn func(U, T) U, init U) *future.Future[U] {
	var mu sync.Mutex
	acc := init
	s.ForEach(func(v T) {
		mu.Lock()
		acc = fn(acc, v)
		mu.Unlock()
	})
	return future.Map(s.Evaluate(), func([]T) U {
		mu.Lock()
		defer mu.Unlock()
		return acc
	})
}

// FoldlFuture is Foldl with an asynchronous reducer. The step for a value
// starts only after the step for the previous value has resolved, so side
// effects of the reducer happen in push order.
func FoldlFuture[T, U any](s *Sequence[T], fn func(U, T) *future.Future[U], init U) *future.Future[U] {
	var mu sync.Mutex
	acc := future.Resolved(init)
	s.ForEach(func(v T) {
		mu.Lock()
		acc = future.Bind(acc, func(u U) *future.Future[U] {
			return fn(u, v)
		})
		mu.Unlock()
	})
	return future.Bind(s.Evaluate(), func([]T) *future.Future[U] {
		mu.Lock()
		defer mu.Unlock()
		return acc
	})
}
