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

package future

import (
	"context"
	"sync"
)

// 🔮 Future is a read-only handle to a value that becomes available at most once
type Future[T any] struct {
	mu    sync.Mutex
	set   bool
	value T
	conts []func(T)
	done  chan struct{}
}

// ✍️ Deferred is the write side of a Future
type Deferred[T any] struct {
	future *Future[T]
}

// 🏭 Pending creates an unset future and the handle that resolves it
func Pending[T any]() (*Deferred[T], *Future[T]) {
	f := &Future[T]{done: make(chan struct{})}
	return &Deferred[T]{future: f}, f
}

// 🏭 Resolved creates a future that already holds v
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{set: true, value: v, done: make(chan struct{})}
	close(f.done)
	return f
}

// 🚀 Go runs fn on its own goroutine and resolves the returned future with its result
func Go[T any](fn func() T) *Future[T] {
	d, f := Pending[T]()
	go func() {
		d.SetValue(fn())
	}()
	return f
}

// SetValue resolves the future. Queued continuations run synchronously, in
// registration order, on the caller's goroutine. Resolving twice panics.
func (d *Deferred[T]) SetValue(v T) {
	f := d.future

	f.mu.Lock()
	if f.set {
		f.mu.Unlock()
		panic("future: value set twice")
	}
	f.set = true
	f.value = v
	conts := f.conts
	f.conts = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range conts {
		fn(v)
	}
}

// Future returns the read side of d
func (d *Deferred[T]) Future() *Future[T] {
	return d.future
}

// Then calls fn with the value. If the value is already set fn runs before Then
// returns, otherwise it is queued until SetValue.
func (f *Future[T]) Then(fn func(T)) {
	f.mu.Lock()
	if !f.set {
		f.conts = append(f.conts, fn)
		f.mu.Unlock()
		return
	}
	v := f.value
	f.mu.Unlock()
	fn(v)
}

// Peek returns the value if the future is resolved
func (f *Future[T]) Peek() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.set
}

// Done is closed once the value is set
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// ⏳ Wait blocks until the value is set or ctx is done
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		v, _ := f.Peek()
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// 🔄 Map returns a future resolved with fn(value) once f resolves
func Map[T, U any](f *Future[T], fn func(T) U) *Future[U] {
	d, out := Pending[U]()
	f.Then(func(v T) {
		d.SetValue(fn(v))
	})
	return out
}

// 🔗 Bind returns a future resolved when the future produced by fn resolves
func Bind[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	d, out := Pending[U]()
	f.Then(func(v T) {
		fn(v).Then(d.SetValue)
	})
	return out
}

// Apply resolves with fn(arg) once both the function and the argument are
// available, in whichever order they arrive.
func Apply[T, U any](ff *Future[func(T) U], fa *Future[T]) *Future[U] {
	return Bind(ff, func(fn func(T) U) *Future[U] {
		return Map(fa, fn)
	})
}

// 📦 All resolves once every future in fs resolves. The result keeps the order
// of fs regardless of the order in which the elements complete.
func All[T any](fs []*Future[T]) *Future[[]T] {
	acc := Resolved([]T{})
	for i := len(fs) - 1; i >= 0; i-- {
		prepend := Map(fs[i], func(v T) func([]T) []T {
			return func(rest []T) []T {
				out := make([]T, 0, len(rest)+1)
				out = append(out, v)
				return append(out, rest...)
			}
		})
		acc = Apply(prepend, acc)
	}
	return acc
}
