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

package scan

import (
	"sync"
)

// mailbox runs handler on its own goroutine for every message sent to it.
// Send never blocks: pending messages queue without bound, so two mailboxes
// can message each other freely without deadlocking.
type mailbox[T any] struct {
	handler func(T) bool
	pending []T
	closed  bool
	*sync.Cond
}

func newMailbox[T any](handler func(T) bool) *mailbox[T] {
	m := &mailbox[T]{
		handler: handler,
		Cond:    sync.NewCond(&sync.Mutex{}),
	}
	go m.run()
	return m
}

// Send queues msg. Messages sent after close are dropped.
func (m *mailbox[T]) Send(msg T) {
	m.L.Lock()
	if !m.closed {
		m.pending = append(m.pending, msg)
		m.Signal()
	}
	m.L.Unlock()
}

// close stops the mailbox and drops whatever is still queued
func (m *mailbox[T]) close() {
	m.L.Lock()
	m.closed = true
	m.pending = nil
	m.Signal()
	m.L.Unlock()
}

func (m *mailbox[T]) run() {
	for {
		m.L.Lock()
		for len(m.pending) == 0 && !m.closed {
			m.Wait()
		}
		if m.closed {
			m.L.Unlock()
			return
		}
		msg := m.pending[0]
		m.pending = m.pending[1:]
		m.L.Unlock()

		if !m.handler(msg) {
			m.close()
			return
		}
	}
}
