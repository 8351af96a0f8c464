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

package sequence

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/remodel/pkg/future"
)

func TestEvaluateBeforeAndAfterFinished(t *testing.T) {
	values := []string{"a", "b", "c", "d"}

	src := NewSource[string]()
	seq := src.Sequence()

	before := seq.Evaluate()
	for _, v := range values {
		src.NextValue(v)
	}
	_, ok := before.Peek()
	assert.False(t, ok, "evaluate should wait for Finished")

	src.Finished()
	after := seq.Evaluate()

	b, ok := before.Peek()
	require.True(t, ok)
	a, ok := after.Peek()
	require.True(t, ok)

	assert.Equal(t, values, b, "evaluate before finish should see every value in push order")
	assert.Equal(t, values, a, "evaluate after finish should see every value in push order")
	assert.True(t, seq.IsFinished())
}

func TestLateSubscriberReplaysHistory(t *testing.T) {
	src := NewSource[int]()
	src.NextValue(1)
	src.NextValue(2)

	var got []int
	src.Sequence().ForEach(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{1, 2}, got, "history should be replayed before ForEach returns")

	src.NextValue(3)
	assert.Equal(t, []int{1, 2, 3}, got, "new values should be delivered as they are pushed")
}

func TestNextValueAfterFinishedPanics(t *testing.T) {
	src := NewSource[int]()
	src.Finished()

	assert.Panics(t, func() {
		src.NextValue(1)
	})
}

func TestMapFilterFold(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		finish bool
		check  func(t *testing.T, seq *Sequence[string])
	}{
		{
			name:  "map_forwards_finished",
			input: []string{"a", "b"},
			check: func(t *testing.T, seq *Sequence[string]) {
				upper := Map(seq, strings.ToUpper)
				v, ok := upper.Evaluate().Peek()
				require.True(t, ok, "mapped sequence should finish with its input")
				assert.Equal(t, []string{"A", "B"}, v)
			},
		},
		{
			name:  "filter",
			input: []string{"keep.value", "drop.txt", "also.value"},
			check: func(t *testing.T, seq *Sequence[string]) {
				kept := Filter(seq, func(s string) bool { return strings.HasSuffix(s, ".value") })
				v, ok := kept.Evaluate().Peek()
				require.True(t, ok)
				assert.Equal(t, []string{"keep.value", "also.value"}, v)
			},
		},
		{
			name:  "foldl",
			input: []string{"x", "y", "z"},
			check: func(t *testing.T, seq *Sequence[string]) {
				joined := Foldl(seq, func(acc string, v string) string { return acc + v }, ">")
				v, ok := joined.Peek()
				require.True(t, ok)
				assert.Equal(t, ">xyz", v)
			},
		},
		{
			name:  "foldl_empty",
			input: nil,
			check: func(t *testing.T, seq *Sequence[string]) {
				n := Foldl(seq, func(acc int, _ string) int { return acc + 1 }, 0)
				v, ok := n.Peek()
				require.True(t, ok)
				assert.Equal(t, 0, v)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, FromSlice(tt.input))
		})
	}
}

func TestMapBeforeFinish(t *testing.T) {
	src := NewSource[int]()
	doubled := Map(src.Sequence(), func(v int) int { return v * 2 })
	result := doubled.Evaluate()

	src.NextValue(1)
	src.NextValue(5)
	_, ok := result.Peek()
	assert.False(t, ok)

	src.Finished()
	v, ok := result.Peek()
	require.True(t, ok)
	assert.Equal(t, []int{2, 10}, v)
}

func TestFoldlFutureRunsStepsInOrder(t *testing.T) {
	src := NewSource[int]()

	var mu sync.Mutex
	var started []int
	gates := map[int]*future.Deferred[struct{}]{}
	gateFutures := map[int]*future.Future[struct{}]{}
	for i := 1; i <= 3; i++ {
		gates[i], gateFutures[i] = future.Pending[struct{}]()
	}

	total := FoldlFuture(src.Sequence(), func(acc int, v int) *future.Future[int] {
		mu.Lock()
		started = append(started, v)
		mu.Unlock()
		return future.Map(gateFutures[v], func(struct{}) int { return acc + v })
	}, 0)

	src.NextValue(1)
	src.NextValue(2)
	src.NextValue(3)
	src.Finished()

	assert.Equal(t, []int{1}, started, "second step should wait for the first")

	gates[2].SetValue(struct{}{})
	assert.Equal(t, []int{1}, started, "resolving a later gate should not start its step early")

	gates[1].SetValue(struct{}{})
	assert.Equal(t, []int{1, 2, 3}, started)

	_, ok := total.Peek()
	assert.False(t, ok, "fold should wait for the last step")

	gates[3].SetValue(struct{}{})
	v, err := total.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, v)
}

func TestConcurrentPushKeepsOrderForSubscribers(t *testing.T) {
	src := NewSource[int]()
	seq := src.Sequence()

	var early []int
	seq.ForEach(func(v int) { early = append(early, v) })

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			src.NextValue(i)
		}
		src.Finished()
	}()

	var late []int
	seq.ForEach(func(v int) { late = append(late, v) })
	<-done

	all, err := seq.Evaluate().Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, all, early, "early subscriber should see every value in order")
	assert.Equal(t, all, late, "late subscriber should see every value in order")
}
