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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/remodel/pkg/future"
)

// 🏃 Runner blocks on pipeline outcomes on behalf of the CLI
type Runner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *Runner {
	return &Runner{logger: logger}
}

// ⏳ Wait returns the outcome of f once it resolves. Cancelling ctx stops the
// wait, not the pipeline.
func (r *Runner) Wait(ctx context.Context, f *future.Future[Outcome]) (Outcome, error) {
	select {
	case <-ctx.Done():
		return Outcome{}, errors.Errorf("pipeline cancelled: %w", ctx.Err())
	case <-f.Done():
		out, _ := f.Peek()
		r.logger.Debug().
			Str("name", out.Name).
			Int("success_count", out.SuccessCount).
			Int("error_count", out.ErrorCount).
			Msg("pipeline complete")
		return out, nil
	}
}

// Total sums outcomes into a single Outcome called name
func Total(name string, outs []Outcome) Outcome {
	total := Outcome{Name: name}
	for _, o := range outs {
		total.SuccessCount += o.SuccessCount
		total.ErrorCount += o.ErrorCount
	}
	return total
}
