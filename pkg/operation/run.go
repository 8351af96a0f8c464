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
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/walteh/remodel/pkg/future"
	"github.com/walteh/remodel/pkg/logctx"
	"github.com/walteh/remodel/pkg/pipeline"
	"github.com/walteh/remodel/pkg/sequence"
	"github.com/walteh/remodel/pkg/status"
)

// DefaultMaxOpenFiles bounds concurrent reads when Options leaves it unset
const DefaultMaxOpenFiles = 64

// 🔍 Scanner discovers specification files
type Scanner interface {
	ScanFiles(root, suffix string) *sequence.Sequence[string]
}

// 🔧 Options configures one pipeline run
type Options[S any] struct {
	// Root is scanned for files ending in "." + Suffix
	Root    string
	Suffix  string
	Scanner Scanner

	FileSystem status.FileSystem

	// Parse and Generate turn a file's content into the files to write
	Parse    func(content string) (S, error)
	Generate func(path string, spec S) (WriteRequest, error)

	// DryRun classifies every output without writing it
	DryRun bool
	Logger logctx.Logger

	// Exclude holds doublestar patterns matched against paths relative to Root
	Exclude      []string
	MaxOpenFiles int64
}

// 📊 Outcome counts the specifications of a run by result
type Outcome struct {
	Name         string
	SuccessCount int
	ErrorCount   int
}

// ExitCode is the process status a run with this outcome should end with
func (o Outcome) ExitCode() int {
	if o.ErrorCount > 0 {
		return 1
	}
	return 0
}

func (o Outcome) tally(r pipeline.Result[WriteRequest]) Outcome {
	if r.Ok() {
		o.SuccessCount++
	} else {
		o.ErrorCount++
	}
	return o
}

// excluded reports whether path matches one of the patterns, relative to root
func excluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// 🚀 RunPipeline reads, generates and writes every specification below
// opts.Root. Reads start as soon as a path is discovered; the later stages run
// one file at a time in discovery order, and each stage's entries are
// evaluated against opts.Logger as soon as it completes, so the lines of one
// file always precede the lines of the next.
func RunPipeline[S any](ctx context.Context, opts Options[S]) *future.Future[Outcome] {
	logger := zerolog.Ctx(ctx).With().Str("root", opts.Root).Logger()

	limit := opts.MaxOpenFiles
	if limit <= 0 {
		limit = DefaultMaxOpenFiles
	}
	sem := semaphore.NewWeighted(limit)

	read := pipeline.Instrument("read", ReadFile(ctx, opts.FileSystem, sem))
	generate := pipeline.Instrument("generate", Generate(opts.Parse, opts.Generate))
	write := pipeline.Instrument("write", WriteFiles(opts.FileSystem, opts.DryRun))

	paths := sequence.Filter(opts.Scanner.ScanFiles(opts.Root, opts.Suffix), func(path string) bool {
		if excluded(opts.Root, path, opts.Exclude) {
			logger.Debug().Str("path", path).Msg("excluded")
			return false
		}
		return true
	})

	reads := sequence.Map(paths, func(path string) *future.Future[logctx.Context[pipeline.Result[Source]]] {
		logger.Debug().Str("path", path).Str("stage", "read").Msg("discovered")
		return read(logctx.Of(path))
	})

	step := func(acc Outcome, pending *future.Future[logctx.Context[pipeline.Result[Source]]]) *future.Future[Outcome] {
		return future.Bind(pipeline.Evaluated(opts.Logger, pending), func(src logctx.Context[pipeline.Result[Source]]) *future.Future[Outcome] {
			return future.Bind(pipeline.Evaluated(opts.Logger, generate(src)), func(req logctx.Context[pipeline.Result[WriteRequest]]) *future.Future[Outcome] {
				return future.Map(pipeline.Evaluated(opts.Logger, write(req)), func(done logctx.Context[pipeline.Result[WriteRequest]]) Outcome {
					return acc.tally(done.Value())
				})
			})
		})
	}

	return future.Map(sequence.FoldlFuture(reads, step, Outcome{Name: opts.Root}), func(o Outcome) Outcome {
		logger.Debug().
			Int("success_count", o.SuccessCount).
			Int("error_count", o.ErrorCount).
			Msg("pipeline finished")
		return o
	})
}
