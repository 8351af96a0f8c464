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
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/semaphore"

	"github.com/walteh/remodel/pkg/future"
	"github.com/walteh/remodel/pkg/logctx"
	"github.com/walteh/remodel/pkg/pipeline"
	"github.com/walteh/remodel/pkg/status"
)

// failure records err against path. Every line of the message becomes its own
// entry so that joined errors stay readable.
func failure[T any](path string, err error) logctx.Context[pipeline.Result[T]] {
	out := logctx.Of(pipeline.Fail[T](err))
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		out = out.Append(logctx.NewError(LevelError, path+": "+line, struct{}{}).Pending()...)
	}
	return out
}

// 📖 ReadFile reads a specification on its own goroutine. At most sem's weight
// reads are in flight at once.
func ReadFile(ctx context.Context, fsys status.FileSystem, sem *semaphore.Weighted) pipeline.Stage[string, pipeline.Result[Source]] {
	return func(path string) *future.Future[logctx.Context[pipeline.Result[Source]]] {
		return future.Go(func() logctx.Context[pipeline.Result[Source]] {
			if err := sem.Acquire(ctx, 1); err != nil {
				return failure[Source](path, errors.Errorf("waiting to read: %w", err))
			}
			defer sem.Release(1)

			content, err := fsys.ReadFile(path)
			if err != nil {
				return failure[Source](path, err)
			}

			msg := fmt.Sprintf("read %s (%d bytes)", path, len(content))
			return logctx.NewDebug(LevelDetail, msg, pipeline.Ok(Source{Path: path, Content: string(content)}))
		})
	}
}

// ⚙️ Generate parses a source and produces its write request
func Generate[S any](parse func(string) (S, error), generate func(string, S) (WriteRequest, error)) pipeline.Stage[pipeline.Result[Source], pipeline.Result[WriteRequest]] {
	return pipeline.Lift(func(in pipeline.Result[Source]) logctx.Context[pipeline.Result[WriteRequest]] {
		if !in.Ok() {
			return logctx.Of(pipeline.Fail[WriteRequest](in.Err))
		}
		src := in.Value

		spec, err := parse(src.Content)
		if err != nil {
			return failure[WriteRequest](src.Path, err)
		}

		req, err := generate(src.Path, spec)
		if err != nil {
			return failure[WriteRequest](src.Path, err)
		}

		msg := fmt.Sprintf("generated %s (%d files)", req.Name, len(req.Files))
		return logctx.NewDebug(LevelDetail, msg, pipeline.Ok(req))
	})
}

type written struct {
	file     File
	status   status.FileStatus
	inserted int
	deleted  int
	err      error
}

var formatter status.FileFormatter = status.NewDefaultFileFormatter()

// 💾 WriteFiles writes every file of a request, each on its own goroutine.
// Unchanged files are not rewritten. Under dry run nothing is written but
// every file is still classified. The first failing file, in request order,
// fails the whole request.
func WriteFiles(fsys status.FileSystem, dryRun bool) pipeline.Stage[pipeline.Result[WriteRequest], pipeline.Result[WriteRequest]] {
	return func(in pipeline.Result[WriteRequest]) *future.Future[logctx.Context[pipeline.Result[WriteRequest]]] {
		if !in.Ok() {
			return future.Resolved(logctx.Of(in))
		}
		req := in.Value

		target := fsys
		if dryRun {
			target = status.DryRun(fsys)
		}

		writes := make([]*future.Future[written], len(req.Files))
		for i, f := range req.Files {
			w := written{file: f, status: status.Classify(fsys, f.Path, f.Content)}
			w.inserted, w.deleted = status.DiffSummary(fsys, f.Path, f.Content)

			if w.status == status.StatusUnchanged {
				writes[i] = future.Resolved(w)
				continue
			}
			writes[i] = future.Go(func() written {
				w.err = target.WriteFile(w.file.Path, w.file.Content)
				return w
			})
		}

		return future.Map(future.All(writes), func(results []written) logctx.Context[pipeline.Result[WriteRequest]] {
			var entries []logctx.Entry
			for _, w := range results {
				if w.err != nil {
					failed := failure[WriteRequest](w.file.Path, w.err)
					return logctx.Of(failed.Value()).Append(entries...).Append(failed.Pending()...)
				}
				line := status.FormatFileOperation(w.file.Path, w.file.Kind(), w.status, w.inserted, w.deleted)
				entries = append(entries, logctx.NewInfo(LevelFile, line, struct{}{}).Pending()...)
				entries = append(entries, logctx.NewDebug(LevelDetail, formatter.FormatWrite(w.file.Path, w.status, dryRun), struct{}{}).Pending()...)
			}
			return logctx.Of(in).Append(entries...)
		})
	}
}
