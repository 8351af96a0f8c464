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
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileSystem is what a worker needs to list directories
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
}

// Matches reports whether name is a specification file for suffix: the
// extension must be exactly "." + suffix and dotfiles never match.
func Matches(name, suffix string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return filepath.Ext(base) == "."+suffix
}

// 🔍 Scan handles one request. It never fails: problems listing the directory
// are reported in Reply.Error and the reply carries no files or directories.
// Symlinks to files are followed; symlinks to directories are not descended.
func Scan(fsys FileSystem, req Request) Reply {
	reply := Reply{RequestID: req.RequestID, Suffix: req.Suffix}

	if Matches(req.Directory, req.Suffix) {
		info, err := fsys.Stat(req.Directory)
		if err == nil && !info.IsDir() {
			reply.Files = []string{req.Directory}
			return reply
		}
	}

	entries, err := fsys.ReadDir(req.Directory)
	if err != nil {
		reply.Error = err.Error()
		return reply
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(req.Directory, name)

		if strings.HasPrefix(name, ".") {
			continue
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := fsys.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}
		}

		switch {
		case entry.IsDir():
			reply.Directories = append(reply.Directories, path)
		case Matches(name, req.Suffix):
			reply.Files = append(reply.Files, path)
		}
	}

	return reply
}

// 🏃 Serve answers requests read from r until r ends or ctx is done. It is the
// main loop of a worker process.
func Serve(ctx context.Context, r io.Reader, w io.Writer, fsys FileSystem) error {
	logger := zerolog.Ctx(ctx)
	dec := NewDecoder(r)
	enc := NewEncoder(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				logger.Debug().Msg("request stream closed")
				return nil
			}
			return errors.Errorf("reading request: %w", err)
		}

		logger.Debug().
			Uint64("request_id", req.RequestID).
			Str("directory", req.Directory).
			Msg("scanning")

		if err := enc.Encode(Scan(fsys, req)); err != nil {
			return errors.Errorf("writing reply: %w", err)
		}
	}
}
