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

package status

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus describes what writing a file would do to the destination
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File doesn't exist in destination
	StatusModified             // File exists but content differs
	StatusUnchanged            // File exists and content matches
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// 💾 FileSystem is everything the generator needs from the disk
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte) error
}

// 🖥️ OS is the FileSystem backed by the operating system
type OS struct{}

var _ FileSystem = OS{}

func (OS) Stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stat %s: %w", path, err)
	}
	return info, nil
}

func (OS) ReadDir(path string) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", path, err)
	}
	return entries, nil
}

func (OS) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file %s: %w", path, err)
	}
	return content, nil
}

// WriteFile creates parent directories and replaces path atomically
func (OS) WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tempPath := path + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

type dryRun struct {
	FileSystem
}

// 🧪 DryRun wraps fsys so that writes succeed without touching the disk
func DryRun(fsys FileSystem) FileSystem {
	return dryRun{FileSystem: fsys}
}

func (dryRun) WriteFile(string, []byte) error {
	return nil
}

// 🔍 Classify compares content with what is currently stored at path
func Classify(fsys FileSystem, path string, content []byte) FileStatus {
	existing, err := fsys.ReadFile(path)
	if err != nil {
		return StatusNew
	}
	if bytes.Equal(existing, content) {
		return StatusUnchanged
	}
	return StatusModified
}

// DiffSummary counts the characters inserted and deleted when replacing the
// file at path with content. A missing file counts as empty.
func DiffSummary(fsys FileSystem, path string, content []byte) (inserted, deleted int) {
	existing, _ := fsys.ReadFile(path)

	dmp := diffmatchpatch.New()
	for _, d := range dmp.DiffMain(string(existing), string(content), false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(d.Text)
		case diffmatchpatch.DiffDelete:
			deleted += len(d.Text)
		}
	}
	return inserted, deleted
}
