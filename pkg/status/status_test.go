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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSWriteFile(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		path    string
		content string
	}{
		{
			name:    "creates_parent_directories",
			path:    "nested/deeper/out.h",
			content: "header",
		},
		{
			name: "replaces_existing_file",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "out.m"), []byte("old"), 0644))
			},
			path:    "out.m",
			content: "new",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}

			target := filepath.Join(dir, tt.path)
			require.NoError(t, OS{}.WriteFile(target, []byte(tt.content)), "writing file should succeed")

			got, err := os.ReadFile(target)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(got), "content should match")

			_, err = os.Stat(target + ".tmp")
			assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
		})
	}
}

func TestOSReadErrorsWrapNotExist(t *testing.T) {
	_, err := OS{}.ReadFile(filepath.Join(t.TempDir(), "missing.value"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "error should wrap os.ErrNotExist")
}

func TestDryRunDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.h")

	fsys := DryRun(OS{})
	require.NoError(t, fsys.WriteFile(target, []byte("content")))

	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err), "dry run should not create files")

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err, "reads should pass through")
	assert.Empty(t, entries)
}

func TestClassifyAndDiff(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.h")
	require.NoError(t, os.WriteFile(existing, []byte("abc"), 0644))

	tests := []struct {
		name         string
		path         string
		content      string
		want         FileStatus
		wantInserted int
		wantDeleted  int
	}{
		{name: "missing", path: filepath.Join(dir, "missing.h"), content: "abc", want: StatusNew, wantInserted: 3},
		{name: "same", path: existing, content: "abc", want: StatusUnchanged},
		{name: "different", path: existing, content: "abd", want: StatusModified, wantInserted: 1, wantDeleted: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(OS{}, tt.path, []byte(tt.content)))

			ins, del := DiffSummary(OS{}, tt.path, []byte(tt.content))
			assert.Equal(t, tt.wantInserted, ins, "inserted count")
			assert.Equal(t, tt.wantDeleted, del, "deleted count")
		})
	}
}

func TestDefaultFileFormatter(t *testing.T) {
	f := NewDefaultFileFormatter()

	tests := []struct {
		name   string
		status FileStatus
		dryRun bool
		want   string
	}{
		{name: "new", status: StatusNew, want: "✨ Created a.h"},
		{name: "modified", status: StatusModified, want: "📝 Modified a.h"},
		{name: "unchanged", status: StatusUnchanged, want: "👍 Unchanged a.h"},
		{name: "dry_new", status: StatusNew, dryRun: true, want: "✨ Would create a.h"},
		{name: "dry_modified", status: StatusModified, dryRun: true, want: "📝 Would modify a.h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatWrite("a.h", tt.status, tt.dryRun))
		})
	}
}

func TestFormatFileOperation(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	got := FormatFileOperation("Person.h", "header", StatusNew, 120, 0)
	assert.Equal(t, "    ✓ Person.h                            header   new        +120 -0", got)
}
