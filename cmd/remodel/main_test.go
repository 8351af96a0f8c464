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

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs the worker command when the test binary is re-executed as a
// subprocess scan worker
func TestMain(m *testing.M) {
	if len(os.Args) > 1 && os.Args[1] == "worker" {
		os.Exit(run(context.Background(), os.Args[1:]))
	}
	os.Exit(m.Run())
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		args     func(dir string) []string
		wantCode int
		validate func(t *testing.T, dir string)
	}{
		{
			name:  "generates_into_tree",
			files: map[string]string{"models/Person.value": "Person {\n  NSString *name\n}\n"},
			args:  func(dir string) []string { return []string{dir} },
			validate: func(t *testing.T, dir string) {
				assert.FileExists(t, filepath.Join(dir, "models", "Person.h"))
				assert.FileExists(t, filepath.Join(dir, "models", "Person.m"))
			},
		},
		{
			name:  "generate_subcommand_with_flags",
			files: map[string]string{"Person.value": "Person {\n}\n"},
			args: func(dir string) []string {
				return []string{"generate", "--dry-run", "--perf-log", "--verbose", "--workers", "3", dir}
			},
			validate: func(t *testing.T, dir string) {
				assert.NoFileExists(t, filepath.Join(dir, "Person.h"))
			},
		},
		{
			name: "subprocess_workers",
			files: map[string]string{
				"Person.value":       "Person {\n  NSString *name\n}\n",
				"deep/a/Token.value": "Token {\n  CGFloat weight\n}\n",
				".hidden/Skip.value": "Skip {\n}\n",
				"deep/a/notes.txt":   "",
			},
			args: func(dir string) []string { return []string{"--subprocess", "--workers", "3", dir} },
			validate: func(t *testing.T, dir string) {
				assert.FileExists(t, filepath.Join(dir, "Person.m"))
				assert.FileExists(t, filepath.Join(dir, "deep", "a", "Token.h"))
				assert.NoFileExists(t, filepath.Join(dir, ".hidden", "Skip.h"))
			},
		},
		{
			name:     "subprocess_specification_errors_exit_1",
			files:    map[string]string{"Bad.value": "Bad {\n  NSString\n}\n"},
			args:     func(dir string) []string { return []string{"--subprocess", "--workers", "2", dir} },
			wantCode: 1,
		},
		{
			name:     "specification_errors_exit_1",
			files:    map[string]string{"Bad.value": "Bad {\n  NSString\n}\n"},
			args:     func(dir string) []string { return []string{dir} },
			wantCode: 1,
		},
		{
			name:     "missing_config_exits_1",
			args:     func(dir string) []string { return []string{"--config", filepath.Join(dir, "missing.yaml"), dir} },
			wantCode: 1,
		},
		{
			name:     "unknown_flag_exits_1",
			args:     func(dir string) []string { return []string{"--no-such-flag"} },
			wantCode: 1,
		},
		{
			name: "version",
			args: func(dir string) []string { return []string{"version"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				path := filepath.Join(dir, name)
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			}

			assert.Equal(t, tt.wantCode, run(context.Background(), tt.args(dir)))
			if tt.validate != nil {
				tt.validate(t, dir)
			}
		})
	}
}

func TestFormatVersion(t *testing.T) {
	got := FormatVersion(VersionInfo{
		Version:   "v1.2.3",
		GoVersion: "go1.23.5",
		Platform:  "linux/amd64",
		Revision:  "abc123",
		Time:      "2025-01-01T00:00:00Z",
		Modified:  true,
	})
	assert.Contains(t, got, "remodel v1.2.3")
	assert.Contains(t, got, "abc123 (modified)")
	assert.Contains(t, got, "linux/amd64")

	assert.Contains(t, FormatVersion(VersionInfo{Version: "dev"}), "Revision:  unknown")
}
