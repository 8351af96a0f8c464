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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/remodel/pkg/logctx"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "full_yaml",
			file: ".remodelrc.yaml",
			config: `
suffix: model
default_includes: [Equality, Description]
default_excludes: [Copying]
exclude:
  - "vendor/**"
workers: 4
transport: subprocess
max_open_files: 8
dry_run: true
log:
  categories: [info, error, performance]
  minimal_level: 2
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "model", cfg.Suffix)
				assert.Equal(t, []string{"Equality", "Description"}, cfg.DefaultIncludes)
				assert.Equal(t, []string{"Copying"}, cfg.DefaultExcludes)
				assert.Equal(t, []string{"vendor/**"}, cfg.Exclude)
				assert.Equal(t, 4, cfg.Workers)
				assert.Equal(t, TransportSubprocess, cfg.Transport)
				assert.Equal(t, 8, cfg.MaxOpenFiles)
				assert.True(t, cfg.DryRun)
				assert.Equal(t, 2, cfg.Log.MinimalLevel)
				assert.Equal(t, []logctx.Category{logctx.Info, logctx.Error, logctx.Performance}, cfg.Categories())
			},
		},
		{
			name:   "empty_yaml_uses_defaults",
			file:   ".remodelrc.yml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultSuffix, cfg.Suffix)
				assert.Equal(t, TransportInProcess, cfg.Transport)
				assert.Equal(t, DefaultMaxOpenFiles, cfg.MaxOpenFiles)
				assert.Equal(t, 0, cfg.Workers)
				assert.Equal(t, []logctx.Category{logctx.Info, logctx.Warn, logctx.Error}, cfg.Categories())
			},
		},
		{
			name: "hcl",
			file: ".remodelrc.hcl",
			config: `
suffix = default_suffix
default_includes = ["Equality"]
workers = 2

log {
  categories = ["debug", "error"]
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "value", cfg.Suffix)
				assert.Equal(t, []string{"Equality"}, cfg.DefaultIncludes)
				assert.Equal(t, 2, cfg.Workers)
				assert.Equal(t, []logctx.Category{logctx.Debug, logctx.Error}, cfg.Categories())
			},
		},
		{
			name:   "json",
			file:   ".remodelrc.json",
			config: `{"suffix": ".spec", "transport": "inprocess", "exclude": ["**/gen/**"]}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "spec", cfg.Suffix)
				assert.Equal(t, []string{"**/gen/**"}, cfg.Exclude)
			},
		},
		{
			name:        "yaml_unknown_field",
			file:        ".remodelrc.yaml",
			config:      "destination: /tmp\n",
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			file:        ".remodelrc.json",
			config:      `{"provider": {}}`,
			errContains: "parsing JSON",
		},
		{
			name:        "json_trailing_content",
			file:        ".remodelrc.json",
			config:      `{"workers": 1} {"workers": 2}`,
			errContains: "unexpected content",
		},
		{
			name:   "json_empty",
			file:   ".remodelrc.json",
			config: "\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultSuffix, cfg.Suffix)
			},
		},
		{
			name:        "hcl_syntax_error",
			file:        ".remodelrc.hcl",
			config:      `suffix = `,
			errContains: "parsing HCL",
		},
		{
			name:        "unknown_transport",
			file:        ".remodelrc.yaml",
			config:      "transport: carrier-pigeon\n",
			errContains: `unknown transport "carrier-pigeon"`,
		},
		{
			name:        "unknown_category",
			file:        ".remodelrc.yaml",
			config:      "log:\n  categories: [loud]\n",
			errContains: `unknown log category "loud"`,
		},
		{
			name:        "bad_exclude_pattern",
			file:        ".remodelrc.yaml",
			config:      "exclude: [\"[\"]\n",
			errContains: "invalid exclude pattern",
		},
		{
			name:        "negative_workers",
			file:        ".remodelrc.yaml",
			config:      "workers: -1\n",
			errContains: "workers must not be negative",
		},
		{
			name:        "suffix_with_path",
			file:        ".remodelrc.yaml",
			config:      "suffix: a/b\n",
			errContains: "single extension",
		},
		{
			name:        "unsupported_extension",
			file:        "remodel.toml",
			config:      "suffix = 'x'",
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644))

			cfg, err := Load(ctx, path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), ".remodelrc.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Find(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".remodelrc.json"), []byte("{}"), 0644))
	assert.Equal(t, filepath.Join(dir, ".remodelrc.json"), Find(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".remodelrc.yaml"), []byte(""), 0644))
	assert.Equal(t, filepath.Join(dir, ".remodelrc.yaml"), Find(dir), "yaml wins over json")
}

func TestDefaultAndEnableCategory(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "*.value via inprocess (workers=0, dry_run=false)", cfg.String())

	cfg.EnableCategory(logctx.Performance)
	cfg.EnableCategory(logctx.Performance)
	cfg.EnableCategory(logctx.Info)

	assert.Equal(t, []logctx.Category{logctx.Info, logctx.Warn, logctx.Error, logctx.Performance}, cfg.Categories())
}
