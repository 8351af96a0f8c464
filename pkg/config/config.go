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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/remodel/pkg/logctx"
)

const (
	DefaultSuffix       = "value"
	DefaultMaxOpenFiles = 64

	TransportInProcess  = "inprocess"
	TransportSubprocess = "subprocess"
)

// FileNames are the project config files looked up by Find, in order
var FileNames = []string{
	".remodelrc.yaml",
	".remodelrc.yml",
	".remodelrc.hcl",
	".remodelrc.json",
}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📜 LogConfig selects which diagnostics reach the console
type LogConfig struct {
	Categories   []string `json:"categories,omitempty" yaml:"categories,omitempty" hcl:"categories,optional"`
	MinimalLevel int      `json:"minimal_level,omitempty" yaml:"minimal_level,omitempty" hcl:"minimal_level,optional"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Suffix          string     `json:"suffix,omitempty" yaml:"suffix,omitempty" hcl:"suffix,optional"`
	DefaultIncludes []string   `json:"default_includes,omitempty" yaml:"default_includes,omitempty" hcl:"default_includes,optional"`
	DefaultExcludes []string   `json:"default_excludes,omitempty" yaml:"default_excludes,omitempty" hcl:"default_excludes,optional"`
	Exclude         []string   `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Workers         int        `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`
	Transport       string     `json:"transport,omitempty" yaml:"transport,omitempty" hcl:"transport,optional"`
	MaxOpenFiles    int        `json:"max_open_files,omitempty" yaml:"max_open_files,omitempty" hcl:"max_open_files,optional"`
	DryRun          bool       `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	Log             *LogConfig `json:"log,omitempty" yaml:"log,omitempty" hcl:"log,block"`

	location string
}

// 🏭 Default returns a validated config with every default filled in
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// 🔍 Find returns the first project config file in dir, or "" if there is none
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating %s: %w", path, err)
	}

	return cfg, nil
}

// Location is the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	cfg.Suffix = strings.TrimPrefix(strings.TrimSpace(cfg.Suffix), ".")
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if strings.ContainsAny(cfg.Suffix, `./\`) {
		return errors.Errorf("suffix %q must be a single extension", cfg.Suffix)
	}

	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}

	switch cfg.Transport {
	case "":
		cfg.Transport = TransportInProcess
	case TransportInProcess, TransportSubprocess:
	default:
		return errors.Errorf("unknown transport %q", cfg.Transport)
	}

	if cfg.MaxOpenFiles < 0 {
		return errors.Errorf("max_open_files must not be negative, got %d", cfg.MaxOpenFiles)
	}
	if cfg.MaxOpenFiles == 0 {
		cfg.MaxOpenFiles = DefaultMaxOpenFiles
	}

	var errs []error
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, errors.Errorf("invalid exclude pattern %q", pattern))
		}
	}

	if cfg.Log == nil {
		cfg.Log = &LogConfig{}
	}
	if len(cfg.Log.Categories) == 0 {
		cfg.Log.Categories = []string{"info", "warn", "error"}
	}
	for _, c := range cfg.Log.Categories {
		if _, err := logctx.ParseCategory(c); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// 📜 Categories returns the configured log categories
func (cfg *Config) Categories() []logctx.Category {
	var out []logctx.Category
	for _, c := range cfg.Log.Categories {
		if cat, err := logctx.ParseCategory(c); err == nil {
			out = append(out, cat)
		}
	}
	return out
}

// EnableCategory adds c to the log categories unless it is already there
func (cfg *Config) EnableCategory(c logctx.Category) {
	for _, have := range cfg.Categories() {
		if have == c {
			return
		}
	}
	cfg.Log.Categories = append(cfg.Log.Categories, c.String())
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("*.%s via %s (workers=%d, dry_run=%t)", cfg.Suffix, cfg.Transport, cfg.Workers, cfg.DryRun)
}
