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

package opts

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/remodel/pkg/config"
	"github.com/walteh/remodel/pkg/logctx"
)

// RootOpts contains the flags shared by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool

	DryRun     bool
	Verbose    bool
	PerfLog    bool
	Subprocess bool
	Workers    int
	Suffix     string
}

// 🎯 Config loads the project config and applies the command line on top of
// it. Without --config, dir is searched for a config file; without one the
// defaults are used.
func (o *RootOpts) Config(ctx context.Context, dir string) (*config.Config, error) {
	path := o.ConfigFile
	if path == "" {
		path = config.Find(dir)
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if o.DryRun {
		cfg.DryRun = true
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	if o.Subprocess {
		cfg.Transport = config.TransportSubprocess
	}
	if o.Suffix != "" {
		cfg.Suffix = o.Suffix
	}
	if o.Verbose {
		cfg.EnableCategory(logctx.Debug)
	}
	if o.PerfLog {
		cfg.EnableCategory(logctx.Performance)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("config", cfg.Location()).
		Stringer("settings", cfg).
		Msg("configuration resolved")

	return cfg, nil
}
