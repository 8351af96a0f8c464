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

package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/remodel/cmd/remodel/opts"
	"github.com/walteh/remodel/pkg/config"
	"github.com/walteh/remodel/pkg/log"
	"github.com/walteh/remodel/pkg/logctx"
	"github.com/walteh/remodel/pkg/operation"
	"github.com/walteh/remodel/pkg/plugin"
	"github.com/walteh/remodel/pkg/scan"
	"github.com/walteh/remodel/pkg/spec"
	"github.com/walteh/remodel/pkg/status"
)

// ExitError carries a non-zero process status out of a command
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewGenerateCmd creates the generate command. The root command runs the same
// thing when invoked with bare paths.
func NewGenerateCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Generate Objective-C value objects",
		Long: `Generate finds every specification file below the given paths and
writes the generated header and implementation next to it.
It will:
1. Search the paths in parallel for *.value files
2. Parse each file and run the configured plugins
3. Write the files that changed and print a summary`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Generate(cmd.Context(), o, args, cmd.OutOrStdout())
		},
	}
}

// 🚀 Generate runs the pipeline over each path in turn, sharing one scan pool
func Generate(ctx context.Context, o *opts.RootOpts, paths []string, console io.Writer) error {
	logger := zerolog.Ctx(ctx)

	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := o.Config(ctx, ".")
	if err != nil {
		return err
	}

	out := log.New(console, *logger)
	ctx = log.NewContext(ctx, out)
	out.Header(cfg.String())

	var transport scan.Transport = scan.InProcess{FileSystem: status.OS{}}
	if cfg.Transport == config.TransportSubprocess {
		transport = scan.Subprocess{}
	}

	pool, err := scan.NewPool(ctx, scan.Options{Workers: cfg.Workers, Transport: transport})
	if err != nil {
		return errors.Errorf("starting scan pool: %w", err)
	}
	defer func() {
		if err := pool.Shutdown(); err != nil {
			out.Warningf("stopping scan pool: %v", err)
		}
	}()

	outs := make([]operation.Outcome, 0, len(paths))
	for _, p := range paths {
		outcome, err := generatePath(ctx, cfg, pool, p)
		if err != nil {
			return err
		}
		outs = append(outs, outcome)
	}

	total := operation.Total("all", outs)
	if total.ErrorCount > 0 {
		out.Errorf("%d of %d specifications failed", total.ErrorCount, total.SuccessCount+total.ErrorCount)
	}
	if cfg.DryRun {
		out.Success("dry run complete: no files were written")
	}

	if code := total.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

func generatePath(ctx context.Context, cfg *config.Config, pool operation.Scanner, path string) (operation.Outcome, error) {
	out := log.FromContext(ctx)

	root, err := filepath.Abs(path)
	if err != nil {
		return operation.Outcome{}, errors.Errorf("resolving %s: %w", path, err)
	}
	out.Info(fmt.Sprintf("searching %s for *.%s", root, cfg.Suffix))

	registry := plugin.Builtin()
	plugins := plugin.Config{DefaultIncludes: cfg.DefaultIncludes, DefaultExcludes: cfg.DefaultExcludes}

	run := operation.RunPipeline(ctx, operation.Options[spec.Type]{
		Root:       root,
		Suffix:     cfg.Suffix,
		Scanner:    pool,
		FileSystem: status.OS{},
		Parse:      spec.Parse,
		Generate: func(path string, t spec.Type) (operation.WriteRequest, error) {
			return registry.Generate(path, t, plugins)
		},
		DryRun: cfg.DryRun,
		Logger: logctx.Logger{
			Categories:   cfg.Categories(),
			MinimalLevel: cfg.Log.MinimalLevel,
			Sink:         out.Sink(),
		},
		Exclude:      cfg.Exclude,
		MaxOpenFiles: int64(cfg.MaxOpenFiles),
	})

	outcome, err := operation.NewRunner(zerolog.Ctx(ctx)).Wait(ctx, run)
	if err != nil {
		return operation.Outcome{}, err
	}
	out.Summary(outcome.Name, outcome.SuccessCount, outcome.ErrorCount)
	return outcome, nil
}
