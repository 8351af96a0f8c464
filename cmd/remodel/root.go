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
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/remodel/cmd/remodel/commands"
	"github.com/walteh/remodel/cmd/remodel/opts"
)

// newRootCmd builds the command tree. With bare paths it generates, like the
// generate subcommand.
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "remodel [paths...]",
		Short: "Generate Objective-C value objects from .value specifications",
		Long: `remodel searches the given paths (default ".") for value object
specifications and writes the generated Objective-C classes next to them.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := setupLogging(cmd, o).WithContext(cmd.Context())
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Generate(cmd.Context(), o, args, cmd.OutOrStdout())
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewGenerateCmd(o),
		commands.NewWorkerCmd(),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: search for .remodelrc.*)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.DryRun, "dry-run", false, "show what would be written without writing")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "print debug lines for every file")
	cmd.PersistentFlags().BoolVar(&o.PerfLog, "perf-log", false, "print the time spent in every stage")
	cmd.PersistentFlags().BoolVar(&o.Subprocess, "subprocess", false, "run scan workers as separate processes")
	cmd.PersistentFlags().IntVarP(&o.Workers, "workers", "w", 0, "number of scan workers (default: online CPUs)")
	cmd.PersistentFlags().StringVar(&o.Suffix, "suffix", "", "extension of specification files (default: value)")
}

// setupLogging configures zerolog based on flags. User-facing lines are
// printed by pkg/log, so the structured stream is only written with --debug,
// and always to stderr to stay clear of the worker protocol on stdout.
func setupLogging(cmd *cobra.Command, o *opts.RootOpts) *zerolog.Logger {
	level := zerolog.Disabled
	if o.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Str("command", cmd.Name()).
		Logger()
	return &logger
}
