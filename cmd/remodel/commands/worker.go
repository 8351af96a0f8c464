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
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/remodel/pkg/scan"
	"github.com/walteh/remodel/pkg/status"
)

// NewWorkerCmd creates the hidden command a subprocess scan worker runs
func NewWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "worker",
		Short:  "Serve directory scan requests on stdin/stdout",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scan.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), status.OS{}); err != nil {
				return errors.Errorf("serving scan requests: %w", err)
			}
			return nil
		},
	}
}
