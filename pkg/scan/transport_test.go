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
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/remodel/pkg/status"
)

const workerEnv = "REMODEL_SCAN_WORKER"

// TestMain lets the test binary double as a worker process
func TestMain(m *testing.M) {
	if os.Getenv(workerEnv) == "1" {
		if err := Serve(context.Background(), os.Stdin, os.Stdout, status.OS{}); err != nil {
			os.Exit(2)
		}
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func workerCommand(ctx context.Context) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, os.Args[0])
	cmd.Env = append(os.Environ(), workerEnv+"=1")
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func TestSubprocessPool(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.value", "sub/b.value", "sub/deep/c.value", ".hidden/d.value", "README")

	pool, err := NewPool(context.Background(), Options{Workers: 3, Transport: Subprocess{Command: workerCommand}})
	require.NoError(t, err)

	assert.Equal(t, join(dir, "a.value", "sub/b.value", "sub/deep/c.value"), collect(t, pool.ScanFiles(dir, "value")))
	assert.Equal(t, join(dir, "sub/b.value"), collect(t, pool.ScanFiles(filepath.Join(dir, "sub", "b.value"), "value")))

	require.NoError(t, pool.Shutdown())
}

func TestSubprocessDialFailure(t *testing.T) {
	tests := []struct {
		name    string
		command func(ctx context.Context) (*exec.Cmd, error)
		wantErr string
	}{
		{
			name: "command_error",
			command: func(ctx context.Context) (*exec.Cmd, error) {
				return nil, os.ErrNotExist
			},
			wantErr: "building worker command",
		},
		{
			name: "missing_binary",
			command: func(ctx context.Context) (*exec.Cmd, error) {
				return exec.CommandContext(ctx, filepath.Join(t.TempDir(), "no-such-worker")), nil
			},
			wantErr: "starting worker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Subprocess{Command: tt.command}.Dial(context.Background(), 0, func(Reply) {})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSubprocessCloseStopsWorker(t *testing.T) {
	conn, err := Subprocess{Command: workerCommand}.Dial(context.Background(), 0, func(Reply) {})
	require.NoError(t, err)

	require.NoError(t, conn.Close())
}

func TestSelfCommand(t *testing.T) {
	cmd, err := SelfCommand(context.Background())
	require.NoError(t, err)

	self, err := os.Executable()
	require.NoError(t, err)
	assert.Equal(t, self, cmd.Path)
	assert.Equal(t, []string{self, "worker"}, cmd.Args)
}
