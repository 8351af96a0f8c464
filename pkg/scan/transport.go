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
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Transport starts workers
type Transport interface {
	// Dial starts worker id. Every reply the worker produces is passed to
	// deliver, from any goroutine.
	Dial(ctx context.Context, id int, deliver func(Reply)) (Conn, error)
}

// 📞 Conn is the coordinator's handle on one worker
type Conn interface {
	// Send queues req for the worker without blocking
	Send(req Request)
	// Close stops the worker immediately, abandoning queued requests
	Close() error
}

// 🧵 InProcess runs every worker as a goroutine with its own mailbox
type InProcess struct {
	FileSystem FileSystem
}

func (t InProcess) Dial(ctx context.Context, id int, deliver func(Reply)) (Conn, error) {
	if t.FileSystem == nil {
		return nil, errors.New("in-process transport needs a file system")
	}
	box := newMailbox(func(req Request) bool {
		reply := Scan(t.FileSystem, req)
		reply.Worker = id
		deliver(reply)
		return true
	})
	return &inProcessConn{box: box}, nil
}

type inProcessConn struct {
	box *mailbox[Request]
}

func (c *inProcessConn) Send(req Request) {
	c.box.Send(req)
}

func (c *inProcessConn) Close() error {
	c.box.close()
	return nil
}

// 🖥️ Subprocess runs every worker as a separate OS process speaking the
// line-delimited JSON protocol on stdin and stdout.
type Subprocess struct {
	// Command builds the worker command. The default re-executes the current
	// binary with the "worker" argument.
	Command func(ctx context.Context) (*exec.Cmd, error)
}

// SelfCommand re-executes the running binary as a worker
func SelfCommand(ctx context.Context) (*exec.Cmd, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, errors.Errorf("locating executable: %w", err)
	}
	cmd := exec.CommandContext(ctx, self, "worker")
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (t Subprocess) Dial(ctx context.Context, id int, deliver func(Reply)) (Conn, error) {
	command := t.Command
	if command == nil {
		command = SelfCommand
	}

	cmd, err := command(ctx)
	if err != nil {
		return nil, errors.Errorf("building worker command: %w", err)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Errorf("opening worker stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Errorf("opening worker stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Errorf("starting worker %d: %w", id, err)
	}

	kill := func() error {
		if cmd.Process == nil {
			return nil
		}
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return errors.Errorf("killing worker %d: %w", id, err)
		}
		_ = cmd.Wait()
		return nil
	}

	return NewStreamConn(ctx, id, stdout, stdin, deliver, kill), nil
}

// NewStreamConn speaks the worker protocol over a pair of streams: requests
// are encoded to w, replies decoded from r. stop is called by Close.
func NewStreamConn(ctx context.Context, id int, r io.Reader, w io.WriteCloser, deliver func(Reply), stop func() error) Conn {
	logger := zerolog.Ctx(ctx).With().Int("worker", id).Logger()
	enc := NewEncoder(w)

	c := &streamConn{stop: stop, w: w}
	c.box = newMailbox(func(req Request) bool {
		if err := enc.Encode(req); err != nil {
			logger.Error().Err(err).Uint64("request_id", req.RequestID).Msg("sending request to worker")
			return false
		}
		return true
	})

	go func() {
		dec := NewDecoder(r)
		for {
			var reply Reply
			if err := dec.Decode(&reply); err != nil {
				if !errors.Is(err, io.EOF) {
					logger.Error().Err(err).Msg("reading worker reply")
				} else {
					logger.Debug().Msg("worker reply stream closed")
				}
				return
			}
			reply.Worker = id
			deliver(reply)
		}
	}()

	return c
}

type streamConn struct {
	box  *mailbox[Request]
	w    io.WriteCloser
	stop func() error
}

func (c *streamConn) Send(req Request) {
	c.box.Send(req)
}

func (c *streamConn) Close() error {
	c.box.close()
	_ = c.w.Close()
	if c.stop == nil {
		return nil
	}
	return c.stop()
}
