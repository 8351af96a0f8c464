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
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/tklauser/numcpus"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/remodel/pkg/sequence"
)

// 🔧 Options configures a Pool
type Options struct {
	// Workers is the number of workers; zero means one per online CPU
	Workers int
	// Transport starts the workers
	Transport Transport
}

// DefaultWorkers returns the number of online CPUs
func DefaultWorkers() int {
	n, err := numcpus.GetOnline()
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// message is anything the coordinator handles
type message interface{}

type startScan struct {
	id     uint64
	root   string
	suffix string
	source *sequence.Source[string]
}

type stop struct{}

// scanState is the bookkeeping for one top-level scan
type scanState struct {
	outstanding int
	source      *sequence.Source[string]
}

// 🏊 Pool performs recursive directory scans on a fixed set of workers
type Pool struct {
	logger zerolog.Logger
	conns  []Conn
	coord  *mailbox[message]
	nextID atomic.Uint64

	closeOnce sync.Once
	closed    atomic.Bool

	// owned by the coordinator goroutine
	scans  map[uint64]*scanState
	cursor int
}

// 🏭 NewPool starts the workers and the coordinator
func NewPool(ctx context.Context, opts Options) (*Pool, error) {
	if opts.Transport == nil {
		return nil, errors.New("transport is required")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	p := &Pool{
		logger: zerolog.Ctx(ctx).With().Str("component", "scan-pool").Logger(),
		conns:  make([]Conn, workers),
		scans:  map[uint64]*scanState{},
	}
	p.coord = newMailbox(p.handle)

	// Workers outlive the errgroup, so they are dialed with ctx itself.
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			conn, err := opts.Transport.Dial(ctx, i, func(r Reply) { p.coord.Send(r) })
			if err != nil {
				return errors.Errorf("starting worker %d: %w", i, err)
			}
			p.conns[i] = conn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		_ = p.Shutdown()
		return nil, err
	}

	p.logger.Debug().Int("workers", workers).Msg("scan pool started")
	return p, nil
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return len(p.conns)
}

// 🔍 ScanFiles streams every file below root whose extension is "." + suffix.
// The sequence finishes once every directory of the tree has been listed.
// After Shutdown it returns an empty, finished sequence.
func (p *Pool) ScanFiles(root, suffix string) *sequence.Sequence[string] {
	src := sequence.NewSource[string]()
	if p.closed.Load() {
		p.logger.Warn().Str("root", root).Msg("scan requested after shutdown")
		src.Finished()
		return src.Sequence()
	}

	p.coord.Send(startScan{
		id:     p.nextID.Add(1),
		root:   root,
		suffix: suffix,
		source: src,
	})
	return src.Sequence()
}

// 🛑 Shutdown stops every worker and the coordinator without draining
// in-flight requests. Sequences of unfinished scans never finish.
func (p *Pool) Shutdown() error {
	var errs []error
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		p.coord.Send(stop{})
		for _, c := range p.conns {
			if c == nil {
				continue
			}
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}

func (p *Pool) handle(msg message) bool {
	switch m := msg.(type) {
	case startScan:
		p.scans[m.id] = &scanState{outstanding: 1, source: m.source}
		p.logger.Debug().Uint64("request_id", m.id).Str("root", m.root).Msg("scan started")
		p.dispatch(Request{RequestID: m.id, Directory: m.root, Suffix: m.suffix})
	case Reply:
		p.onReply(m)
	case stop:
		p.scans = nil
		return false
	}
	return true
}

func (p *Pool) dispatch(req Request) {
	conn := p.conns[p.cursor]
	p.cursor = (p.cursor + 1) % len(p.conns)
	conn.Send(req)
}

func (p *Pool) onReply(r Reply) {
	st, ok := p.scans[r.RequestID]
	if !ok || st.outstanding == 0 {
		p.logger.Debug().Uint64("request_id", r.RequestID).Int("worker", r.Worker).Msg("discarding stale reply")
		return
	}

	if r.Error != "" {
		p.logger.Debug().
			Uint64("request_id", r.RequestID).
			Int("worker", r.Worker).
			Str("error", r.Error).
			Msg("worker could not list directory")
	}

	for _, f := range r.Files {
		st.source.NextValue(f)
	}
	for _, d := range r.Directories {
		p.dispatch(Request{RequestID: r.RequestID, Directory: d, Suffix: r.Suffix})
	}

	st.outstanding += len(r.Directories) - 1
	if st.outstanding == 0 {
		delete(p.scans, r.RequestID)
		p.logger.Debug().Uint64("request_id", r.RequestID).Msg("scan finished")
		st.source.Finished()
	}
}
