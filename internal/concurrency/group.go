// File: internal/concurrency/group.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Group runs a fixed set of named workers and joins them. A worker that
// returns an error or panics fails the whole group; Wait reports the first
// failure without waiting for the remaining workers, which may be parked on
// a ring that will never be serviced again.

package concurrency

import (
	"fmt"
	"sync"

	"github.com/momentics/hioload-ringq/api"
)

// WorkerFunc is the body of one worker.
type WorkerFunc func() error

// Group tracks worker goroutines started with Go.
type Group struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	err      error
	failedCh chan struct{}
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{failedCh: make(chan struct{})}
}

// Go starts fn on its own goroutine.
func (g *Group) Go(name string, fn WorkerFunc) {
	g.wg.Add(1)
	go g.run(name, fn)
}

func (g *Group) run(name string, fn WorkerFunc) {
	defer g.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			g.fail(api.NewError(api.ErrCodeWorkerFailed, fmt.Sprintf("%s: panic: %v", name, r)).
				WithContext("worker", name))
		}
	}()
	if err := fn(); err != nil {
		g.fail(fmt.Errorf("%s: %w", name, err))
	}
}

func (g *Group) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return
	}
	g.err = err
	close(g.failedCh)
}

// Wait blocks until every worker has returned or until the first failure.
// A nil result means all workers returned nil, and everything they wrote
// before returning is visible to the caller.
func (g *Group) Wait() error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-g.failedCh:
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}
