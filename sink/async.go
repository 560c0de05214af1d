// File: sink/async.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Async decouples pipeline workers from a slow status destination. Emit
// appends to an unbounded FIFO backlog and returns; one drain goroutine
// forwards events downstream in arrival order.

package sink

import (
	"errors"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-ringq/api"
)

// ErrSinkClosed is returned by Emit after Close.
var ErrSinkClosed = errors.New("status sink is closed")

// Ensure compile-time interface compliance.
var _ api.StatusSink = (*Async)(nil)

// Async is an api.StatusSink that forwards to next on a background goroutine.
type Async struct {
	mu      sync.Mutex
	ready   *sync.Cond
	backlog *queue.Queue
	next    api.StatusSink
	closed  bool
	err     error // first downstream error
	done    chan struct{}
}

// NewAsync starts the drain goroutine. Close must be called to flush.
func NewAsync(next api.StatusSink) *Async {
	a := &Async{
		backlog: queue.New(),
		next:    next,
		done:    make(chan struct{}),
	}
	a.ready = sync.NewCond(&a.mu)
	go a.drain()
	return a
}

// Emit queues st. It reports the first downstream failure seen so far, so
// callers learn about a broken destination without waiting for Close.
func (a *Async) Emit(st api.Status) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrSinkClosed
	}
	a.backlog.Add(st)
	a.ready.Signal()
	return a.err
}

// Pending returns the number of queued events not yet forwarded.
func (a *Async) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.backlog.Length()
}

// Close stops accepting events, forwards everything already queued and
// returns the first downstream error.
func (a *Async) Close() error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		a.ready.Signal()
	}
	a.mu.Unlock()
	<-a.done
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

func (a *Async) drain() {
	defer close(a.done)
	for {
		a.mu.Lock()
		for a.backlog.Length() == 0 && !a.closed {
			a.ready.Wait()
		}
		if a.backlog.Length() == 0 {
			a.mu.Unlock()
			return
		}
		st := a.backlog.Remove().(api.Status)
		a.mu.Unlock()

		if err := a.next.Emit(st); err != nil {
			a.mu.Lock()
			if a.err == nil {
				a.err = err
			}
			a.mu.Unlock()
		}
	}
}
