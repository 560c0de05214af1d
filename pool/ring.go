// File: pool/ring.go
// Author: momentics <momentics@gmail.com>
//
// Blocking fixed-capacity ring buffer for one producer feeding many consumers.
// A single mutex guards the slots and indices; two condition variables park
// writers while full and readers while empty.

package pool

import (
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-ringq/api"
)

// Ensure compile-time interface compliance.
var _ api.BlockingRing[any] = (*RingBuffer[any])(nil)

// emptyIndex marks front and rear while the ring holds nothing.
const emptyIndex = -1

// RingStats is a point-in-time copy of the ring counters.
type RingStats struct {
	Puts      uint64 // completed Put/TryPut calls
	Takes     uint64 // completed Take/TryTake calls
	PutWaits  uint64 // times a writer parked on a full ring
	TakeWaits uint64 // times a reader parked on an empty ring
	HighWater int    // largest resident count observed
}

// RingBuffer is a bounded FIFO with blocking Put and Take.
//
// front is emptyIndex when the ring is empty; otherwise front and rear are the
// slots of the oldest and newest element. The ring is full when advancing rear
// would land on front. The count is derived from the two indices.
type RingBuffer[T any] struct {
	mu       sync.Mutex
	hasValue *sync.Cond
	hasSpace *sync.Cond
	front    int
	rear     int
	stats    RingStats
	_        cpu.CacheLinePad // keep lock words off the slot cache lines
	slots    []T
}

// NewRingBuffer allocates an empty ring with the given capacity.
// It panics if capacity < 1.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		panic("ring capacity must be positive")
	}
	r := &RingBuffer[T]{
		front: emptyIndex,
		rear:  emptyIndex,
		slots: make([]T, capacity),
	}
	r.hasValue = sync.NewCond(&r.mu)
	r.hasSpace = sync.NewCond(&r.mu)
	return r
}

// Put appends item, blocking while the ring is full.
func (r *RingBuffer[T]) Put(item T) {
	r.mu.Lock()
	for r.full() {
		r.stats.PutWaits++
		r.hasSpace.Wait()
	}
	r.push(item)
	r.mu.Unlock()
	r.hasValue.Signal()
}

// TryPut appends item without blocking; returns false if full.
func (r *RingBuffer[T]) TryPut(item T) bool {
	r.mu.Lock()
	if r.full() {
		r.mu.Unlock()
		return false
	}
	r.push(item)
	r.mu.Unlock()
	r.hasValue.Signal()
	return true
}

// Take removes and returns the oldest item, blocking while the ring is empty.
func (r *RingBuffer[T]) Take() T {
	r.mu.Lock()
	for r.empty() {
		r.stats.TakeWaits++
		r.hasValue.Wait()
	}
	item := r.pop()
	r.mu.Unlock()
	r.hasSpace.Signal()
	return item
}

// TryTake removes the oldest item without blocking; ok is false if empty.
func (r *RingBuffer[T]) TryTake() (item T, ok bool) {
	r.mu.Lock()
	if r.empty() {
		r.mu.Unlock()
		return item, false
	}
	item = r.pop()
	r.mu.Unlock()
	r.hasSpace.Signal()
	return item, true
}

// Len returns number of items currently in the ring.
func (r *RingBuffer[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count()
}

// Cap returns fixed ring capacity.
func (r *RingBuffer[T]) Cap() int {
	return len(r.slots)
}

// IsEmpty reports whether the ring holds no items.
func (r *RingBuffer[T]) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.empty()
}

// IsFull reports whether a Put would block.
func (r *RingBuffer[T]) IsFull() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.full()
}

// Stats returns a copy of the ring counters.
func (r *RingBuffer[T]) Stats() RingStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// The helpers below require r.mu.

func (r *RingBuffer[T]) next(i int) int {
	i++
	if i == len(r.slots) {
		return 0
	}
	return i
}

func (r *RingBuffer[T]) empty() bool {
	return r.front == emptyIndex
}

func (r *RingBuffer[T]) full() bool {
	return r.front != emptyIndex && r.next(r.rear) == r.front
}

func (r *RingBuffer[T]) count() int {
	if r.empty() {
		return 0
	}
	n := r.rear - r.front + 1
	if n <= 0 {
		n += len(r.slots)
	}
	return n
}

func (r *RingBuffer[T]) push(item T) {
	if r.empty() {
		r.front, r.rear = 0, 0
	} else {
		r.rear = r.next(r.rear)
	}
	r.slots[r.rear] = item
	r.stats.Puts++
	if n := r.count(); n > r.stats.HighWater {
		r.stats.HighWater = n
	}
}

func (r *RingBuffer[T]) pop() T {
	var zero T
	item := r.slots[r.front]
	r.slots[r.front] = zero
	if r.front == r.rear {
		r.front, r.rear = emptyIndex, emptyIndex
	} else {
		r.front = r.next(r.front)
	}
	r.stats.Takes++
	return item
}
