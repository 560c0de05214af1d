// Package api
// Author: momentics@gmail.com
//
// Bounded blocking ring buffer contract for one producer and many consumers.

package api

// BlockingRing is a fixed-capacity FIFO shared between goroutines.
type BlockingRing[T any] interface {
	// Put appends item, blocking while the ring is full.
	Put(item T)
	// Take removes the oldest item, blocking while the ring is empty.
	Take() T
	// TryPut appends item without blocking; returns false if full.
	TryPut(item T) bool
	// TryTake removes the oldest item without blocking; returns false if empty.
	TryTake() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns ring capacity.
	Cap() int
}
