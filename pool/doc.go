// Package pool
// Author: momentics <momentics@gmail.com>
//
// Bounded blocking ring buffer shared by the producer and the consumers.
// See ring.go for the slot layout and the wait protocol.
package pool
