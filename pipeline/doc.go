// Package pipeline
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Producer and consumer loops around a shared api.BlockingRing.
//
// One Producer turns input records into messages and puts them on the ring.
// When its source is exhausted it puts one shutdown sentinel per consumer.
// Each Consumer takes messages until it receives a sentinel, then returns its
// partial sum. Delays are served outside the ring's lock, so a sleeping worker
// never holds up the others.
package pipeline
