// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker lifecycle helpers for hioload-ringq: starting the producer and
// consumer goroutines, recovering their panics and joining them.
package concurrency
