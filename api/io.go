// File: api/io.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Collaborator contracts consumed by the pipeline core: record input,
// status output and the delay primitive.

package api

import "time"

// RecordSource yields input records in order.
// Next returns io.EOF once the input ends cleanly; any other error is fatal.
type RecordSource interface {
	Next() (Record, error)
}

// StatusSink receives status events. Implementations must be safe for
// concurrent use by the producer and all consumers.
type StatusSink interface {
	Emit(s Status) error
}

// Sleeper suspends the calling goroutine. A non-nil error is fatal.
type Sleeper interface {
	Sleep(d time.Duration) error
}
