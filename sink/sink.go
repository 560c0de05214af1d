// File: sink/sink.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Status sinks: a synchronous line writer and a discard sink.

package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/momentics/hioload-ringq/api"
	"github.com/momentics/hioload-ringq/protocol"
)

// Ensure compile-time interface compliance.
var (
	_ api.StatusSink = (*Writer)(nil)
	_ api.StatusSink = Discard
)

// Writer encodes each status event and writes it as one line.
// Concurrent Emit calls are serialized so lines never interleave.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	enc protocol.StatusEncoder
}

// NewWriter returns a sink writing to w with the given encoder.
func NewWriter(w io.Writer, enc protocol.StatusEncoder) *Writer {
	if enc == nil {
		enc = protocol.TextEncoder{}
	}
	return &Writer{w: w, enc: enc}
}

// Emit implements api.StatusSink.
func (s *Writer) Emit(st api.Status) error {
	line, err := s.enc.Encode(st)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(line); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}

type discard struct{}

func (discard) Emit(api.Status) error { return nil }

// Discard drops every status event.
var Discard api.StatusSink = discard{}
