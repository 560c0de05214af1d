package sink_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/momentics/hioload-ringq/api"
	"github.com/momentics/hioload-ringq/protocol"
	"github.com/momentics/hioload-ringq/sink"
)

// recorder collects events; Emit optionally blocks until release is closed.
type recorder struct {
	mu      sync.Mutex
	got     []api.Status
	release chan struct{}
	err     error
}

func (r *recorder) Emit(s api.Status) error {
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, s)
	return r.err
}

func TestWriterSerializesLines(t *testing.T) {
	var buf bytes.Buffer
	w := sink.NewWriter(&buf, protocol.TextEncoder{})
	var wg sync.WaitGroup
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if err := w.Emit(api.Status{Kind: api.StatusConsumed, Consumer: id, Value: i, Line: i, Sum: i}); err != nil {
					t.Error(err)
					return
				}
			}
		}(c)
	}
	wg.Wait()
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 400 {
		t.Fatalf("got %d lines want 400", len(lines))
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "Consumer ") || !strings.Contains(l, "; sum = ") {
			t.Fatalf("interleaved or corrupt line %q", l)
		}
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestWriterPropagatesWriteError(t *testing.T) {
	w := sink.NewWriter(brokenWriter{}, nil)
	if err := w.Emit(api.Status{Kind: api.StatusTotal, Sum: 1}); err == nil {
		t.Fatal("expected write error")
	}
}

func TestAsyncPreservesOrderAndFlushes(t *testing.T) {
	rec := &recorder{release: make(chan struct{})}
	a := sink.NewAsync(rec)
	for i := 1; i <= 1000; i++ {
		if err := a.Emit(api.Status{Kind: api.StatusProduced, Value: i, Line: i}); err != nil {
			t.Fatal(err)
		}
	}
	// Downstream is parked, so nearly everything is still in the backlog.
	if a.Pending() < 999 {
		t.Errorf("Pending=%d, expected backlog to hold the events", a.Pending())
	}
	close(rec.release)

	done := make(chan error, 1)
	go func() { done <- a.Close() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not flush")
	}
	if len(rec.got) != 1000 {
		t.Fatalf("forwarded %d events want 1000", len(rec.got))
	}
	for i, s := range rec.got {
		if s.Line != i+1 {
			t.Fatalf("event %d has line %d", i, s.Line)
		}
	}
	if err := a.Emit(api.Status{Kind: api.StatusTotal}); !errors.Is(err, sink.ErrSinkClosed) {
		t.Errorf("Emit after Close err=%v", err)
	}
	if a.Close() != nil {
		t.Error("second Close must be harmless")
	}
}

func TestAsyncReportsDownstreamError(t *testing.T) {
	boom := errors.New("boom")
	a := sink.NewAsync(&recorder{err: boom})
	_ = a.Emit(api.Status{Kind: api.StatusTotal, Sum: 3})
	if err := a.Close(); !errors.Is(err, boom) {
		t.Fatalf("Close err=%v want %v", err, boom)
	}
}

func TestDiscard(t *testing.T) {
	if err := sink.Discard.Emit(api.Status{Kind: api.StatusTotal}); err != nil {
		t.Fatal(err)
	}
}
