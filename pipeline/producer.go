// File: pipeline/producer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/momentics/hioload-ringq/api"
)

// Producer reads records from Source and feeds the ring.
type Producer struct {
	Ring      api.BlockingRing[api.Item]
	Source    api.RecordSource
	Sink      api.StatusSink
	Sleeper   api.Sleeper
	Consumers int // number of shutdown sentinels to send
	Logger    *slog.Logger

	produced int
}

// Run drains Source into the ring, then sends one sentinel per consumer.
// A source error other than io.EOF or a sleep failure is returned as is and
// no sentinels are sent: the run is over.
func (p *Producer) Run() error {
	log := loggerOr(p.Logger)
	sleeper := sleeperOr(p.Sleeper)
	for {
		rec, err := p.Source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		seq := p.produced + 1

		if rec.ProducerDelay > 0 {
			if err := sleeper.Sleep(rec.ProducerDelay); err != nil {
				return fmt.Errorf("producer delay before record %d: %w", seq, err)
			}
		}

		p.Ring.Put(api.Data(api.Message{
			Value:         rec.Value,
			ConsumerDelay: rec.ConsumerDelay,
			Sequence:      seq,
			Report:        rec.Report,
		}))
		p.produced = seq

		if rec.Report.ProducerReports() {
			emit(p.Sink, log, api.Status{Kind: api.StatusProduced, Value: rec.Value, Line: seq})
		}
	}

	log.Debug("input exhausted, sending shutdown", "records", p.produced, "consumers", p.Consumers)
	SendShutdown(p.Ring, p.Consumers)
	return nil
}

// Produced returns the number of data messages put on the ring.
// Read it only after Run has returned.
func (p *Producer) Produced() int { return p.produced }

// emit forwards a per-record status line. A failing sink is logged, not
// fatal: workers must keep draining the ring or the others deadlock.
func emit(s api.StatusSink, log *slog.Logger, st api.Status) {
	if s == nil {
		return
	}
	if err := s.Emit(st); err != nil {
		log.Warn("status emit failed", "event", st.Kind.String(), "err", err)
	}
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

func sleeperOr(s api.Sleeper) api.Sleeper {
	if s == nil {
		return ClockSleeper{}
	}
	return s
}
