// File: facade/pipeline.go
// Unified facade layer for hioload-ringq.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pipeline aggregates the blocking ring, one producer, N consumers and the
// control plane behind a single Run call. Run starts every worker, joins
// them, sums the consumer partials and emits the grand total. Any fatal
// worker error aborts the run without waiting for the others.

package facade

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/momentics/hioload-ringq/adapters"
	"github.com/momentics/hioload-ringq/affinity"
	"github.com/momentics/hioload-ringq/api"
	"github.com/momentics/hioload-ringq/internal/concurrency"
	"github.com/momentics/hioload-ringq/pipeline"
	"github.com/momentics/hioload-ringq/pool"
)

// Config holds parameters immutable per run.
type Config struct {
	Capacity      int  // Ring slots
	Consumers     int  // Consumer workers, and shutdown sentinels sent
	PinConsumers  bool // Lock each consumer to an OS thread pinned to one CPU
	EnableMetrics bool // Publish ring and worker metrics through Control
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		Capacity:      10, // Ten-slot ring
		Consumers:     2,  // Two consumers
		PinConsumers:  false,
		EnableMetrics: true,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return api.NewError(api.ErrCodeInvalidArgument, fmt.Sprintf("ring capacity must be >= 1, got %d", c.Capacity)).
			WithContext("capacity", c.Capacity)
	}
	if c.Consumers < 1 {
		return api.NewError(api.ErrCodeInvalidArgument, fmt.Sprintf("consumer count must be >= 1, got %d", c.Consumers)).
			WithContext("consumers", c.Consumers)
	}
	return nil
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithSleeper replaces the delay primitive used by all workers.
func WithSleeper(s api.Sleeper) Option {
	return func(p *Pipeline) { p.sleeper = s }
}

// Result is the outcome of a successful run.
type Result struct {
	RunID    string
	Records  int   // data messages produced
	Partials []int // per-consumer sums, indexed by consumer ID
	Total    int
}

// Pipeline is the main facade type. A Pipeline runs once.
type Pipeline struct {
	cfg     Config
	runID   string
	ring    *pool.RingBuffer[api.Item]
	control *adapters.ControlAdapter
	log     *slog.Logger
	sleeper api.Sleeper
	started atomic.Bool
}

// New validates cfg and prepares a pipeline. A nil cfg means DefaultConfig.
func New(cfg *Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:     *cfg,
		runID:   uuid.NewString(),
		ring:    pool.NewRingBuffer[api.Item](cfg.Capacity),
		control: adapters.NewControlAdapter(),
		sleeper: pipeline.ClockSleeper{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	p.log = p.log.With("run_id", p.runID)

	_ = p.control.SetConfig(map[string]any{
		"ring.capacity":  p.cfg.Capacity,
		"consumers":      p.cfg.Consumers,
		"pin_consumers":  p.cfg.PinConsumers,
		"enable_metrics": p.cfg.EnableMetrics,
	})
	p.control.RegisterDebugProbe("ring.len", func() any { return p.ring.Len() })
	return p, nil
}

// RunID returns the identifier attached to this pipeline's logs.
func (p *Pipeline) RunID() string { return p.runID }

// Control exposes config snapshot, metrics and debug probes.
func (p *Pipeline) Control() api.Control { return p.control }

// Run drives src through the ring into the consumers, then emits the total
// on sink. On error no total is emitted and the remaining workers are left
// blocked; the caller is expected to end the process.
func (p *Pipeline) Run(src api.RecordSource, sink api.StatusSink) (Result, error) {
	if !p.started.CompareAndSwap(false, true) {
		return Result{}, api.ErrAlreadyStarted
	}
	p.log.Info("pipeline starting", "capacity", p.cfg.Capacity, "consumers", p.cfg.Consumers)

	partials := make([]int, p.cfg.Consumers)
	group := concurrency.NewGroup()
	for id := 0; id < p.cfg.Consumers; id++ {
		c := &pipeline.Consumer{ID: id, Ring: p.ring, Sink: sink, Sleeper: p.sleeper, Logger: p.log}
		group.Go(fmt.Sprintf("consumer %d", id), func() error {
			if p.cfg.PinConsumers {
				p.pin(id)
			}
			sum, err := c.Run()
			if err != nil {
				return err
			}
			partials[id] = sum
			return nil
		})
	}
	prod := &pipeline.Producer{
		Ring:      p.ring,
		Source:    src,
		Sink:      sink,
		Sleeper:   p.sleeper,
		Consumers: p.cfg.Consumers,
		Logger:    p.log,
	}
	group.Go("producer", prod.Run)

	err := group.Wait()
	p.publishMetrics()
	if err != nil {
		p.log.Error("pipeline aborted", "err", err)
		return Result{}, err
	}

	res := Result{RunID: p.runID, Records: prod.Produced(), Partials: partials}
	for id, sum := range partials {
		res.Total += sum
		if p.cfg.EnableMetrics {
			p.control.SetMetric(fmt.Sprintf("consumer.%d.sum", id), sum)
		}
	}
	if p.cfg.EnableMetrics {
		p.control.SetMetric("producer.records", res.Records)
		p.control.SetMetric("total", res.Total)
	}
	if err := sink.Emit(api.Status{Kind: api.StatusTotal, Sum: res.Total}); err != nil {
		return Result{}, fmt.Errorf("emit total: %w", err)
	}
	p.log.Info("pipeline finished", "records", res.Records, "total", res.Total)
	return res, nil
}

// pin locks the calling goroutine to its thread and pins that thread.
// The thread stays locked until the goroutine exits and is then discarded.
func (p *Pipeline) pin(id int) {
	runtime.LockOSThread()
	cpu := affinity.CPUFor(id)
	if err := affinity.SetAffinity(cpu); err != nil {
		p.log.Warn("consumer pinning failed", "consumer", id, "cpu", cpu, "err", err)
		return
	}
	p.log.Debug("consumer pinned", "consumer", id, "cpu", cpu)
}

func (p *Pipeline) publishMetrics() {
	if !p.cfg.EnableMetrics {
		return
	}
	s := p.ring.Stats()
	p.control.SetMetric("ring.puts", s.Puts)
	p.control.SetMetric("ring.takes", s.Takes)
	p.control.SetMetric("ring.put_waits", s.PutWaits)
	p.control.SetMetric("ring.take_waits", s.TakeWaits)
	p.control.SetMetric("ring.high_water", s.HighWater)
}
