// File: cmd/ringq/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ringq reads records of "value producerDelayMs consumerDelayMs reportCode"
// from stdin, pushes them through a bounded ring to a pool of consumers and
// prints status lines and the grand total on stdout. Logs go to stderr.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/momentics/hioload-ringq/api"
	"github.com/momentics/hioload-ringq/facade"
	"github.com/momentics/hioload-ringq/protocol"
	"github.com/momentics/hioload-ringq/sink"
)

const version = "v0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process: it returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	def := facade.DefaultConfig()
	fs := flag.NewFlagSet("ringq", flag.ContinueOnError)
	fs.SetOutput(stderr)
	capacity := fs.Int("capacity", def.Capacity, "Ring capacity in slots (>= 1)")
	consumers := fs.Int("consumers", def.Consumers, "Number of consumer workers (>= 1)")
	format := fs.String("format", string(protocol.FormatText), "Status format: text, json")
	async := fs.Bool("async", false, "Buffer status output off the worker goroutines")
	pin := fs.Bool("pin", false, "Pin each consumer to one CPU (Linux only)")
	debug := fs.Bool("debug", false, "Enable debug logging")
	showVersion := fs.Bool("version", false, "Show version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *showVersion {
		fmt.Fprintf(stdout, "ringq %s\n", version)
		return 0
	}

	logLevel := slog.LevelWarn
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	f, err := protocol.ParseFormat(*format)
	if err != nil {
		logger.Error("invalid flags", "err", err)
		return 1
	}

	cfg := def
	cfg.Capacity = *capacity
	cfg.Consumers = *consumers
	cfg.PinConsumers = *pin
	cfg.EnableMetrics = *debug

	p, err := facade.New(cfg, facade.WithLogger(logger))
	if err != nil {
		logger.Error("invalid configuration", "err", err, "code", api.CodeOf(err))
		return 1
	}

	var out api.StatusSink = sink.NewWriter(stdout, protocol.NewEncoder(f))
	var buffered *sink.Async
	if *async {
		buffered = sink.NewAsync(out)
		out = buffered
	}

	res, runErr := p.Run(protocol.NewDecoder(stdin), out)
	if buffered != nil {
		if err := buffered.Close(); err != nil && runErr == nil {
			runErr = fmt.Errorf("flush status output: %w", err)
		}
	}
	if runErr != nil {
		logger.Error("run failed", "run_id", p.RunID(), "err", runErr, "code", api.CodeOf(runErr))
		return 1
	}

	if *debug {
		for k, v := range p.Control().Stats() {
			logger.Debug("stat", "key", k, "value", v)
		}
	}
	logger.Debug("done", "run_id", res.RunID, "records", res.Records, "total", res.Total)
	return 0
}
