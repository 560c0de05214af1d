// File: pipeline/consumer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/momentics/hioload-ringq/api"
)

// Consumer takes messages from the ring and keeps a running sum.
// The sum is owned by the consumer goroutine until Run returns it.
type Consumer struct {
	ID      int
	Ring    api.BlockingRing[api.Item]
	Sink    api.StatusSink
	Sleeper api.Sleeper
	Logger  *slog.Logger
}

// Run consumes until a shutdown sentinel arrives and returns the partial sum.
// The only other exit is a failed delay, which ends the whole run.
func (c *Consumer) Run() (int, error) {
	log := loggerOr(c.Logger).With("consumer", c.ID)
	sleeper := sleeperOr(c.Sleeper)
	sum := 0
	for {
		msg, ok := c.Ring.Take().Message()
		if !ok {
			emit(c.Sink, log, api.Status{Kind: api.StatusConsumerDone, Consumer: c.ID, Sum: sum})
			log.Debug("consumer done", "sum", sum)
			return sum, nil
		}

		if msg.ConsumerDelay > 0 {
			if err := sleeper.Sleep(msg.ConsumerDelay); err != nil {
				return sum, fmt.Errorf("consumer %d delay for record %d: %w", c.ID, msg.Sequence, err)
			}
		}

		sum += msg.Value

		if msg.Report.ConsumerReports() {
			emit(c.Sink, log, api.Status{
				Kind:     api.StatusConsumed,
				Consumer: c.ID,
				Value:    msg.Value,
				Line:     msg.Sequence,
				Sum:      sum,
			})
		}
	}
}
