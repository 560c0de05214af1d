// File: pipeline/sleep.go
// Author: momentics <momentics@gmail.com>

package pipeline

import (
	"fmt"
	"time"

	"github.com/momentics/hioload-ringq/api"
)

// ClockSleeper suspends on the wall clock.
type ClockSleeper struct{}

// Sleep implements api.Sleeper.
func (ClockSleeper) Sleep(d time.Duration) error {
	if d < 0 {
		return api.NewError(api.ErrCodeSleepFailed, fmt.Sprintf("sleep: negative duration %s", d)).
			WithContext("duration", d)
	}
	time.Sleep(d)
	return nil
}

// SleeperFunc adapts a function to api.Sleeper.
type SleeperFunc func(d time.Duration) error

// Sleep implements api.Sleeper.
func (f SleeperFunc) Sleep(d time.Duration) error { return f(d) }
