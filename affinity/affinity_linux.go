//go:build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific implementation for setting thread CPU affinity via sched_setaffinity(2).

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-ringq/api"
)

// cpuSetSize matches CPU_SETSIZE, the width of unix.CPUSet.
const cpuSetSize = 1024

// setAffinityPlatform sets the calling thread's affinity to a single CPU.
func setAffinityPlatform(cpuID int) error {
	if cpuID < 0 || cpuID >= cpuSetSize {
		return api.NewError(api.ErrCodeInvalidArgument, fmt.Sprintf("affinity: cpu %d out of range", cpuID)).
			WithContext("cpu", cpuID)
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	// pid 0 addresses the calling thread.
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity cpu %d: %w", cpuID, err)
	}
	return nil
}
