// File: pipeline/shutdown.go
// Author: momentics <momentics@gmail.com>

package pipeline

import "github.com/momentics/hioload-ringq/api"

// SendShutdown puts exactly n shutdown sentinels on ring, one per consumer.
// Fewer sentinels than consumers leaves a consumer blocked forever; more
// leaves sentinels behind. The count is the caller's responsibility.
func SendShutdown(ring api.BlockingRing[api.Item], n int) {
	for i := 0; i < n; i++ {
		ring.Put(api.Shutdown())
	}
}
