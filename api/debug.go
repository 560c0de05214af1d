// Package api
// Author: momentics
//
// Runtime introspection contract for a running pipeline.

package api

// Debug exposes named probes evaluated on demand.
type Debug interface {
	// DumpState evaluates every registered probe.
	DumpState() map[string]any

	// RegisterProbe adds or replaces a probe.
	RegisterProbe(name string, fn func() any)
}
