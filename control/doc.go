// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration snapshot, runtime metrics and debug introspection for
// hioload-ringq pipelines.
//
// Provides concurrent-safe state handling primitives including:
//   - Effective config snapshots published once per run
//   - A metrics registry fed from ring counters and worker results
//   - Named debug probes evaluated on demand
package control
