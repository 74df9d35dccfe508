// internal/sampler/snapshot.go
package sampler

import "runtime"

// MemorySnapshot is a point-in-time view of the process memory counters.
// All fields are absolute byte counts and non-negative at capture time.
type MemorySnapshot struct {
	RSS       uint64 `json:"rss"`
	HeapTotal uint64 `json:"heapTotal"`
	HeapUsed  uint64 `json:"heapUsed"`
	External  uint64 `json:"external"`
}

// MemoryDelta is the signed per-field difference between two snapshots.
// Negative values mean reclamation outpaced allocation between captures.
type MemoryDelta struct {
	RSS       int64 `json:"rss"`
	HeapTotal int64 `json:"heapTotal"`
	HeapUsed  int64 `json:"heapUsed"`
	External  int64 `json:"external"`
}

// SnapshotFunc returns a memory snapshot. Implementations must be read-only
// with respect to process state.
type SnapshotFunc func() MemorySnapshot

// Reclaimer forces deferred memory reclamation before a measurement to
// reduce noise. A nil Reclaimer is a no-op.
type Reclaimer func()

// ReadSnapshot captures the current runtime memory counters.
func ReadSnapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		RSS:       m.Sys,
		HeapTotal: m.HeapSys,
		HeapUsed:  m.HeapAlloc,
		External:  m.Sys - m.HeapSys,
	}
}

// Sub returns the per-field delta end minus start.
func (end MemorySnapshot) Sub(start MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		RSS:       int64(end.RSS) - int64(start.RSS),
		HeapTotal: int64(end.HeapTotal) - int64(start.HeapTotal),
		HeapUsed:  int64(end.HeapUsed) - int64(start.HeapUsed),
		External:  int64(end.External) - int64(start.External),
	}
}
