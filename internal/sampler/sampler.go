// internal/sampler/sampler.go
// Package sampler brackets a single invocation of a caller-supplied unit of
// work with monotonic time and memory snapshots, producing one Sample per
// completed trial.
package sampler

import (
	"context"
	"errors"
	"runtime"
	"time"
)

// ErrNotFinalized is returned when a Sample is requested from a Tracker
// before both measurement phases have run.
var ErrNotFinalized = errors.New("sampler: measurement not finalized")

// UnitOfWork is the operation under measurement. The sampler depends only on
// its ability to be invoked, awaited, and observed for success or failure.
type UnitOfWork func(ctx context.Context) (any, error)

// Sample is one trial's recorded time and memory measurement. It is
// immutable once returned by the sampler.
type Sample struct {
	Label        string         `json:"label"`
	Duration     time.Duration  `json:"duration"`
	MemoryBefore MemorySnapshot `json:"memoryBefore"`
	MemoryAfter  MemorySnapshot `json:"memoryAfter"`
	MemoryDelta  MemoryDelta    `json:"memoryDelta"`
	// PeakHeapTotal is the heap-total at sample end. This is an
	// approximation: transient spikes inside the unit of work are not
	// observed.
	PeakHeapTotal uint64    `json:"peakHeapTotal"`
	WallClock     time.Time `json:"wallClock"`
}

// DurationMs returns the trial duration in milliseconds.
func (s Sample) DurationMs() float64 {
	return float64(s.Duration) / float64(time.Millisecond)
}

type trackerState int

const (
	stateIdle trackerState = iota
	stateRunning
	stateFinalized
)

// Tracker measures one trial via explicit two-phase bracketing. The one-shot
// Track helper and the Tracker share the same state machine; Track is a thin
// wrapper.
type Tracker struct {
	label    string
	snapshot SnapshotFunc
	reclaim  Reclaimer

	state  trackerState
	start  time.Time
	before MemorySnapshot
	sample Sample
}

// Option adjusts how a Tracker captures its measurements.
type Option func(*Tracker)

// WithSnapshotFunc replaces the default runtime snapshot source.
func WithSnapshotFunc(fn SnapshotFunc) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.snapshot = fn
		}
	}
}

// WithReclaimer replaces the default pre-measurement reclamation hook.
// Passing nil disables reclamation entirely.
func WithReclaimer(r Reclaimer) Option {
	return func(t *Tracker) { t.reclaim = r }
}

// NewTracker returns an idle Tracker for the given operation label.
func NewTracker(label string, opts ...Option) *Tracker {
	t := &Tracker{
		label:    label,
		snapshot: ReadSnapshot,
		reclaim:  runtime.GC,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start captures the pre-trial snapshots. Calling Start on a running or
// finalized Tracker resets it for a fresh measurement.
func (t *Tracker) Start() {
	if t.reclaim != nil {
		t.reclaim()
	}
	t.before = t.snapshot()
	t.state = stateRunning
	t.start = time.Now()
}

// Stop captures the post-trial snapshots. Stop without a prior Start leaves
// the Tracker idle.
func (t *Tracker) Stop() {
	if t.state != stateRunning {
		return
	}
	elapsed := time.Since(t.start)
	after := t.snapshot()

	if elapsed < 0 {
		elapsed = 0
	}
	t.sample = Sample{
		Label:         t.label,
		Duration:      elapsed,
		MemoryBefore:  t.before,
		MemoryAfter:   after,
		MemoryDelta:   after.Sub(t.before),
		PeakHeapTotal: after.HeapTotal,
		WallClock:     time.Now(),
	}
	t.state = stateFinalized
}

// Sample returns the recorded measurement. It fails with ErrNotFinalized
// until both Start and Stop have run.
func (t *Tracker) Sample() (Sample, error) {
	if t.state != stateFinalized {
		return Sample{}, ErrNotFinalized
	}
	return t.sample, nil
}

// Track runs fn bracketed by one measurement and returns its result with the
// recorded Sample. If fn fails, the error propagates verbatim and no Sample
// is produced.
func Track(ctx context.Context, label string, fn UnitOfWork, opts ...Option) (any, Sample, error) {
	t := NewTracker(label, opts...)
	t.Start()
	result, err := fn(ctx)
	if err != nil {
		return nil, Sample{}, err
	}
	t.Stop()
	sample, serr := t.Sample()
	if serr != nil {
		return nil, Sample{}, serr
	}
	return result, sample, nil
}
