// internal/sampler/sampler_test.go
package sampler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequenceSnapshots(snapshots ...MemorySnapshot) SnapshotFunc {
	idx := 0
	return func() MemorySnapshot {
		s := snapshots[idx%len(snapshots)]
		idx++
		return s
	}
}

func TestTrackRecordsSample(t *testing.T) {
	before := MemorySnapshot{RSS: 100, HeapTotal: 80, HeapUsed: 40, External: 20}
	after := MemorySnapshot{RSS: 120, HeapTotal: 90, HeapUsed: 30, External: 30}

	reclaims := 0
	result, sample, err := Track(context.Background(), "op", func(context.Context) (any, error) {
		return 42, nil
	},
		WithSnapshotFunc(sequenceSnapshots(before, after)),
		WithReclaimer(func() { reclaims++ }),
	)
	require.NoError(t, err)

	assert.Equal(t, 42, result)
	assert.Equal(t, "op", sample.Label)
	assert.GreaterOrEqual(t, sample.Duration.Nanoseconds(), int64(0))
	assert.Equal(t, before, sample.MemoryBefore)
	assert.Equal(t, after, sample.MemoryAfter)
	assert.Equal(t, int64(-10), sample.MemoryDelta.HeapUsed)
	assert.Equal(t, int64(10), sample.MemoryDelta.HeapTotal)
	assert.Equal(t, uint64(90), sample.PeakHeapTotal)
	assert.False(t, sample.WallClock.IsZero())
	assert.Equal(t, 1, reclaims, "reclaimer runs once, before the start snapshot")
}

func TestTrackPropagatesFailureWithoutSample(t *testing.T) {
	opErr := errors.New("proof backend unavailable")

	_, sample, err := Track(context.Background(), "op", func(context.Context) (any, error) {
		return nil, opErr
	})

	require.ErrorIs(t, err, opErr, "operation failures surface verbatim")
	assert.Zero(t, sample)
}

func TestTrackerNotFinalized(t *testing.T) {
	tr := NewTracker("op", WithReclaimer(nil))

	_, err := tr.Sample()
	require.ErrorIs(t, err, ErrNotFinalized)

	tr.Start()
	_, err = tr.Sample()
	require.ErrorIs(t, err, ErrNotFinalized, "started but not stopped")

	tr.Stop()
	sample, err := tr.Sample()
	require.NoError(t, err)
	assert.Equal(t, "op", sample.Label)
}

func TestTrackerStopWithoutStartIsNoop(t *testing.T) {
	tr := NewTracker("op", WithReclaimer(nil))
	tr.Stop()

	_, err := tr.Sample()
	require.ErrorIs(t, err, ErrNotFinalized)
}

func TestTrackerNilReclaimerIsNoop(t *testing.T) {
	tr := NewTracker("op",
		WithReclaimer(nil),
		WithSnapshotFunc(sequenceSnapshots(MemorySnapshot{HeapUsed: 1}, MemorySnapshot{HeapUsed: 2})),
	)
	tr.Start()
	tr.Stop()

	sample, err := tr.Sample()
	require.NoError(t, err)
	assert.Equal(t, int64(1), sample.MemoryDelta.HeapUsed)
}

func TestSnapshotSub(t *testing.T) {
	start := MemorySnapshot{RSS: 10, HeapTotal: 20, HeapUsed: 30, External: 5}
	end := MemorySnapshot{RSS: 15, HeapTotal: 10, HeapUsed: 25, External: 8}

	delta := end.Sub(start)
	assert.Equal(t, MemoryDelta{RSS: 5, HeapTotal: -10, HeapUsed: -5, External: 3}, delta)
}

func TestReadSnapshotNonNegative(t *testing.T) {
	snap := ReadSnapshot()
	assert.Greater(t, snap.RSS, uint64(0))
	assert.Greater(t, snap.HeapTotal, uint64(0))
	assert.Greater(t, snap.HeapUsed, uint64(0))
}

func TestDurationMs(t *testing.T) {
	s := Sample{Duration: 1500000} // 1.5ms in nanoseconds
	assert.InDelta(t, 1.5, s.DurationMs(), 1e-9)
}
