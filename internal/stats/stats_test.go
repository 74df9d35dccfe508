// internal/stats/stats_test.go
package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provelab/proofbench/internal/sampler"
)

func sampleWith(label string, ms float64, deltaHeapUsed int64, heapTotalAfter uint64) sampler.Sample {
	return sampler.Sample{
		Label:         label,
		Duration:      time.Duration(ms * float64(time.Millisecond)),
		MemoryAfter:   sampler.MemorySnapshot{HeapTotal: heapTotalAfter},
		MemoryDelta:   sampler.MemoryDelta{HeapUsed: deltaHeapUsed},
		PeakHeapTotal: heapTotalAfter,
	}
}

func TestSummarizeEmptyFails(t *testing.T) {
	_, err := Summarize("empty", nil)
	require.ErrorIs(t, err, ErrNoSamples)

	_, err = Summarize("empty", []sampler.Sample{})
	require.ErrorIs(t, err, ErrNoSamples)
}

func TestSummarizeSingleSample(t *testing.T) {
	summary, err := Summarize("op", []sampler.Sample{
		sampleWith("op", 25, 2*bytesPerMB, 64*bytesPerMB),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Count)
	assert.InDelta(t, 25, summary.AvgTimeMs, 1e-9)
	assert.InDelta(t, 25, summary.MinTimeMs, 1e-9)
	assert.InDelta(t, 25, summary.MaxTimeMs, 1e-9)
	assert.InDelta(t, 2, summary.AvgMemoryDeltaMB, 1e-9)
	assert.InDelta(t, 64, summary.PeakMemoryMB, 1e-9)
}

func TestSummarizeExtremaAndMean(t *testing.T) {
	samples := []sampler.Sample{
		sampleWith("a", 10, 1*bytesPerMB, 10*bytesPerMB),
		sampleWith("a", 20, -3*bytesPerMB, 40*bytesPerMB),
		sampleWith("a", 30, 5*bytesPerMB, 20*bytesPerMB),
	}

	summary, err := Summarize("a", samples)
	require.NoError(t, err)

	assert.Equal(t, "a", summary.Operation)
	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 20, summary.AvgTimeMs, 1e-9)
	assert.InDelta(t, 10, summary.MinTimeMs, 1e-9)
	assert.InDelta(t, 30, summary.MaxTimeMs, 1e-9)
	assert.InDelta(t, 1, summary.AvgMemoryDeltaMB, 1e-9, "negative deltas pull the mean down")
	assert.InDelta(t, 40, summary.PeakMemoryMB, 1e-9, "peak is the max heap-total, not the last")

	assert.LessOrEqual(t, summary.MinTimeMs, summary.AvgTimeMs)
	assert.LessOrEqual(t, summary.AvgTimeMs, summary.MaxTimeMs)
}

func TestLabelsSummarizedIndependently(t *testing.T) {
	a := []sampler.Sample{
		sampleWith("A", 10, 0, 0),
		sampleWith("A", 20, 0, 0),
		sampleWith("A", 30, 0, 0),
	}
	b := []sampler.Sample{
		sampleWith("B", 5, 0, 0),
		sampleWith("B", 5, 0, 0),
		sampleWith("B", 5, 0, 0),
	}

	summaryA, err := Summarize("A", a)
	require.NoError(t, err)
	summaryB, err := Summarize("B", b)
	require.NoError(t, err)

	assert.InDelta(t, 20, summaryA.AvgTimeMs, 1e-9)
	assert.Equal(t, 3, summaryA.Count)
	assert.InDelta(t, 5, summaryB.AvgTimeMs, 1e-9)
}

func TestOverall(t *testing.T) {
	samples := []sampler.Sample{
		sampleWith("A", 10, 1*bytesPerMB, 0),
		sampleWith("A", 20, 1*bytesPerMB, 0),
		sampleWith("B", 30, 4*bytesPerMB, 0),
	}

	grand, err := Overall(samples)
	require.NoError(t, err)

	assert.Equal(t, 3, grand.Count)
	assert.InDelta(t, 60, grand.TotalDurationMs, 1e-9)
	assert.InDelta(t, 20, grand.AverageDurationMs, 1e-9)
	assert.InDelta(t, 6, grand.TotalMemoryDeltaMB, 1e-9)
	assert.InDelta(t, 2, grand.AvgMemoryDeltaMB, 1e-9)
}

func TestOverallEmptyFails(t *testing.T) {
	_, err := Overall(nil)
	require.ErrorIs(t, err, ErrNoSamples)
}
