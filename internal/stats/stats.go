// internal/stats/stats.go
// Package stats reduces recorded samples into per-operation and run-wide
// summaries.
package stats

import (
	"errors"

	"github.com/provelab/proofbench/internal/sampler"
)

// ErrNoSamples is returned when aggregation is requested over zero samples.
var ErrNoSamples = errors.New("stats: no samples to aggregate")

const bytesPerMB = 1024 * 1024

// Summary holds derived statistics over the samples of one operation.
// Invariant: MinTimeMs <= AvgTimeMs <= MaxTimeMs and Count equals the number
// of contributing samples.
type Summary struct {
	Operation        string  `json:"operation"`
	Count            int     `json:"count"`
	AvgTimeMs        float64 `json:"avgTimeMs"`
	MinTimeMs        float64 `json:"minTimeMs"`
	MaxTimeMs        float64 `json:"maxTimeMs"`
	AvgMemoryDeltaMB float64 `json:"avgMemoryMB"`
	PeakMemoryMB     float64 `json:"peakMemoryMB"`
}

// GrandSummary folds every operation's samples together for top-level
// reporting.
type GrandSummary struct {
	Count              int     `json:"count"`
	TotalDurationMs    float64 `json:"totalDurationMs"`
	AverageDurationMs  float64 `json:"averageDurationMs"`
	TotalMemoryDeltaMB float64 `json:"totalMemoryDeltaMB"`
	AvgMemoryDeltaMB   float64 `json:"averageMemoryDeltaMB"`
}

// Summarize reduces the samples of one operation into a Summary. It never
// returns a zero-valued Summary for empty input; that fails with
// ErrNoSamples.
func Summarize(operation string, samples []sampler.Sample) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}

	first := samples[0].DurationMs()
	summary := Summary{
		Operation: operation,
		Count:     len(samples),
		MinTimeMs: first,
		MaxTimeMs: first,
	}

	var totalMs, totalDeltaMB float64
	var peakHeapTotal uint64
	for _, s := range samples {
		ms := s.DurationMs()
		totalMs += ms
		if ms < summary.MinTimeMs {
			summary.MinTimeMs = ms
		}
		if ms > summary.MaxTimeMs {
			summary.MaxTimeMs = ms
		}
		totalDeltaMB += float64(s.MemoryDelta.HeapUsed) / bytesPerMB
		if s.MemoryAfter.HeapTotal > peakHeapTotal {
			peakHeapTotal = s.MemoryAfter.HeapTotal
		}
	}

	count := float64(len(samples))
	summary.AvgTimeMs = totalMs / count
	summary.AvgMemoryDeltaMB = totalDeltaMB / count
	summary.PeakMemoryMB = float64(peakHeapTotal) / bytesPerMB

	return summary, nil
}

// Overall folds samples from every operation into one grand summary.
func Overall(samples []sampler.Sample) (GrandSummary, error) {
	if len(samples) == 0 {
		return GrandSummary{}, ErrNoSamples
	}

	var grand GrandSummary
	for _, s := range samples {
		grand.TotalDurationMs += s.DurationMs()
		grand.TotalMemoryDeltaMB += float64(s.MemoryDelta.HeapUsed) / bytesPerMB
	}
	grand.Count = len(samples)
	grand.AverageDurationMs = grand.TotalDurationMs / float64(grand.Count)
	grand.AvgMemoryDeltaMB = grand.TotalMemoryDeltaMB / float64(grand.Count)

	return grand, nil
}
