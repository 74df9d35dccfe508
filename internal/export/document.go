// internal/export/document.go
// Package export serializes a session's samples and summaries into stable
// JSON documents and writes them atomically.
package export

import (
	"math"
	"runtime"
	"time"

	"github.com/provelab/proofbench/internal/sampler"
	"github.com/provelab/proofbench/internal/session"
	"github.com/provelab/proofbench/internal/stats"
)

const bytesPerMB = 1024 * 1024

// Metadata describes the environment a nested export was produced in.
type Metadata struct {
	TestDate    string `json:"testDate"`
	HostVersion string `json:"hostVersion"`
	Platform    string `json:"platform"`
	Arch        string `json:"arch"`
	TotalTests  int    `json:"totalTests"`
}

// DurationEntry carries one trial's duration at the documented precision:
// two decimals for milliseconds, three for seconds.
type DurationEntry struct {
	Ms      float64 `json:"ms"`
	Seconds float64 `json:"seconds"`
}

// MemoryEntry carries the before/after snapshots and their delta.
type MemoryEntry struct {
	Start sampler.MemorySnapshot `json:"start"`
	End   sampler.MemorySnapshot `json:"end"`
	Delta sampler.MemoryDelta    `json:"delta"`
}

// ResultEntry is one sample in the nested document.
type ResultEntry struct {
	Name      string        `json:"name"`
	Timestamp string        `json:"timestamp"`
	Duration  DurationEntry `json:"duration"`
	Memory    MemoryEntry   `json:"memory"`
}

// RunSummary is the nested document's run-wide roll-up. Durations are in
// milliseconds, memory deltas in MB.
type RunSummary struct {
	TotalDuration      float64 `json:"totalDuration"`
	AverageDuration    float64 `json:"averageDuration"`
	TotalMemoryDelta   float64 `json:"totalMemoryDelta"`
	AverageMemoryDelta float64 `json:"averageMemoryDelta"`
}

// NestedDocument is the {metadata, results, summary} export shape. Once
// written it is never mutated.
type NestedDocument struct {
	Metadata Metadata      `json:"metadata"`
	Results  []ResultEntry `json:"results"`
	Summary  RunSummary    `json:"summary"`
}

// FlatConfig echoes the session configuration in the flat document.
type FlatConfig struct {
	Verbose          bool `json:"verbose"`
	WarmupIterations int  `json:"warmupIterations"`
	Iterations       int  `json:"iterations"`
}

// MetricEntry is one sample in the flat document.
type MetricEntry struct {
	Operation    string  `json:"operation"`
	TimeMs       float64 `json:"timeMs"`
	MemoryMB     float64 `json:"memoryMB"`
	PeakMemoryMB float64 `json:"peakMemoryMB"`
	Timestamp    string  `json:"timestamp"`
}

// StatEntry is one per-operation summary in the flat document.
type StatEntry struct {
	Operation    string  `json:"operation"`
	Count        int     `json:"count"`
	AvgTimeMs    float64 `json:"avgTimeMs"`
	MinTimeMs    float64 `json:"minTimeMs"`
	MaxTimeMs    float64 `json:"maxTimeMs"`
	AvgMemoryMB  float64 `json:"avgMemoryMB"`
	PeakMemoryMB float64 `json:"peakMemoryMB"`
}

// FlatDocument is the {config, metrics, stats} export shape.
type FlatDocument struct {
	Config  FlatConfig    `json:"config"`
	Metrics []MetricEntry `json:"metrics"`
	Stats   []StatEntry   `json:"stats"`
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// Round3 rounds to three decimal places.
func Round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// BuildNested snapshots the session into the nested document shape. The
// output is deterministic given identical sample insertion order.
func BuildNested(s *session.Session, now time.Time) NestedDocument {
	samples := s.AllSamples()

	doc := NestedDocument{
		Metadata: Metadata{
			TestDate:    now.UTC().Format(time.RFC3339),
			HostVersion: runtime.Version(),
			Platform:    runtime.GOOS,
			Arch:        runtime.GOARCH,
			TotalTests:  len(samples),
		},
		Results: make([]ResultEntry, 0, len(samples)),
	}

	for _, sample := range samples {
		doc.Results = append(doc.Results, ResultEntry{
			Name:      sample.Label,
			Timestamp: sample.WallClock.UTC().Format(time.RFC3339),
			Duration: DurationEntry{
				Ms:      Round2(sample.DurationMs()),
				Seconds: Round3(sample.Duration.Seconds()),
			},
			Memory: MemoryEntry{
				Start: sample.MemoryBefore,
				End:   sample.MemoryAfter,
				Delta: sample.MemoryDelta,
			},
		})
	}

	if grand, err := s.Overall(); err == nil {
		doc.Summary = RunSummary{
			TotalDuration:      Round2(grand.TotalDurationMs),
			AverageDuration:    Round2(grand.AverageDurationMs),
			TotalMemoryDelta:   Round2(grand.TotalMemoryDeltaMB),
			AverageMemoryDelta: Round2(grand.AvgMemoryDeltaMB),
		}
	}

	return doc
}

// BuildFlat snapshots the session into the flat document shape.
func BuildFlat(s *session.Session) FlatDocument {
	cfg := s.Config()
	samples := s.AllSamples()

	doc := FlatDocument{
		Config: FlatConfig{
			Verbose:          cfg.Verbose,
			WarmupIterations: cfg.WarmupIterations,
			Iterations:       cfg.DefaultIterations,
		},
		Metrics: make([]MetricEntry, 0, len(samples)),
	}

	for _, sample := range samples {
		doc.Metrics = append(doc.Metrics, MetricEntry{
			Operation:    sample.Label,
			TimeMs:       Round2(sample.DurationMs()),
			MemoryMB:     Round2(float64(sample.MemoryDelta.HeapUsed) / bytesPerMB),
			PeakMemoryMB: Round2(float64(sample.PeakHeapTotal) / bytesPerMB),
			Timestamp:    sample.WallClock.UTC().Format(time.RFC3339),
		})
	}

	for _, summary := range s.Summaries() {
		doc.Stats = append(doc.Stats, statEntry(summary))
	}

	return doc
}

// Samples reconstructs recorded samples from a parsed nested document, at
// the document's rounding precision.
func (d NestedDocument) Samples() []sampler.Sample {
	out := make([]sampler.Sample, 0, len(d.Results))
	for _, r := range d.Results {
		wallClock, _ := time.Parse(time.RFC3339, r.Timestamp)
		out = append(out, sampler.Sample{
			Label:         r.Name,
			Duration:      time.Duration(r.Duration.Ms * float64(time.Millisecond)),
			MemoryBefore:  r.Memory.Start,
			MemoryAfter:   r.Memory.End,
			MemoryDelta:   r.Memory.Delta,
			PeakHeapTotal: r.Memory.End.HeapTotal,
			WallClock:     wallClock,
		})
	}
	return out
}

func statEntry(summary stats.Summary) StatEntry {
	return StatEntry{
		Operation:    summary.Operation,
		Count:        summary.Count,
		AvgTimeMs:    Round2(summary.AvgTimeMs),
		MinTimeMs:    Round2(summary.MinTimeMs),
		MaxTimeMs:    Round2(summary.MaxTimeMs),
		AvgMemoryMB:  Round2(summary.AvgMemoryDeltaMB),
		PeakMemoryMB: Round2(summary.PeakMemoryMB),
	}
}
