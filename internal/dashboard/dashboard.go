// internal/dashboard/dashboard.go
// Package dashboard renders samples and summaries into a single standalone
// HTML report.
package dashboard

import (
	"bytes"
	"encoding/json"
	"html/template"
	"time"

	"github.com/provelab/proofbench/internal/sampler"
	"github.com/provelab/proofbench/internal/stats"
)

// Duration classification thresholds in milliseconds. These are fixed
// product constants, stable across versions, and are never derived from the
// data distribution.
const (
	FastThresholdMs   = 100
	MediumThresholdMs = 1000
)

// Classification badge labels.
const (
	ClassFast   = "fast"
	ClassMedium = "medium"
	ClassSlow   = "slow"
)

const bytesPerMB = 1024 * 1024

// Classify buckets a trial duration into a qualitative speed class.
func Classify(durationMs float64) string {
	switch {
	case durationMs < FastThresholdMs:
		return ClassFast
	case durationMs < MediumThresholdMs:
		return ClassMedium
	default:
		return ClassSlow
	}
}

type reportData struct {
	Title       string
	GeneratedAt string
	HasSamples  bool
	ReportJSON  template.JS
}

type reportOperation struct {
	Name       string    `json:"name"`
	Count      int       `json:"count"`
	AvgMs      float64   `json:"avg_ms"`
	MinMs      float64   `json:"min_ms"`
	MaxMs      float64   `json:"max_ms"`
	AvgDeltaMB float64   `json:"avg_delta_mb"`
	PeakMB     float64   `json:"peak_mb"`
	SeriesMs   []float64 `json:"series_ms"`
}

type reportSample struct {
	Operation string  `json:"operation"`
	Ms        float64 `json:"ms"`
	DeltaMB   float64 `json:"delta_mb"`
	PeakMB    float64 `json:"peak_mb"`
	Timestamp string  `json:"timestamp"`
	Class     string  `json:"class"`
}

type reportPayload struct {
	Operations []reportOperation `json:"operations"`
	Samples    []reportSample    `json:"samples"`
}

// Render produces the dashboard document for the given samples and
// summaries. It is a pure function: identical input yields identical output
// except for the explicit generatedAt stamp. Zero samples render a
// placeholder section instead of failing.
func Render(samples []sampler.Sample, summaries []stats.Summary, generatedAt time.Time) (string, error) {
	series := make(map[string][]float64, len(summaries))
	for _, s := range samples {
		series[s.Label] = append(series[s.Label], s.DurationMs())
	}

	payload := reportPayload{
		Operations: make([]reportOperation, 0, len(summaries)),
		Samples:    make([]reportSample, 0, len(samples)),
	}
	for _, summary := range summaries {
		payload.Operations = append(payload.Operations, reportOperation{
			Name:       summary.Operation,
			Count:      summary.Count,
			AvgMs:      summary.AvgTimeMs,
			MinMs:      summary.MinTimeMs,
			MaxMs:      summary.MaxTimeMs,
			AvgDeltaMB: summary.AvgMemoryDeltaMB,
			PeakMB:     summary.PeakMemoryMB,
			SeriesMs:   series[summary.Operation],
		})
	}
	for _, s := range samples {
		ms := s.DurationMs()
		payload.Samples = append(payload.Samples, reportSample{
			Operation: s.Label,
			Ms:        ms,
			DeltaMB:   float64(s.MemoryDelta.HeapUsed) / bytesPerMB,
			PeakMB:    float64(s.PeakHeapTotal) / bytesPerMB,
			Timestamp: s.WallClock.UTC().Format("2006-01-02 15:04:05 MST"),
			Class:     Classify(ms),
		})
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	viewModel := reportData{
		Title:       "proofbench: Proof Benchmark Report",
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		HasSamples:  len(samples) > 0,
		ReportJSON:  template.JS(encoded),
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, viewModel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var dashboardTemplate = template.Must(template.New("proof-benchmark-report").Parse(dashboardTemplateHTML))
