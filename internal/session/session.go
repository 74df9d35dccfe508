// internal/session/session.go
// Package session orchestrates repeated benchmark trials and owns the
// ordered sample store for a run.
package session

import (
	"context"
	"fmt"

	"github.com/provelab/proofbench/internal/logging"
	"github.com/provelab/proofbench/internal/sampler"
	"github.com/provelab/proofbench/internal/stats"
)

// ConfigError reports an invalid session configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("session: invalid %s: %s", e.Field, e.Reason)
}

// Config controls how a Session runs trials.
type Config struct {
	WarmupIterations  int
	DefaultIterations int
	Verbose           bool
}

// Validate checks the configured iteration counts.
func (c Config) Validate() error {
	if c.WarmupIterations < 0 {
		return &ConfigError{Field: "warmupIterations", Reason: "must be >= 0"}
	}
	if c.DefaultIterations < 1 {
		return &ConfigError{Field: "iterations", Reason: "must be >= 1"}
	}
	return nil
}

// TrialHook observes trial starts. warmup reports whether the trial is an
// untracked warmup; trial counts from 1 within its phase.
type TrialHook func(label string, warmup bool, trial, total int)

// Session accumulates samples for a benchmarking run. Trials execute
// strictly sequentially, so the append-only store needs no locking.
type Session struct {
	cfg     Config
	labels  []string
	samples map[string][]sampler.Sample
	opts    []sampler.Option
	onTrial TrialHook
}

// New returns an empty Session, or a ConfigError for invalid counts.
func New(cfg Config, opts ...sampler.Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		cfg:     cfg,
		samples: make(map[string][]sampler.Sample),
		opts:    opts,
	}, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// OnTrial registers a hook invoked before each warmup and tracked trial.
func (s *Session) OnTrial(hook TrialHook) { s.onTrial = hook }

// Labels returns the operation labels in first-insertion order.
func (s *Session) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Samples returns the recorded samples for one label, in trial order.
func (s *Session) Samples(label string) []sampler.Sample {
	recorded := s.samples[label]
	out := make([]sampler.Sample, len(recorded))
	copy(out, recorded)
	return out
}

// AllSamples returns every recorded sample, grouped by label insertion order
// and in trial order within each label.
func (s *Session) AllSamples() []sampler.Sample {
	var out []sampler.Sample
	for _, label := range s.labels {
		out = append(out, s.samples[label]...)
	}
	return out
}

func (s *Session) append(sample sampler.Sample) {
	if _, seen := s.samples[sample.Label]; !seen {
		s.labels = append(s.labels, sample.Label)
	}
	s.samples[sample.Label] = append(s.samples[sample.Label], sample)
}

// Track runs one tracked trial of fn and appends the resulting sample. A
// failure propagates verbatim and records nothing.
func (s *Session) Track(ctx context.Context, label string, fn sampler.UnitOfWork) (any, error) {
	result, sample, err := sampler.Track(ctx, label, fn, s.opts...)
	if err != nil {
		return nil, err
	}
	s.append(sample)
	return result, nil
}

// TrackSync is Track for a unit of work that never blocks on external
// progress.
func (s *Session) TrackSync(label string, fn func() (any, error)) (any, error) {
	return s.Track(context.Background(), label, func(context.Context) (any, error) {
		return fn()
	})
}

// Benchmark runs warmup iterations followed by n tracked trials of fn and
// returns the summary over those n trials. Iterations <= 0 fall back to the
// configured default. A warmup failure aborts before anything is recorded; a
// failure at tracked trial k keeps the samples from trials 1..k-1 and skips
// the rest. Failed operations are never retried.
func (s *Session) Benchmark(ctx context.Context, label string, fn sampler.UnitOfWork, iterations int) (stats.Summary, error) {
	if iterations <= 0 {
		iterations = s.cfg.DefaultIterations
	}
	if iterations < 1 {
		return stats.Summary{}, &ConfigError{Field: "iterations", Reason: "must be >= 1"}
	}

	for i := 0; i < s.cfg.WarmupIterations; i++ {
		if s.onTrial != nil {
			s.onTrial(label, true, i+1, s.cfg.WarmupIterations)
		}
		if s.cfg.Verbose {
			logging.LogEvent("[SESSION] %s warmup %d/%d", label, i+1, s.cfg.WarmupIterations)
		}
		if _, err := fn(ctx); err != nil {
			return stats.Summary{}, err
		}
	}

	recorded := make([]sampler.Sample, 0, iterations)
	for i := 0; i < iterations; i++ {
		if s.onTrial != nil {
			s.onTrial(label, false, i+1, iterations)
		}
		if s.cfg.Verbose {
			logging.LogEvent("[SESSION] %s trial %d/%d", label, i+1, iterations)
		}
		_, sample, err := sampler.Track(ctx, label, fn, s.opts...)
		if err != nil {
			return stats.Summary{}, err
		}
		s.append(sample)
		recorded = append(recorded, sample)
	}

	return stats.Summarize(label, recorded)
}

// Summaries computes one summary per label, in label insertion order.
func (s *Session) Summaries() []stats.Summary {
	out := make([]stats.Summary, 0, len(s.labels))
	for _, label := range s.labels {
		summary, err := stats.Summarize(label, s.samples[label])
		if err != nil {
			continue
		}
		out = append(out, summary)
	}
	return out
}

// Overall computes the grand summary across every label.
func (s *Session) Overall() (stats.GrandSummary, error) {
	return stats.Overall(s.AllSamples())
}
