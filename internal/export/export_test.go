// internal/export/export_test.go
package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provelab/proofbench/internal/sampler"
	"github.com/provelab/proofbench/internal/session"
)

func seededSession(t *testing.T) *session.Session {
	t.Helper()

	s, err := session.New(
		session.Config{WarmupIterations: 1, DefaultIterations: 2, Verbose: false},
		sampler.WithReclaimer(nil),
	)
	require.NoError(t, err)

	work := func(context.Context) (any, error) {
		sum := 0
		for i := 0; i < 10000; i++ {
			sum += i
		}
		return sum, nil
	}
	for _, label := range []string{"prove", "verify"} {
		_, err := s.Benchmark(context.Background(), label, work, 3)
		require.NoError(t, err)
	}
	return s
}

func TestBuildNestedMetadata(t *testing.T) {
	s := seededSession(t)
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	doc := BuildNested(s, now)

	assert.Equal(t, "2026-03-14T09:26:53Z", doc.Metadata.TestDate)
	assert.NotEmpty(t, doc.Metadata.HostVersion)
	assert.NotEmpty(t, doc.Metadata.Platform)
	assert.NotEmpty(t, doc.Metadata.Arch)
	assert.Equal(t, 6, doc.Metadata.TotalTests)
	require.Len(t, doc.Results, 6)
	assert.Equal(t, "prove", doc.Results[0].Name)
	assert.Equal(t, "verify", doc.Results[3].Name)

	for _, result := range doc.Results {
		assert.GreaterOrEqual(t, result.Duration.Ms, 0.0)
		assert.GreaterOrEqual(t, result.Duration.Seconds, 0.0)
	}
}

func TestNestedRoundTrip(t *testing.T) {
	s := seededSession(t)
	doc := BuildNested(s, time.Now())

	path := filepath.Join(t.TempDir(), "out", "nested.json")
	require.NoError(t, Write(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, ValidateNested(data))

	var parsed NestedDocument
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, doc, parsed, "every field round-trips at the documented precision")

	reconstructed := parsed.Samples()
	require.Len(t, reconstructed, len(doc.Results))
	for i, sample := range reconstructed {
		assert.Equal(t, doc.Results[i].Name, sample.Label)
		assert.InDelta(t, doc.Results[i].Duration.Ms, sample.DurationMs(), 0.005)
		assert.Equal(t, doc.Results[i].Memory.Start, sample.MemoryBefore)
		assert.Equal(t, doc.Results[i].Memory.End, sample.MemoryAfter)
		assert.Equal(t, doc.Results[i].Memory.Delta, sample.MemoryDelta)
	}
}

func TestBuildFlat(t *testing.T) {
	s := seededSession(t)

	doc := BuildFlat(s)

	assert.False(t, doc.Config.Verbose)
	assert.Equal(t, 1, doc.Config.WarmupIterations)
	assert.Equal(t, 2, doc.Config.Iterations)
	require.Len(t, doc.Metrics, 6)
	require.Len(t, doc.Stats, 2)
	assert.Equal(t, "prove", doc.Stats[0].Operation)
	assert.Equal(t, 3, doc.Stats[0].Count)
	assert.LessOrEqual(t, doc.Stats[0].MinTimeMs, doc.Stats[0].MaxTimeMs)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, ValidateFlat(data))
}

func TestValidateNestedRejectsMalformedDocument(t *testing.T) {
	require.Error(t, ValidateNested([]byte(`{"metadata": {}}`)))
	require.Error(t, ValidateNested([]byte(`not json`)))
}

func TestWriteLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	require.NoError(t, Write(map[string]string{"ok": "yes"}, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc.json", entries[0].Name())
}

func TestWriteCreatesOutputDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "doc.json")
	require.NoError(t, Write(struct{}{}, path))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestWriteRejectsUnencodableDocument(t *testing.T) {
	dir := t.TempDir()
	err := Write(map[string]any{"fn": func() {}}, filepath.Join(dir, "doc.json"))
	require.Error(t, err)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no partial file observable on failure")
}

func TestFilePathToken(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 123456789, time.UTC)
	path := FilePath("out", "Proof:Benchmarks", "json", now)

	assert.Equal(t, filepath.Join("out", "proof_benchmarks-20260314-092653-123456.json"), path)

	pattern := regexp.MustCompile(`proof_benchmarks-\d{8}-\d{6}-\d{6}\.json$`)
	assert.Regexp(t, pattern, path)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Proof:One":      "proof_one",
		"  Proof Two  ":  "proof-two",
		"Proof--Three!!": "proof-three",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, Slugify(input))
	}
}

func TestRounding(t *testing.T) {
	assert.InDelta(t, 1.23, Round2(1.234999), 1e-12)
	assert.InDelta(t, 1.24, Round2(1.235001), 1e-12)
	assert.InDelta(t, 0.001, Round3(0.0005001), 1e-12)
}
