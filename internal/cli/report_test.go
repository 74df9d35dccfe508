// internal/cli/report_test.go
package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provelab/proofbench/internal/sampler"
)

func TestSummarizeByLabelPreservesOrder(t *testing.T) {
	samples := []sampler.Sample{
		{Label: "verify", Duration: 5 * time.Millisecond},
		{Label: "prove", Duration: 10 * time.Millisecond},
		{Label: "verify", Duration: 15 * time.Millisecond},
		{Label: "prove", Duration: 20 * time.Millisecond},
	}

	summaries := summarizeByLabel(samples)
	require.Len(t, summaries, 2)

	assert.Equal(t, "verify", summaries[0].Operation)
	assert.Equal(t, 2, summaries[0].Count)
	assert.InDelta(t, 10, summaries[0].AvgTimeMs, 1e-9)

	assert.Equal(t, "prove", summaries[1].Operation)
	assert.InDelta(t, 15, summaries[1].AvgTimeMs, 1e-9)
}

func TestSummarizeByLabelEmptyInput(t *testing.T) {
	assert.Empty(t, summarizeByLabel(nil))
}
