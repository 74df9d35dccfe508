// internal/cli/report.go
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/provelab/proofbench/internal/dashboard"
	"github.com/provelab/proofbench/internal/export"
	"github.com/provelab/proofbench/internal/logging"
	"github.com/provelab/proofbench/internal/sampler"
	"github.com/provelab/proofbench/internal/stats"
)

var reportOut string

// reportCmd re-renders the dashboard from a previously written nested export.
var reportCmd = &cobra.Command{
	Use:   "report <export.json>",
	Short: "Render the HTML dashboard from a nested export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderReport(args[0])
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "", "dashboard output path (defaults into the output directory)")
	rootCmd.AddCommand(reportCmd)
}

func renderReport(exportPath string) error {
	data, err := os.ReadFile(exportPath)
	if err != nil {
		return fmt.Errorf("could not read export file %q: %w", exportPath, err)
	}

	if err := export.ValidateNested(data); err != nil {
		return err
	}

	var doc export.NestedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("could not parse export file %q: %w", exportPath, err)
	}

	samples := doc.Samples()
	summaries := summarizeByLabel(samples)

	now := time.Now()
	html, err := dashboard.Render(samples, summaries, now)
	if err != nil {
		return fmt.Errorf("error rendering dashboard: %w", err)
	}

	path := reportOut
	if path == "" {
		path = export.FilePath(GetConfig().OutputDirPath(), "proof-dashboard", "html", now)
	}
	if err := export.WriteFileAtomic(path, []byte(html)); err != nil {
		return err
	}
	logging.LogEvent("Dashboard written to %s", path)

	return nil
}

// summarizeByLabel groups samples by label in first-seen order and
// summarizes each group.
func summarizeByLabel(samples []sampler.Sample) []stats.Summary {
	var labels []string
	groups := make(map[string][]sampler.Sample)
	for _, s := range samples {
		if _, seen := groups[s.Label]; !seen {
			labels = append(labels, s.Label)
		}
		groups[s.Label] = append(groups[s.Label], s)
	}

	summaries := make([]stats.Summary, 0, len(labels))
	for _, label := range labels {
		summary, err := stats.Summarize(label, groups[label])
		if err != nil {
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
