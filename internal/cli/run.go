// internal/cli/run.go
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/provelab/proofbench/internal/dashboard"
	"github.com/provelab/proofbench/internal/export"
	"github.com/provelab/proofbench/internal/logging"
	"github.com/provelab/proofbench/internal/proofs"
	"github.com/provelab/proofbench/internal/session"
	"github.com/provelab/proofbench/internal/tui"
)

var (
	runFormat    string
	runDashboard bool
)

// runCmd benchmarks the proof suite and writes the run artifacts.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Benchmark the proof suite and export the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchmarks(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&runFormat, "format", "nested", "export document shape: nested, flat, or both")
	runCmd.Flags().BoolVar(&runDashboard, "dashboard", true, "write the HTML dashboard")
	rootCmd.AddCommand(runCmd)
}

func runBenchmarks(ctx context.Context) error {
	cfg := GetConfig()

	if runFormat != "nested" && runFormat != "flat" && runFormat != "both" {
		return fmt.Errorf("unknown export format %q (want nested, flat, or both)", runFormat)
	}

	sess, err := session.New(session.Config{
		WarmupIterations:  cfg.WarmupIterations,
		DefaultIterations: cfg.Iterations,
		Verbose:           cfg.Verbose,
	})
	if err != nil {
		return err
	}

	cases, err := proofs.Suite()
	if err != nil {
		return err
	}

	logging.LogEvent("Benchmarking %d operations, %d iterations each (%d warmup)",
		len(cases), cfg.Iterations, cfg.WarmupIterations)

	if isatty.IsTerminal(os.Stdout.Fd()) {
		err = runWithProgress(ctx, sess, cases, cfg.Iterations)
	} else {
		err = runSuite(ctx, sess, cases, cfg.Iterations)
	}
	if err != nil {
		// A failed operation propagates verbatim; samples recorded before
		// the failure stay in the session but the run is not a success.
		return err
	}

	printSummaries(sess)
	return writeArtifacts(sess, cfg.OutputDirPath())
}

// runSuite runs every case sequentially, logging per-operation progress.
func runSuite(ctx context.Context, sess *session.Session, cases []proofs.Case, iterations int) error {
	for _, c := range cases {
		logging.LogEvent("Benchmarking %s...", c.Name)
		summary, err := sess.Benchmark(ctx, c.Name, c.Op, iterations)
		if err != nil {
			return err
		}
		logging.LogEvent("  %s: avg %.2fms min %.2fms max %.2fms over %d trials",
			c.Name, summary.AvgTimeMs, summary.MinTimeMs, summary.MaxTimeMs, summary.Count)
	}
	return nil
}

// runWithProgress drives the suite behind a live progress view.
func runWithProgress(ctx context.Context, sess *session.Session, cases []proofs.Case, iterations int) error {
	program := tea.NewProgram(tui.New(len(cases) * iterations))

	sess.OnTrial(func(label string, warmup bool, trial, total int) {
		program.Send(tui.TrialMsg{Label: label, Warmup: warmup, Trial: trial, Total: total})
	})
	defer sess.OnTrial(nil)

	done := make(chan error, 1)
	go func() {
		err := runSuite(ctx, sess, cases, iterations)
		program.Send(tui.DoneMsg{Err: err})
		done <- err
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("progress view failed: %w", err)
	}
	return <-done
}

func printSummaries(sess *session.Session) {
	color.New(color.FgGreen, color.Bold).Println("\nBenchmark complete")

	fmt.Printf("%-16s %6s %12s %12s %12s %12s %10s\n",
		"OPERATION", "COUNT", "AVG (ms)", "MIN (ms)", "MAX (ms)", "Δ MEM (MB)", "PEAK (MB)")
	for _, summary := range sess.Summaries() {
		fmt.Printf("%-16s %6d %12.2f %12.2f %12.2f %12.2f %10.2f\n",
			summary.Operation, summary.Count, summary.AvgTimeMs, summary.MinTimeMs,
			summary.MaxTimeMs, summary.AvgMemoryDeltaMB, summary.PeakMemoryMB)
	}

	if grand, err := sess.Overall(); err == nil {
		fmt.Printf("\n%d samples, total %.2fms, avg %.2fms, avg Δ mem %.2fMB\n",
			grand.Count, grand.TotalDurationMs, grand.AverageDurationMs, grand.AvgMemoryDeltaMB)
	}
}

func writeArtifacts(sess *session.Session, outputDir string) error {
	now := time.Now()

	if runFormat == "nested" || runFormat == "both" {
		path := export.FilePath(outputDir, "proof-benchmarks", "json", now)
		if err := export.Write(export.BuildNested(sess, now), path); err != nil {
			return err
		}
		logging.LogEvent("Nested export written to %s", path)
	}
	if runFormat == "flat" || runFormat == "both" {
		path := export.FilePath(outputDir, "proof-metrics", "json", now)
		if err := export.Write(export.BuildFlat(sess), path); err != nil {
			return err
		}
		logging.LogEvent("Flat export written to %s", path)
	}

	if runDashboard {
		html, err := dashboard.Render(sess.AllSamples(), sess.Summaries(), now)
		if err != nil {
			return fmt.Errorf("error rendering dashboard: %w", err)
		}
		path := export.FilePath(outputDir, "proof-dashboard", "html", now)
		if err := export.WriteFileAtomic(path, []byte(html)); err != nil {
			return err
		}
		logging.LogEvent("Dashboard written to %s", path)
	}

	return nil
}
