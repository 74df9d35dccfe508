// internal/tui/progress.go
// Package tui renders live benchmark progress while a run is attached to a
// terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TrialMsg reports that one trial is about to run.
type TrialMsg struct {
	Label  string
	Warmup bool
	Trial  int
	Total  int
}

// DoneMsg ends the progress view. Err carries a run failure, if any.
type DoneMsg struct {
	Err error
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model for a benchmark run. TotalTrials counts only
// tracked trials; warmups show in the status line but do not advance the bar.
type Model struct {
	bar         progress.Model
	totalTrials int
	completed   int
	current     TrialMsg
	err         error
	done        bool
}

// New returns a progress model sized for totalTrials tracked trials.
func New(totalTrials int) Model {
	return Model{
		bar:         progress.New(progress.WithDefaultGradient()),
		totalTrials: totalTrials,
	}
}

// Err returns the run failure observed by the view, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TrialMsg:
		if !m.current.Warmup && m.current.Label != "" {
			m.completed++
		}
		m.current = msg
		return m, nil
	case DoneMsg:
		if !m.current.Warmup && m.current.Label != "" {
			m.completed++
		}
		m.err = msg.Err
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 8
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("proofbench") + "\n\n")

	percent := 0.0
	if m.totalTrials > 0 {
		percent = float64(m.completed) / float64(m.totalTrials)
	}
	b.WriteString("  " + m.bar.ViewAs(percent) + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString("  " + errStyle.Render(fmt.Sprintf("run failed: %v", m.err)) + "\n")
	case m.done:
		b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%d trials complete", m.completed)) + "\n")
	case m.current.Label != "":
		phase := "trial"
		if m.current.Warmup {
			phase = "warmup"
		}
		b.WriteString("  " + labelStyle.Render(truncate(m.current.Label, 40)) +
			dimStyle.Render(fmt.Sprintf("  %s %d/%d", phase, m.current.Trial, m.current.Total)) + "\n")
	default:
		b.WriteString("  " + dimStyle.Render("starting...") + "\n")
	}

	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
