// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Brand color
var (
	primaryColor = lipgloss.Color("#ff7300")
	subtleColor  = lipgloss.Color("#626262")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF0000")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	activeStepStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	doneStepStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStepStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// Step statuses.
const (
	StatusStarted  = "started"
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusSkipped  = "skipped"
	StatusProgress = "progress"
)

// maxLogLines is how many progress lines the view keeps on screen.
const maxLogLines = 8

// DefaultIdleTimeout bounds the wait between two pipeline updates.
const DefaultIdleTimeout = 2 * time.Minute

// PipelineStatusMsg indicates a status update from the pipeline.
// Progress messages only add a log line and leave the step status alone.
type PipelineStatusMsg struct {
	Step    string
	Status  string
	Message string
}

// ResultMsg indicates the final result.
type ResultMsg struct {
	Success bool
	Output  string
}

// Model for the TUI.
type Model struct {
	spinner     spinner.Model
	title       string
	steps       []string
	current     int
	status      map[string]string // step -> status
	logs        []string
	quitting    bool
	err         error
	result      *ResultMsg
	idleTimeout time.Duration
	statusChan  <-chan PipelineStatusMsg
}

// NewModel creates a new TUI model.
func NewModel(title string, steps []string, statusChan <-chan PipelineStatusMsg) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		spinner:     s,
		title:       title,
		steps:       steps,
		current:     0,
		status:      make(map[string]string),
		idleTimeout: DefaultIdleTimeout,
		statusChan:  statusChan,
	}
}

// WithIdleTimeout sets how long the model waits for the next update.
func (m Model) WithIdleTimeout(d time.Duration) Model {
	m.idleTimeout = d
	return m
}

// Result returns the final result, or nil if the user quit before the
// pipeline reported one.
func (m Model) Result() *ResultMsg {
	return m.result
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForActivity(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PipelineStatusMsg:
		if msg.Message != "" {
			m.logs = append(m.logs, fmt.Sprintf("[%s] %s: %s", time.Now().Format("15:04:05"), msg.Step, msg.Message))
		}
		if msg.Status == StatusProgress {
			return m, m.waitForActivity()
		}

		m.status[msg.Step] = msg.Status

		// Find current step index
		for i, s := range m.steps {
			if s == msg.Step {
				m.current = i
				break
			}
		}

		if msg.Status == StatusError {
			m.err = fmt.Errorf("step %s failed: %s", msg.Step, msg.Message)
		}

		return m, m.waitForActivity()

	case ResultMsg:
		// The caller prints the output once the program has released the terminal.
		m.result = &msg
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) waitForActivity() tea.Cmd {
	ch := m.statusChan
	timeout := m.idleTimeout
	return func() tea.Msg {
		select {
		case msg, ok := <-ch:
			if !ok {
				// The runner sends the final result itself.
				return nil
			}
			return msg
		case <-time.After(timeout):
			return ResultMsg{
				Success: false,
				Output:  "pipeline timed out waiting for activity",
			}
		}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(m.title))
	s.WriteString("\n\n")

	for i, step := range m.steps {
		status := m.status[step]

		prefix := "  "
		style := stepStyle

		if i == m.current {
			prefix = m.spinner.View() + " "
			style = activeStepStyle
		}

		switch status {
		case StatusSuccess:
			prefix = "✓ "
			style = doneStepStyle
		case StatusError:
			prefix = "✗ "
			style = errorStepStyle
		case StatusSkipped:
			prefix = "○ "
			style = stepStyle.Faint(true)
		}

		s.WriteString(style.Render(fmt.Sprintf("%s%s\n", prefix, step)))
	}

	s.WriteString("\nLogs:\n")
	start := 0
	if len(m.logs) > maxLogLines {
		start = len(m.logs) - maxLogLines
	}
	for _, log := range m.logs[start:] {
		s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render(log) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errorStepStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render("\nPress q to quit\n"))

	return s.String()
}
