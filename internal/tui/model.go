// Package tui renders a live progress view for a running query: a spinner,
// visited and matched counters fed by query events, and recent traversal
// errors. Results are collected while the query runs and handed back to the
// caller for printing once the program exits.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/pathq/internal/query"
)

// QueryDoneMsg is sent when the query run finishes.
type QueryDoneMsg struct {
	Lines []string
	Err   error
}

// Model represents the TUI state
type Model struct {
	bridge  *EventBridge
	run     func() ([]string, error)
	spinner spinner.Model

	roots     []string
	visited   int
	matched   int
	errors    []string
	elapsed   time.Duration
	lines     []string
	err       error
	done      bool
	cancelled bool
}

// NewModel creates a progress model for one query run. The run callback
// executes the query and returns the output lines; it is invoked exactly
// once, on a command goroutine, with events flowing back through the bridge.
func NewModel(bridge *EventBridge, roots []string, run func() ([]string, error)) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor())

	return Model{
		bridge:  bridge,
		run:     run,
		spinner: sp,
		roots:   roots,
	}
}

// Lines returns the collected output lines (for printing after exit).
func (m Model) Lines() []string { return m.lines }

// Err returns the query error, if any.
func (m Model) Err() error { return m.err }

// Cancelled reports whether the user interrupted the run.
func (m Model) Cancelled() bool { return m.cancelled }

// Visited returns the visited counter (for testing).
func (m Model) Visited() int { return m.visited }

// Matched returns the matched counter (for testing).
func (m Model) Matched() int { return m.matched }

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.bridge.ListenCmd(),
		m.runCmd(),
	)
}

// runCmd executes the query off the update loop and reports completion.
func (m Model) runCmd() tea.Cmd {
	run := m.run
	return func() tea.Msg {
		lines, err := run()
		return QueryDoneMsg{Lines: lines, Err: err}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == KeyCtrlC || msg.String() == "q" {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case QueryEventMsg:
		m.applyEvent(msg.Event)
		// Keep listening until the run reports done
		if m.done {
			return m, nil
		}
		return m, m.bridge.ListenCmd()

	case QueryDoneMsg:
		m.done = true
		m.lines = msg.Lines
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) applyEvent(event query.Event) {
	switch e := event.(type) {
	case query.QueryProgress:
		m.visited = e.Visited
		m.matched = e.Matched
	case query.QueryError:
		m.errors = append(m.errors, fmt.Sprintf("%s: %v", e.Path, e.Err))
		if len(m.errors) > MaxVisibleErrors {
			m.errors = m.errors[len(m.errors)-MaxVisibleErrors:]
		}
	case query.QueryCompleted:
		m.visited = e.Visited
		m.matched = e.Matched
		m.elapsed = e.Elapsed
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(TitleStyle().Render("pathq"))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s searching %s\n",
		m.spinner.View(),
		DimStyle().Render(strings.Join(m.roots, ", "))))

	b.WriteString(fmt.Sprintf("  visited %s   matched %s\n",
		MatchStyle().Render(fmt.Sprintf("%d", m.visited)),
		SuccessStyle().Render(fmt.Sprintf("%d", m.matched))))

	for _, errLine := range m.errors {
		b.WriteString("  " + ErrorStyle().Render("! ") + DimStyle().Render(errLine) + "\n")
	}

	b.WriteString(DimStyle().Render("\n  q or ctrl+c to cancel\n"))

	return BoxStyle().Render(b.String())
}
