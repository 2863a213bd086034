// Package tui implements the interactive progress view for batch archiving.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pagevault/pagevault/internal/batch"
)

const maxVisibleResults = 8

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	retryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
)

// EventMsg delivers one batch event to the model.
type EventMsg batch.Event

// DoneMsg signals the end of the batch run.
type DoneMsg struct {
	Summary batch.Summary
	Err     error
}

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Progress is the bubbletea model for a batch archive run.
type Progress struct {
	bar     progress.Model
	spin    spinner.Model
	total   int
	current batch.Event
	recent  []batch.Event
	summary *batch.Summary
	err     error
	cancel  func() // invoked when the user quits mid-run
	width   int
}

// NewProgress builds a progress model for total URLs. cancel is called when
// the user aborts; it may be nil.
func NewProgress(total int, cancel func()) *Progress {
	bar := progress.New(progress.WithDefaultGradient())
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	return &Progress{bar: bar, spin: spin, total: total, cancel: cancel}
}

// Init implements tea.Model.
func (m *Progress) Init() tea.Cmd {
	return m.spin.Tick
}

// Update implements tea.Model.
func (m *Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		const barMargin = 6
		if w := msg.Width - barMargin; w > 0 {
			m.bar.Width = w
		}
		return m, nil

	case EventMsg:
		ev := batch.Event(msg)
		m.current = ev
		if ev.Status != batch.StatusRetrying {
			m.recent = append(m.recent, ev)
			if len(m.recent) > maxVisibleResults {
				m.recent = m.recent[len(m.recent)-maxVisibleResults:]
			}
		}
		return m, nil

	case DoneMsg:
		m.summary = &msg.Summary
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		if b, ok := bar.(progress.Model); ok {
			m.bar = b
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Progress) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Archiving pages"))
	b.WriteString("\n\n")

	done := m.current.Index
	if m.summary != nil {
		done = m.total
	}
	ratio := 0.0
	if m.total > 0 {
		ratio = float64(done) / float64(m.total)
	}
	b.WriteString(m.bar.ViewAs(ratio))
	b.WriteString(fmt.Sprintf("  %d/%d\n\n", done, m.total))

	if m.summary == nil && m.current.URL != "" {
		b.WriteString(m.spin.View())
		b.WriteString(urlStyle.Render(m.current.URL))
		if m.current.Status == batch.StatusRetrying {
			b.WriteString(" " + retryStyle.Render(m.current.Message))
		}
		b.WriteString("\n\n")
	}

	for _, ev := range m.recent {
		b.WriteString("  " + eventGlyph(ev.Status) + " " + ev.URL)
		if ev.File != "" {
			b.WriteString(dimStyle.Render(" -> " + ev.File))
		}
		b.WriteString("\n")
	}

	if m.summary != nil {
		b.WriteString("\n")
		b.WriteString(summaryStyle.Render(fmt.Sprintf(
			"archived %d, skipped %d, failed %d of %d",
			m.summary.Archived, m.summary.Skipped, m.summary.Failed, m.summary.Total)))
		b.WriteString("\n")
	} else {
		b.WriteString("\n" + dimStyle.Render("q to abort") + "\n")
	}
	return b.String()
}

func eventGlyph(s batch.Status) string {
	switch s {
	case batch.StatusArchived:
		return okStyle.Render("✓")
	case batch.StatusSkipped:
		return skipStyle.Render("•")
	case batch.StatusFailed:
		return failStyle.Render("✗")
	default:
		return " "
	}
}
