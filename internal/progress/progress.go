// Package progress renders the --progress live status line: a single-line
// bubbletea program driven by a channel of pipeline.Event notifications.
// It is purely observational and never
// sits in the engine's call path — the pipeline keeps running identically
// whether or not anyone is listening on the channel.
package progress

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kompass-sh/sjq/internal/pipeline"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	statStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// doneMsg signals that the engine run's Events channel was closed.
type doneMsg struct{}

type eventMsg pipeline.Event

// model's spinner stands in for a progress bar: sjq never knows the total
// value count up front (the input is a stream, not a sized collection), so
// there is no percentage to render — only an indication that the engine is
// still consuming input.
type model struct {
	events <-chan pipeline.Event
	spinner spinner.Model
	started time.Time
	values int64
	chars int64
	finished bool
}

func newModel(events <-chan pipeline.Event) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statStyle
	return model{events: events, spinner: s, started: timeNow()}
}

// timeNow exists so tests can avoid depending on wall-clock time; the
// production program always uses the real clock.
var timeNow = time.Now

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), spinner.Tick)
}

func waitForEvent(events <-chan pipeline.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(evt)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.values = msg.ValuesIngested
		m.chars = msg.CharsConsumed
		if msg.Kind == pipeline.EventFinish {
			m.finished = true
			return m, tea.Quit
		}
		return m, waitForEvent(m.events)
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	elapsed := timeNow().Sub(m.started).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(m.values) / elapsed
	}
	status := m.spinner.View() + " running"
	if m.finished {
		status = "✓ done"
	}
	return fmt.Sprintf("%s %s %s\n",
		labelStyle.Render("sjq"),
		statStyle.Render(status),
		statStyle.Render(fmt.Sprintf("%d values (%.1f/s), %d chars consumed", m.values, rate, m.chars)))
}

// Run starts the status-line program and blocks until events is closed or
// a EventFinish is received. Callers typically run this in a goroutine
// alongside pipeline.Run, passing it the same channel as Options.Events.
func Run(events <-chan pipeline.Event) error {
	p := tea.NewProgram(newModel(events), tea.WithoutSignalHandler())
	_, err := p.Run()
	return err
}
