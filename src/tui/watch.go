// Package tui renders the live job matrix of a Travis build, repainting the
// table in place until every job reaches a terminal state.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"trytravis/src/travis"
)

// pollInterval is how often job states are refetched.
const pollInterval = 3 * time.Second

type jobsMsg []travis.Job

type errMsg struct{ err error }

type pollMsg time.Time

// WatchModel is the Bubble Tea model for the build watch display. It is a
// pure observer: Travis drives every job transition, the model only polls
// and re-renders.
type WatchModel struct {
	client  *travis.Client
	buildID int64

	spin     spinner.Model
	frame    string
	interval time.Duration
	done     bool
	err      error
}

// NewWatchModel creates a watch model for the given build.
func NewWatchModel(client *travis.Client, buildID int64) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinStyle
	return WatchModel{
		client:   client,
		buildID:  buildID,
		spin:     sp,
		interval: pollInterval,
	}
}

// Err returns the error the watch ended with, nil for a normal or
// interrupted exit.
func (m WatchModel) Err() error {
	return m.err
}

// Init starts the first fetch and the spinner.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.fetchJobs(), m.spin.Tick)
}

// Update handles poll results and user interrupts.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			// Interrupt is a normal exit: the build keeps running on Travis.
			return m, tea.Quit
		}

	case jobsMsg:
		frame, err := RenderFrame(msg)
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.frame = frame

		done, err := travis.AllTerminal(msg)
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		if done {
			m.done = true
			return m, tea.Quit
		}
		return m, tea.Tick(m.interval, func(t time.Time) tea.Msg {
			return pollMsg(t)
		})

	case pollMsg:
		return m, m.fetchJobs()

	case errMsg:
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the status line and the current job matrix.
func (m WatchModel) View() string {
	if m.err != nil {
		return ""
	}
	return renderHeader(m.buildID, m.spin.View(), m.done) + "\n" + m.frame
}

func (m WatchModel) fetchJobs() tea.Cmd {
	return func() tea.Msg {
		jobs, err := m.client.Jobs(context.Background(), m.buildID)
		if err != nil {
			return errMsg{err}
		}
		return jobsMsg(jobs)
	}
}

// Watch blocks until every job of the build reaches a terminal state, the
// user interrupts, or a poll fails. Interruption is a normal exit.
func Watch(client *travis.Client, buildID int64) error {
	p := tea.NewProgram(NewWatchModel(client, buildID))
	return watchResult(p.Run())
}

// watchResult maps the program's final model and run error onto the watch
// outcome. A signal interrupt ends the watch the same way ctrl+c does.
func watchResult(final tea.Model, err error) error {
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) {
			return nil
		}
		return err
	}
	if m, ok := final.(WatchModel); ok {
		return m.Err()
	}
	return nil
}
