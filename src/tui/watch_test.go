package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"trytravis/src/travis"
)

// isQuit reports whether cmd resolves to tea.Quit.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWatchQuitsWhenAllJobsTerminal(t *testing.T) {
	m := NewWatchModel(nil, 100)

	jobs := jobsMsg{
		{State: "passed", Config: travis.JobConfig{OS: "linux"}},
		{State: "failed", Config: travis.JobConfig{OS: "linux"}},
	}
	updated, cmd := m.Update(jobs)

	if !isQuit(cmd) {
		t.Fatal("Update() with all-terminal jobs did not quit")
	}
	model := updated.(WatchModel)
	if model.Err() != nil {
		t.Errorf("Err() = %v, want nil for a finished build", model.Err())
	}
	if !model.done {
		t.Error("model not marked done")
	}
}

func TestWatchKeepsPollingWhileRunning(t *testing.T) {
	m := NewWatchModel(nil, 100)
	m.interval = time.Millisecond

	jobs := jobsMsg{
		{State: "passed", Config: travis.JobConfig{OS: "linux"}},
		{State: "started", Config: travis.JobConfig{OS: "linux"}},
	}
	updated, cmd := m.Update(jobs)

	if cmd == nil {
		t.Fatal("Update() with a running job returned no follow-up command")
	}
	if isQuit(cmd) {
		t.Fatal("Update() quit while a job was still running")
	}
	model := updated.(WatchModel)
	if model.frame == "" {
		t.Error("Update() did not render a frame")
	}
}

func TestWatchUnknownStateIsFatal(t *testing.T) {
	m := NewWatchModel(nil, 100)

	jobs := jobsMsg{{State: "mystery", Config: travis.JobConfig{OS: "linux"}}}
	updated, cmd := m.Update(jobs)

	if !isQuit(cmd) {
		t.Fatal("Update() with an unknown state did not quit")
	}
	model := updated.(WatchModel)
	if !errors.Is(model.Err(), travis.ErrUnknownJobState) {
		t.Errorf("Err() = %v, want ErrUnknownJobState", model.Err())
	}
}

func TestWatchInterruptExitsSilently(t *testing.T) {
	m := NewWatchModel(nil, 100)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Fatal("Update() on ctrl+c did not quit")
	}
	model := updated.(WatchModel)
	if model.Err() != nil {
		t.Errorf("Err() = %v, want nil for an interrupted watch", model.Err())
	}
}

func TestWatchResultSignalInterrupt(t *testing.T) {
	runErr := errors.New("terminal gone")
	modelErr := errors.New("api gone")

	tests := []struct {
		name  string
		final tea.Model
		err   error
		want  error
	}{
		{"sigint", WatchModel{}, tea.ErrInterrupted, nil},
		{"sigint killed program", WatchModel{}, fmt.Errorf("%w: %w", tea.ErrProgramKilled, tea.ErrInterrupted), nil},
		{"run failure", WatchModel{}, runErr, runErr},
		{"model error", WatchModel{err: modelErr}, nil, modelErr},
		{"normal exit", WatchModel{done: true}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := watchResult(tt.final, tt.err); !errors.Is(got, tt.want) {
				t.Errorf("watchResult() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatchPollFailure(t *testing.T) {
	m := NewWatchModel(nil, 100)

	wantErr := errors.New("api gone")
	updated, cmd := m.Update(errMsg{wantErr})

	if !isQuit(cmd) {
		t.Fatal("Update() on a poll error did not quit")
	}
	model := updated.(WatchModel)
	if !errors.Is(model.Err(), wantErr) {
		t.Errorf("Err() = %v, want %v", model.Err(), wantErr)
	}
}

func TestWatchView(t *testing.T) {
	m := NewWatchModel(nil, 4091)

	jobs := jobsMsg{{State: "started", Config: travis.JobConfig{OS: "linux", Language: "go"}}}
	updated, _ := m.Update(jobs)
	view := ansi.Strip(updated.(WatchModel).View())

	if !strings.Contains(view, "Watching build 4091") {
		t.Errorf("View() = %q, missing status line", view)
	}
	if !strings.Contains(view, "#1 * linux s go") {
		t.Errorf("View() = %q, missing job row", view)
	}
}
