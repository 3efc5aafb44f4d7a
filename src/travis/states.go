package travis

import (
	"errors"
	"fmt"
)

// ErrUnknownJobState indicates Travis reported a job state this tool does not
// recognize. Treated as fatal rather than silently guessed at.
var ErrUnknownJobState = errors.New("unknown job state")

// StateKind classifies a job's reported state. Jobs only transition states on
// the Travis side; this tool is a pure observer.
type StateKind int

const (
	// StateWaiting covers jobs Travis has accepted but not started:
	// absent/queued/created/received.
	StateWaiting StateKind = iota
	// StateRunning covers started/running jobs.
	StateRunning
	StatePassed
	StateFailed
	StateErrored
	StateCanceled
)

// ClassifyState maps a reported job state string onto a StateKind.
func ClassifyState(state string) (StateKind, error) {
	switch state {
	case "", "queued", "created", "received":
		return StateWaiting, nil
	case "started", "running":
		return StateRunning, nil
	case "passed":
		return StatePassed, nil
	case "failed":
		return StateFailed, nil
	case "errored":
		return StateErrored, nil
	case "canceled":
		return StateCanceled, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownJobState, state)
	}
}

// Terminal reports whether no further transition can occur from this state.
func (k StateKind) Terminal() bool {
	switch k {
	case StatePassed, StateFailed, StateErrored, StateCanceled:
		return true
	default:
		return false
	}
}

// AllTerminal reports whether every job in the matrix has finished. It fails
// if any job carries an unrecognized state.
func AllTerminal(jobs []Job) (bool, error) {
	for _, job := range jobs {
		kind, err := ClassifyState(job.State)
		if err != nil {
			return false, err
		}
		if !kind.Terminal() {
			return false, nil
		}
	}
	return true, nil
}
