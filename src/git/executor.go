package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrRepoNotFound indicates the submission path is not a git work tree.
var ErrRepoNotFound = errors.New("repository not found")

// GitError carries the failing git subcommand and its combined output so the
// top-level error message is actionable.
type GitError struct {
	Args   []string
	Output string
	Err    error
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// CommandExecutor runs git subcommands against a repository. The indirection
// exists so the submission workflow can be tested without a git binary.
type CommandExecutor interface {
	// Run executes `git <args...>` in dir and returns its combined output.
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecExecutor is the default CommandExecutor backed by os/exec.
type ExecExecutor struct{}

func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Run implements CommandExecutor.
func (e *ExecExecutor) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.String(), &GitError{Args: args, Output: out.String(), Err: err}
	}
	return out.String(), nil
}
