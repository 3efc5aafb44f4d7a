// Package git shells out to the git binary to submit uncommitted local
// changes to a disposable remote: stage everything, commit, force-push, then
// restore the repository to its exact prior state.
package git

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trytravis/src/logger"
)

// remoteName is the disposable remote added and removed within one submission.
const remoteName = "trytravis"

// Repo is a local git repository that changes are submitted from.
type Repo struct {
	path     string
	executor CommandExecutor
	log      logger.Logger
}

// Open validates that path is a git work tree and returns a Repo for it.
func Open(path string, log logger.Logger) (*Repo, error) {
	return open(path, NewExecExecutor(), log)
}

func open(path string, executor CommandExecutor, log logger.Logger) (*Repo, error) {
	r := &Repo{path: path, executor: executor, log: log}
	if _, err := r.run(context.Background(), "rev-parse", "--is-inside-work-tree"); err != nil {
		return nil, fmt.Errorf("%w: couldn't locate a repository at %q", ErrRepoNotFound, path)
	}
	return r, nil
}

// Submit stages all working-tree changes, commits them with a timestamped
// message, force-pushes the result to remoteURL, and returns the pushed
// commit's SHA and committed-at timestamp. If the tree is clean no commit is
// made and the current HEAD is submitted instead. Whatever happens after the
// remote is added, the temporary commit is reverted and the remote removed
// before returning; the working tree contents are never discarded.
func (r *Repo) Submit(ctx context.Context, remoteURL string) (sha string, committedAt time.Time, err error) {
	// Leftover remote from an interrupted run; removal failure just means it
	// wasn't there.
	_, _ = r.run(ctx, "remote", "remove", remoteName)

	r.log.Info("Adding a temporary remote to `%s`...", remoteURL)
	if _, err = r.run(ctx, "remote", "add", remoteName, remoteURL); err != nil {
		return "", time.Time{}, err
	}

	committed := false
	defer func() {
		if committed {
			r.log.Info("Reverting to old state...")
			if _, resetErr := r.run(ctx, "reset", "HEAD^"); resetErr != nil && err == nil {
				err = resetErr
			}
		}
		_, _ = r.run(ctx, "remote", "remove", remoteName)
	}()

	r.log.Info("Adding all local changes...")
	if _, err = r.run(ctx, "add", "--all"); err != nil {
		return "", time.Time{}, err
	}

	r.log.Info("Committing local changes...")
	message := remoteName + "-" + time.Now().Format(time.RFC3339)
	if out, commitErr := r.run(ctx, "commit", "-m", message); commitErr != nil {
		if !strings.Contains(out, "nothing to commit") {
			return "", time.Time{}, commitErr
		}
		// Clean tree: submit HEAD as-is, nothing to revert later.
	} else {
		committed = true
	}

	if sha, committedAt, err = r.head(ctx); err != nil {
		return "", time.Time{}, err
	}

	r.log.Info("Pushing to `%s` remote...", remoteName)
	if _, err = r.run(ctx, "push", "--force", remoteName, "HEAD"); err != nil {
		return "", time.Time{}, err
	}

	return sha, committedAt, nil
}

// head returns the current HEAD commit SHA and committer timestamp.
func (r *Repo) head(ctx context.Context) (string, time.Time, error) {
	sha, err := r.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", time.Time{}, err
	}

	stamp, err := r.run(ctx, "log", "-1", "--format=%cI")
	if err != nil {
		return "", time.Time{}, err
	}
	committedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(stamp))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not parse commit timestamp %q: %w", strings.TrimSpace(stamp), err)
	}

	return strings.TrimSpace(sha), committedAt, nil
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	return r.executor.Run(ctx, r.path, args...)
}
