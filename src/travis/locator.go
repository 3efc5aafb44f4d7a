package travis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trytravis/src/config"
	"trytravis/src/logger"
)

// ErrBuildTimeout indicates no build matching the pushed commit appeared
// before the location window closed.
var ErrBuildTimeout = errors.New("timed out while waiting for a Travis build to start")

const (
	locateTimeout  = 60 * time.Second
	locateInterval = 3 * time.Second
)

// Locator polls the Travis API until a build appears for a pushed commit.
type Locator struct {
	Client   *Client
	Timeout  time.Duration
	Interval time.Duration
	Log      logger.Logger
}

// NewLocator creates a Locator with the standard 60 second window and
// 3 second poll interval.
func NewLocator(client *Client, log logger.Logger) *Locator {
	return &Locator{
		Client:   client,
		Timeout:  locateTimeout,
		Interval: locateInterval,
		Log:      log,
	}
}

// Locate resolves the pushed commit to a Travis build ID. Builds whose commit
// timestamp predates committedAt are ignored so a stale build with an
// ancestor of the same SHA cannot match. Every matching build in a poll is
// logged and the last match wins; any match ends the polling loop.
func (l *Locator) Locate(ctx context.Context, repoURL, commitSHA string, committedAt time.Time) (int64, error) {
	slug, err := config.Slug(repoURL)
	if err != nil {
		return 0, err
	}

	l.Log.Info("Waiting for a Travis build to appear for `%s` after `%s`...",
		commitSHA, committedAt.Format(time.RFC3339))

	deadline := time.Now().Add(l.Timeout)
	for time.Now().Before(deadline) {
		buildID, err := l.poll(ctx, slug, commitSHA, committedAt)
		if err != nil {
			return 0, err
		}
		if buildID != 0 {
			return buildID, nil
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(l.Interval):
		}
	}

	return 0, fmt.Errorf("%w: is Travis configured for `%s`?", ErrBuildTimeout, repoURL)
}

func (l *Locator) poll(ctx context.Context, slug, commitSHA string, committedAt time.Time) (int64, error) {
	repoID, err := l.repoID(ctx)
	if err != nil {
		return 0, err
	}

	builds, err := l.Client.Builds(ctx, repoID)
	if err != nil {
		return 0, err
	}

	// Builds committed strictly before our commit can never be ours, even if
	// an ancestor shares the SHA.
	commitToSHA := make(map[int64]string, len(builds))
	for _, build := range builds {
		if build.Commit.CommittedAt.Before(committedAt) {
			continue
		}
		commitToSHA[build.Commit.ID] = build.Commit.SHA
	}

	var buildID int64
	for _, build := range builds {
		if sha, ok := commitToSHA[build.Commit.ID]; ok && sha == commitSHA {
			buildID = build.ID
			l.Log.Info("Travis build id: `%d`", buildID)
			l.Log.Info("Travis build URL: `https://travis-ci.org/%s/builds/%d`", slug, buildID)
		}
	}
	return buildID, nil
}

// repoID finds the id of the scratch repository on Travis by its name.
func (l *Locator) repoID(ctx context.Context) (int64, error) {
	repos, err := l.Client.Repositories(ctx)
	if err != nil {
		return 0, err
	}
	for _, repo := range repos {
		if strings.Contains(repo.Name, "trytravis") {
			return repo.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: no `trytravis` repository visible to this token", ErrAPIUnavailable)
}
