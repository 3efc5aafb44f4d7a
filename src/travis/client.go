// Package travis provides a client for the Travis CI v3 REST API along with
// build location and job state classification.
package travis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// APIBaseURL is the base URL for the Travis CI API.
	APIBaseURL = "https://api.travis-ci.org"

	userAgent = "trytravis (https://github.com/sethmlarson/trytravis)"
)

// ErrAPIUnavailable indicates an HTTP exchange with the Travis API did not
// succeed, either at the transport level or with a non-success status.
var ErrAPIUnavailable = errors.New("could not reach the Travis API endpoint")

// Client is a Travis CI API client.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Travis API client authenticating with token.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: APIBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Repositories fetches the repositories the authenticated user has access to.
func (c *Client) Repositories(ctx context.Context) ([]Repository, error) {
	var resp repositoriesResponse
	if err := c.getJSON(ctx, "/repos", &resp); err != nil {
		return nil, err
	}
	return resp.Repositories, nil
}

// Builds fetches the builds of a repository, most recent first.
func (c *Client) Builds(ctx context.Context, repoID int64) ([]Build, error) {
	var resp buildsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/repo/%d/builds", repoID), &resp); err != nil {
		return nil, err
	}
	return resp.Builds, nil
}

// Jobs fetches the job matrix of a build, including each job's config and
// current state.
func (c *Client) Jobs(ctx context.Context, buildID int64) ([]Job, error) {
	var resp jobsResponse
	path := fmt.Sprintf("/build/%d/jobs?include=job.config,job.state", buildID)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Travis-API-Version", "3")
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrAPIUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
