// Package config manages the persisted trytravis configuration: the target
// repository URL and the Travis API token, stored as two flat files under a
// per-user config directory.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrRunningInCI indicates the process is itself executing inside Travis.
	// Submitting from inside a Travis build would trigger builds forever.
	ErrRunningInCI = errors.New("detected that we are running in Travis, stopping to prevent infinite loops")

	// ErrNotConfigured indicates a required config value has not been saved yet.
	ErrNotConfigured = errors.New("not configured")

	// ErrInvalidRepoURL indicates the repository URL failed validation.
	ErrInvalidRepoURL = errors.New("invalid repository URL")

	// ErrAborted indicates the user declined the confirmation prompt.
	ErrAborted = errors.New("operation aborted by user")
)

var (
	httpsURLPattern = regexp.MustCompile(`^https://(?:www\.)?github\.com/([^/]+)/([^/]+)$`)
	sshURLPattern   = regexp.MustCompile(`^ssh://git@github\.com/([^/]+)/([^/]+)$`)
)

const (
	repoFile  = "repo"
	tokenFile = "token"

	// safetySubstring must appear in the repository name before we agree to
	// force-push to it.
	safetySubstring = "trytravis"
)

// Store reads and writes the repo and token files. The directory is resolved
// once at process entry and threaded in; In/Out drive interactive prompts and
// default to stdin/stdout.
type Store struct {
	Dir string
	In  io.Reader
	Out io.Writer

	// reader wraps In exactly once so buffered read-ahead from one prompt
	// doesn't swallow the next prompt's line.
	reader *bufio.Reader
}

// NewStore creates a Store rooted at dir, prompting on stdin/stdout.
func NewStore(dir string) *Store {
	return &Store{Dir: dir, In: os.Stdin, Out: os.Stdout}
}

// DefaultDir returns the per-user trytravis config directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(base, "trytravis"), nil
}

// SaveRepo validates and persists the target repository URL. An empty url
// prompts for one. The URL must look like a GitHub HTTPS or SSH URL, the
// repository name must contain "trytravis", and the user must confirm before
// anything is written.
func (s *Store) SaveRepo(url string) error {
	if url == "" {
		var err error
		url, err = s.prompt("Input the URL of the GitHub repository to use as a `trytravis` repository: ")
		if err != nil {
			return err
		}
	}
	url = strings.TrimSpace(url)

	_, name, ok := matchRepoURL(url)
	if !ok {
		return fmt.Errorf("%w: %q does not look like a valid GitHub URL, expected "+
			"`https://github.com/[USERNAME]/[REPOSITORY]` or `ssh://git@github.com/[USERNAME]/[REPOSITORY]`",
			ErrInvalidRepoURL, url)
	}
	if !strings.Contains(name, safetySubstring) {
		return fmt.Errorf("%w: you must have `trytravis` in the name of your repository, "+
			"this is a security feature to reduce chances of running `git push -f` on a "+
			"repository you don't mean to", ErrInvalidRepoURL)
	}

	ok, err := s.confirm(fmt.Sprintf("Remember that `trytravis` will make commits on your "+
		"behalf to `%s`. Are you sure you wish to use this repository? "+
		"Type `y` or `yes` to accept: ", url))
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	if err := s.write(repoFile, url); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Repository saved successfully.")
	return nil
}

// SaveToken persists the Travis API token verbatim. An empty token prompts
// for one.
func (s *Store) SaveToken(token string) error {
	if token == "" {
		var err error
		token, err = s.prompt("Input the token of the Travis CI to access repository information: ")
		if err != nil {
			return err
		}
	}

	if err := s.write(tokenFile, token); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Token saved successfully.")
	return nil
}

// Repo loads the saved repository URL.
func (s *Store) Repo() (string, error) {
	if err := guardCI(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, repoFile))
	if err != nil {
		return "", fmt.Errorf("%w: could not find your repository, have you run `trytravis --repo`?", ErrNotConfigured)
	}
	return string(data), nil
}

// Token loads the saved Travis API token.
func (s *Store) Token() (string, error) {
	if err := guardCI(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, tokenFile))
	if err != nil {
		return "", fmt.Errorf("%w: could not find your Travis token, have you run `trytravis --token`?", ErrNotConfigured)
	}
	return string(data), nil
}

// Slug parses the `owner/name` project slug out of either URL shape.
func Slug(url string) (string, error) {
	owner, name, ok := matchRepoURL(strings.TrimSpace(url))
	if !ok {
		return "", fmt.Errorf("%w: could not parse the URL (%q) for your repository", ErrInvalidRepoURL, url)
	}
	return owner + "/" + name, nil
}

func matchRepoURL(url string) (owner, name string, ok bool) {
	for _, re := range []*regexp.Regexp{httpsURLPattern, sshURLPattern} {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], m[2], true
		}
	}
	return "", "", false
}

func guardCI() error {
	if _, inCI := os.LookupEnv("TRAVIS"); inCI {
		return ErrRunningInCI
	}
	return nil
}

func (s *Store) write(file, value string) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, file), []byte(value), 0o600); err != nil {
		return fmt.Errorf("could not write %s file: %w", file, err)
	}
	return nil
}

func (s *Store) prompt(question string) (string, error) {
	fmt.Fprint(s.Out, question)
	if s.reader == nil {
		s.reader = bufio.NewReader(s.In)
	}
	line, err := s.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("could not read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (s *Store) confirm(question string) (bool, error) {
	answer, err := s.prompt(question)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
