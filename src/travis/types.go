package travis

import "time"

// Repository is a repository known to Travis.
type Repository struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Commit is the commit a build was triggered for.
type Commit struct {
	ID          int64     `json:"id"`
	SHA         string    `json:"sha"`
	CommittedAt time.Time `json:"committed_at"`
}

// Build is a single Travis build with the commit that produced it.
type Build struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	State  string `json:"state"`
	Commit Commit `json:"commit"`
}

// Job is one entry in a build's job matrix. State is empty until Travis has
// scheduled the job.
type Job struct {
	ID     int64     `json:"id"`
	State  string    `json:"state"`
	Config JobConfig `json:"config"`
}

// JobConfig describes the environment a job runs in.
type JobConfig struct {
	OS       string `json:"os"`
	Env      string `json:"env"`
	Language string `json:"language"`
	Sudo     *bool  `json:"sudo"`
}

// SudoEnabled reports whether the job runs with sudo; Travis defaults to
// sudo-enabled when the key is absent.
func (c JobConfig) SudoEnabled() bool {
	return c.Sudo == nil || *c.Sudo
}

type repositoriesResponse struct {
	Repositories []Repository `json:"repositories"`
}

type buildsResponse struct {
	Builds []Build `json:"builds"`
}

type jobsResponse struct {
	Jobs []Job `json:"jobs"`
}
