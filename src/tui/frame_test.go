package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"trytravis/src/travis"
)

func boolPtr(b bool) *bool { return &b }

func TestRenderFrame(t *testing.T) {
	jobs := []travis.Job{
		{State: "passed", Config: travis.JobConfig{OS: "linux", Language: "python", Env: "TOXENV=py36"}},
		{State: "started", Config: travis.JobConfig{OS: "osx", Language: "python", Sudo: boolPtr(false)}},
		{State: "queued", Config: travis.JobConfig{OS: "linux"}},
	}

	frame, err := RenderFrame(jobs)
	if err != nil {
		t.Fatalf("RenderFrame() unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(ansi.Strip(frame), "\n"), "\n")
	if len(lines) != len(jobs) {
		t.Fatalf("RenderFrame() produced %d lines, want one per job (%d)", len(lines), len(jobs))
	}

	if lines[0] != "#1 P linux s python TOXENV=py36" {
		t.Errorf("line 1 = %q", lines[0])
	}
	// osx is padded and sudo:false shows the container marker.
	if lines[1] != "#2 *  osx  c python" {
		t.Errorf("line 2 = %q", lines[1])
	}
	// Absent language falls back to generic.
	if lines[2] != "#3 * linux s generic" {
		t.Errorf("line 3 = %q", lines[2])
	}
}

func TestRenderFramePadsJobNumbers(t *testing.T) {
	jobs := make([]travis.Job, 10)
	for i := range jobs {
		jobs[i] = travis.Job{State: "passed", Config: travis.JobConfig{OS: "linux", Language: "go"}}
	}

	frame, err := RenderFrame(jobs)
	if err != nil {
		t.Fatalf("RenderFrame() unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(ansi.Strip(frame), "\n"), "\n")
	if !strings.HasPrefix(lines[0], "#1  P") {
		t.Errorf("line 1 = %q, want single-digit index padded to two columns", lines[0])
	}
	if !strings.HasPrefix(lines[9], "#10 P") {
		t.Errorf("line 10 = %q", lines[9])
	}
}

func TestRenderFrameUnknownState(t *testing.T) {
	jobs := []travis.Job{{State: "mystery", Config: travis.JobConfig{OS: "linux"}}}

	_, err := RenderFrame(jobs)
	if !errors.Is(err, travis.ErrUnknownJobState) {
		t.Fatalf("RenderFrame() error = %v, want ErrUnknownJobState", err)
	}
}

func TestRenderFrameEmpty(t *testing.T) {
	frame, err := RenderFrame(nil)
	if err != nil {
		t.Fatalf("RenderFrame() unexpected error: %v", err)
	}
	if frame != "" {
		t.Errorf("RenderFrame(nil) = %q, want empty frame", frame)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{name: "pads short text", s: "1", width: 3, want: "1  "},
		{name: "exact width untouched", s: "abc", width: 3, want: "abc"},
		{name: "wide text untouched", s: "abcdef", width: 3, want: "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PadRight(tt.s, tt.width); got != tt.want {
				t.Errorf("PadRight(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
			}
		})
	}
}
