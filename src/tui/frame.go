package tui

import (
	"fmt"
	"strconv"
	"strings"

	"trytravis/src/travis"
)

// RenderFrame renders the complete job matrix as one line per job:
//
//	#1  P linux s python TOXENV=py36
//
// Each frame replaces the previous one on screen, so the output is the whole
// table every time. Returns an error if any job carries an unrecognized
// state.
func RenderFrame(jobs []travis.Job) (string, error) {
	numberWidth := len(strconv.Itoa(len(jobs)))

	var b strings.Builder
	for i, job := range jobs {
		kind, err := travis.ClassifyState(job.State)
		if err != nil {
			return "", err
		}
		glyph, style := stateGlyph(kind)

		platform := job.Config.OS
		if platform == "osx" {
			platform = " osx "
		}

		sudo := "s"
		if !job.Config.SudoEnabled() {
			sudo = "c"
		}

		lang := job.Config.Language
		if lang == "" {
			lang = "generic"
		}

		row := "#" + strings.Join([]string{
			PadRight(strconv.Itoa(i+1), numberWidth),
			glyph,
			platform,
			sudo,
			lang,
			job.Config.Env,
		}, " ")

		b.WriteString(style.Render(strings.TrimRight(row, " ")))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// renderHeader renders the single status line shown above the job matrix.
func renderHeader(buildID int64, spin string, done bool) string {
	if done {
		return headerStyle.Render(fmt.Sprintf("Build %d finished", buildID))
	}
	return spinStyle.Render(spin) + headerStyle.Render(fmt.Sprintf("Watching build %d", buildID))
}
