package tui

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"regraft.dev/regraft/internal/git"
)

// RenderUnmergedFile formats one conflicted path with a note about the
// conflict kind
func RenderUnmergedFile(file git.UnmergedFile) string {
	note := ""
	switch {
	case file.AddedByBoth():
		note = ColorDim(" (added on both sides)")
	case file.DeletedOnOneSide():
		note = ColorDim(" (deleted on one side)")
	}
	return ColorConflict(file.Path) + note
}

// RenderConflictHunk renders one conflict hunk: a header naming the line and
// the two side labels, both sides' lines, and an inline word diff
func RenderConflictHunk(hunk git.ConflictHunk) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("conflict at line %d  %s vs %s\n",
		hunk.StartLine,
		ColorOursLabel(hunk.OursLabel),
		ColorTheirsLabel(hunk.TheirsLabel)))

	for _, line := range hunk.Ours {
		b.WriteString("  " + ColorOursLabel("baseline") + " │ " + line + "\n")
	}
	if hunk.HasBase {
		for _, line := range hunk.Base {
			b.WriteString("  " + ColorDim("ancestor") + " │ " + ColorDim(line) + "\n")
		}
	}
	for _, line := range hunk.Theirs {
		b.WriteString("  " + ColorTheirsLabel("source  ") + " │ " + line + "\n")
	}

	ours := strings.Join(hunk.Ours, "\n")
	theirs := strings.Join(hunk.Theirs, "\n")
	if ours != "" || theirs != "" {
		b.WriteString("  " + ColorDim("changes ") + " │ " + InlineDiff(ours, theirs) + "\n")
	}

	return b.String()
}

// InlineDiff renders a word-level diff between the two sides of a hunk.
// Text only on the baseline side shows red, text only on the source side
// shows green.
func InlineDiff(ours, theirs string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(ours, theirs, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, diff := range diffs {
		text := strings.ReplaceAll(diff.Text, "\n", " ")
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(ColorRed(text))
		case diffmatchpatch.DiffInsert:
			b.WriteString(ColorGreen(text))
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}
