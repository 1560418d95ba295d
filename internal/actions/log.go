package actions

import (
	"context"

	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
)

// LogOptions are options for the log command
type LogOptions struct {
	SourceBranch string
}

// LogAction lists the source branch's commits since the merge base, marking
// each as already on the baseline, staged on the landing branch, or still
// pending
func LogAction(ctx context.Context, rc *runtime.Context, opts LogOptions) error {
	source, err := ResolveSourceBranch(rc, opts.SourceBranch)
	if err != nil {
		return err
	}
	baseline := rc.Engine.Baseline()

	mergeBase, err := git.MergeBase(baseline, source)
	if err != nil {
		return err
	}
	commits, err := git.CommitsBetween(mergeBase, source)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		rc.Splog.Info("%s has no commits past the merge base.", tui.ColorBranchName(source, false))
		return nil
	}

	marks, err := git.CherryCommits(ctx, baseline, source)
	if err != nil {
		return err
	}
	onBaseline := make(map[string]bool, len(marks))
	for _, mark := range marks {
		onBaseline[mark.SHA] = mark.Equivalent
	}

	landing := rc.Engine.LandingBranchFor(source)
	onLanding := map[string]bool{}
	if rc.Engine.BranchExists(landing) {
		if landingMarks, err := git.CherryCommits(ctx, landing, source); err == nil {
			for _, mark := range landingMarks {
				onLanding[mark.SHA] = mark.Equivalent
			}
		}
	}

	rc.Splog.Info("Commits on %s since %s:",
		tui.ColorBranchName(source, false), tui.ColorSHA(git.AbbrevSHA(mergeBase)))

	var landed, staged, pending int
	for _, commit := range commits {
		var mark string
		switch {
		case onBaseline[commit.SHA]:
			mark = tui.ColorOK("=")
			landed++
		case onLanding[commit.SHA]:
			mark = tui.ColorCyan("*")
			staged++
		default:
			mark = tui.ColorYellow("+")
			pending++
		}
		rc.Splog.Info("  %s %s %s", mark, tui.ColorSHA(commit.ShortSHA), commit.Subject)
	}

	rc.Splog.Newline()
	rc.Splog.Info("%d on %s, %d staged on %s, %d pending.",
		landed, tui.ColorBranchName(baseline, false),
		staged, tui.ColorBranchName(landing, false), pending)
	return nil
}
