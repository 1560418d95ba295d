package actions

import (
	"context"

	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
	"regraft.dev/regraft/internal/utils"
)

// PickOptions are options for the pick command
type PickOptions struct {
	SourceBranch  string
	SHAs          []string
	All           bool
	LandingBranch string
	Force         bool
	NoBackup      bool
	NoAnnotate    bool
}

// PickAction cherry-picks commits from the source branch onto a landing
// branch cut from the baseline. With no SHAs it lands the planned unique
// set, offering an interactive selection first when a terminal is attached.
func PickAction(ctx context.Context, rc *runtime.Context, opts PickOptions) error {
	source, err := ResolveSourceBranch(rc, opts.SourceBranch)
	if err != nil {
		return err
	}

	shas := opts.SHAs
	if len(shas) == 0 && !opts.All && utils.IsInteractive() {
		selected, hadPlanned, err := selectCommitsToPick(ctx, rc, source)
		if err != nil {
			return err
		}
		if hadPlanned && len(selected) == 0 {
			rc.Splog.Info("No commits selected.")
			return nil
		}
		shas = selected
	}

	rc.Splog.Info("Picking from %s onto %s...",
		tui.ColorBranchName(source, false),
		tui.ColorBranchName(rc.Engine.Baseline(), false))

	result, err := rc.Engine.StartPick(ctx, source, shas, engine.StartOptions{
		LandingBranch: utils.SanitizeBranchName(opts.LandingBranch),
		Force:         opts.Force,
		NoBackup:      opts.NoBackup,
		NoAnnotate:    opts.NoAnnotate,
	})
	if err != nil {
		return err
	}

	return PrintLandingResult(ctx, rc, result)
}

// selectCommitsToPick shows the planned unique commits and lets the user
// trim the set. hadPlanned is false when the plan had nothing to offer, in
// which case StartPick will report that there is nothing to do.
func selectCommitsToPick(ctx context.Context, rc *runtime.Context, source string) (selected []string, hadPlanned bool, err error) {
	plan, err := rc.Engine.Plan(ctx, source)
	if err != nil {
		return nil, false, err
	}
	if len(plan.UniqueCommits) == 0 {
		return nil, false, nil
	}

	lines := commitLines(plan.UniqueCommits)
	shas := make([]string, 0, len(plan.UniqueCommits))
	for _, commit := range plan.UniqueCommits {
		shas = append(shas, commit.SHA)
	}

	selected, err = tui.PromptCommitSelection("Select commits to land (oldest first)", lines, shas)
	return selected, true, err
}
