package actions

import (
	"context"

	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
	"regraft.dev/regraft/internal/utils"
)

// MergeOptions are options for the merge command
type MergeOptions struct {
	SourceBranch  string
	LandingBranch string
	Force         bool
	NoBackup      bool
}

// MergeAction lands the source branch into a landing branch cut from the
// baseline with a single explicit merge commit, keeping source history intact
func MergeAction(ctx context.Context, rc *runtime.Context, opts MergeOptions) error {
	source, err := ResolveSourceBranch(rc, opts.SourceBranch)
	if err != nil {
		return err
	}

	rc.Splog.Info("Merging %s into a landing branch off %s...",
		tui.ColorBranchName(source, false),
		tui.ColorBranchName(rc.Engine.Baseline(), false))

	result, err := rc.Engine.StartMerge(ctx, source, engine.StartOptions{
		LandingBranch: utils.SanitizeBranchName(opts.LandingBranch),
		Force:         opts.Force,
		NoBackup:      opts.NoBackup,
	})
	if err != nil {
		return err
	}

	return PrintLandingResult(ctx, rc, result)
}
