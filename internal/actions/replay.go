package actions

import (
	"context"

	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
	"regraft.dev/regraft/internal/utils"
)

// ReplayOptions are options for the replay command
type ReplayOptions struct {
	SourceBranch   string
	LandingBranch  string
	Force          bool
	NoBackup       bool
	PreserveMerges bool
}

// ReplayAction rebases the source branch's unique commits onto the baseline
// tip under a fresh landing branch. The source branch itself never moves.
func ReplayAction(ctx context.Context, rc *runtime.Context, opts ReplayOptions) error {
	source, err := ResolveSourceBranch(rc, opts.SourceBranch)
	if err != nil {
		return err
	}

	rc.Splog.Info("Replaying %s onto %s...",
		tui.ColorBranchName(source, false),
		tui.ColorBranchName(rc.Engine.Baseline(), false))

	result, err := rc.Engine.StartReplay(ctx, source, engine.StartOptions{
		LandingBranch:  utils.SanitizeBranchName(opts.LandingBranch),
		Force:          opts.Force,
		NoBackup:       opts.NoBackup,
		PreserveMerges: opts.PreserveMerges,
	})
	if err != nil {
		return err
	}

	return PrintLandingResult(ctx, rc, result)
}
