package actions

import (
	"context"
	"fmt"

	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
	"regraft.dev/regraft/internal/utils"
)

// AbortOptions are options for the abort command
type AbortOptions struct {
	// RestoreBackup resets the source branch to the session's backup tag
	RestoreBackup bool

	// Force skips the confirmation prompt
	Force bool
}

// AbortAction cancels the in-flight landing: any interrupted git operation
// is aborted, the landing branch and its metadata are removed, and the
// original branch is checked out again
func AbortAction(ctx context.Context, rc *runtime.Context, opts AbortOptions) error {
	if !rc.Engine.HasSession() {
		return fmt.Errorf("no landing in progress")
	}

	session, err := rc.Engine.Session()
	if err != nil {
		return err
	}

	if !opts.Force && utils.IsInteractive() {
		prompt := fmt.Sprintf("Abort the landing onto %s?", session.LandingBranch)
		if session.SourceBranch != "" {
			prompt = fmt.Sprintf("Abort landing %s onto %s?", session.SourceBranch, session.LandingBranch)
		}
		confirmed, err := tui.PromptConfirm(prompt, true)
		if err != nil {
			return err
		}
		if !confirmed {
			rc.Splog.Info("Keeping the landing in place.")
			return nil
		}
	}

	if opts.RestoreBackup && session.BackupTag == "" {
		return fmt.Errorf("no backup tag recorded for this landing; cannot restore")
	}

	if err := rc.Engine.AbortSession(ctx, opts.RestoreBackup); err != nil {
		return err
	}

	rc.Splog.Info("Landing aborted. The %s branch is untouched.",
		tui.ColorBranchName(rc.Engine.Baseline(), false))
	if opts.RestoreBackup {
		rc.Splog.Info("Restored %s from %s.",
			tui.ColorBranchName(session.SourceBranch, false), tui.ColorTag(session.BackupTag))
	} else if session.BackupTag != "" {
		rc.Splog.Tip("The backup tag %s is still there if you need it.", tui.ColorTag(session.BackupTag))
	}
	return nil
}
