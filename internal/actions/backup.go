package actions

import (
	"context"
	"fmt"
	"strings"

	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
	"regraft.dev/regraft/internal/utils"
)

// BackupCreateAction tags the branch tip under the backup namespace. With
// no branch it backs up whatever is checked out.
func BackupCreateAction(ctx context.Context, rc *runtime.Context, branchName string) error {
	if branchName == "" {
		branchName = rc.Engine.CurrentBranch()
	}
	if branchName == "" {
		return fmt.Errorf("no branch to back up (detached HEAD); pass a branch name")
	}

	tag, err := rc.Engine.BackupBranch(ctx, branchName)
	if err != nil {
		return err
	}

	rc.Splog.Info("Backed up %s at %s.",
		tui.ColorBranchName(branchName, false), tui.ColorTag(tag))
	return nil
}

// BackupListAction lists backup tags, newest first, for one branch or all
func BackupListAction(ctx context.Context, rc *runtime.Context, branchName string) error {
	tags, err := rc.Engine.ListBackups(ctx, branchName)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		if branchName != "" {
			rc.Splog.Info("No backups found for %s.", tui.ColorBranchName(branchName, false))
		} else {
			rc.Splog.Info("No backups found.")
		}
		return nil
	}

	for _, tag := range tags {
		branch, stamp := splitBackupTag(tag)
		if branch != "" && stamp != "" {
			rc.Splog.Info("%s  %s %s", tui.ColorTag(tag),
				tui.ColorBranchName(branch, false), tui.ColorDim(formatMetaDate(stamp)))
		} else {
			rc.Splog.Info("%s", tui.ColorTag(tag))
		}
	}
	rc.Splog.Tip("Restore one with %s.", tui.ColorCyan("regraft backup --restore <tag>"))
	return nil
}

// BackupRestoreAction resets the tagged branch back to its backup
func BackupRestoreAction(ctx context.Context, rc *runtime.Context, tag string, force bool) error {
	if tag == "" {
		return fmt.Errorf("no backup tag given")
	}

	exists, err := git.TagExists(ctx, tag)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no such backup tag: %s", tag)
	}

	branch, _ := splitBackupTag(tag)
	if !force && utils.IsInteractive() {
		prompt := fmt.Sprintf("Reset %s to %s?", branch, tag)
		if branch == "" {
			prompt = fmt.Sprintf("Restore backup %s?", tag)
		}
		confirmed, err := tui.PromptConfirm(prompt, false)
		if err != nil {
			return err
		}
		if !confirmed {
			rc.Splog.Info("Nothing restored.")
			return nil
		}
	}

	if err := rc.Engine.RestoreBackup(ctx, tag); err != nil {
		return err
	}

	rc.Splog.Info("Restored %s from %s.",
		tui.ColorBranchName(branch, false), tui.ColorTag(tag))
	return nil
}

// BackupPruneAction deletes all but the keep newest backups of a branch.
// With no branch it prunes backups of whatever is checked out.
func BackupPruneAction(ctx context.Context, rc *runtime.Context, branchName string, keep int) error {
	if branchName == "" {
		branchName = rc.Engine.CurrentBranch()
	}
	if branchName == "" {
		return fmt.Errorf("no branch to prune backups for (detached HEAD); pass a branch name")
	}

	deleted, err := rc.Engine.PruneBackups(ctx, branchName, keep)
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		rc.Splog.Info("Nothing to prune; %s has at most %d backup(s).",
			tui.ColorBranchName(branchName, false), keep)
		return nil
	}

	for _, tag := range deleted {
		rc.Splog.Info("Deleted %s", tui.ColorTag(tag))
	}
	rc.Splog.Info("Pruned %d backup(s) of %s, keeping the %d newest.",
		len(deleted), tui.ColorBranchName(branchName, false), keep)
	return nil
}

// splitBackupTag breaks regraft/backup/<branch>/<timestamp> into its branch
// and timestamp parts. Unrecognized names yield empty strings.
func splitBackupTag(tag string) (branch, stamp string) {
	if !strings.HasPrefix(tag, engine.BackupTagPrefix) {
		return "", ""
	}
	rest := strings.TrimPrefix(tag, engine.BackupTagPrefix)
	cut := strings.LastIndex(rest, "/")
	if cut <= 0 {
		return "", ""
	}
	return rest[:cut], rest[cut+1:]
}
