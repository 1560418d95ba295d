package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5/plumbing"
)

// RebaseResult represents the result of a rebase operation
type RebaseResult int

const (
	// RebaseDone indicates the rebase was successful
	RebaseDone RebaseResult = iota
	// RebaseConflict indicates a conflict occurred during rebase
	RebaseConflict
)

// GitDir returns the absolute path of the .git directory
func GitDir(ctx context.Context) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to locate git dir: %w", err)
	}
	return filepath.Clean(output), nil
}

// Rebase replays the commits of branchName that come after from onto the
// onto revision. branchName itself is moved to the rebased tip; the
// worktree is restored to whatever was checked out before.
//
// The rebase runs on a detached HEAD so branchName is never "checked out
// elsewhere" and the branch ref only moves after the rebase fully
// succeeds. With preserveMerges the original merge topology is recreated
// instead of flattened.
func Rebase(ctx context.Context, branchName, onto, from string, preserveMerges bool) (RebaseResult, error) {
	// Save current branch/detached HEAD
	currentBranch, err := GetCurrentBranch()
	var currentRev string
	if err != nil {
		currentBranch = ""
		currentRev, _ = RunGitCommandWithContext(ctx, "rev-parse", "HEAD")
	}

	// Get the SHA of the branch we want to rebase
	branchRev, err := RunGitCommandWithContext(ctx, "rev-parse", branchName)
	if err != nil {
		return RebaseConflict, fmt.Errorf("failed to get revision for %s: %w", branchName, err)
	}

	// git rebase --onto <onto> <from> <branchRev>
	// Rebasing a raw SHA leaves the result on a detached HEAD
	args := []string{"rebase"}
	if preserveMerges {
		args = append(args, "--rebase-merges")
	}
	args = append(args, "--onto", onto, from, branchRev)

	_, err = RunGitCommandWithContext(ctx, args...)
	if err != nil {
		// Check if rebase is in progress (conflict)
		if IsRebaseInProgress(ctx) {
			return RebaseConflict, nil
		}
		// Rebase failed for another reason; clean up and restore
		_, _ = RunGitCommandWithContext(ctx, "rebase", "--abort")
		restoreCheckout(ctx, currentBranch, currentRev)
		return RebaseConflict, fmt.Errorf("rebase of %s onto %s failed: %w", branchName, onto, err)
	}

	// Get the new rebased SHA
	newRev, err := RunGitCommandWithContext(ctx, "rev-parse", "HEAD")
	if err != nil {
		return RebaseConflict, fmt.Errorf("failed to get new revision after rebase: %w", err)
	}

	// Update the branch reference to the new rebased commit
	if err := UpdateBranchRef(branchName, newRev); err != nil {
		return RebaseConflict, fmt.Errorf("failed to update branch reference %s: %w", branchName, err)
	}

	restoreCheckout(ctx, currentBranch, currentRev)
	return RebaseDone, nil
}

// restoreCheckout returns the worktree to the branch or detached revision
// that was checked out before a detached-HEAD operation
func restoreCheckout(ctx context.Context, branchName, rev string) {
	if branchName != "" {
		if err := CheckoutBranch(ctx, branchName); err != nil {
			_ = CheckoutDetached(ctx, branchName)
		}
	} else if rev != "" {
		_ = CheckoutDetached(ctx, rev)
	}
}

// IsRebaseInProgress checks if a rebase is currently in progress
func IsRebaseInProgress(ctx context.Context) bool {
	// Check for .git/rebase-merge or .git/rebase-apply directories
	// This is more reliable than checking REBASE_HEAD which can persist after rebase
	gitDir, err := GitDir(ctx)
	if err != nil {
		return false
	}

	// Interactive / merge-backend rebase
	if _, err := os.Stat(filepath.Join(gitDir, "rebase-merge")); err == nil {
		return true
	}
	// Apply-backend rebase
	if _, err := os.Stat(filepath.Join(gitDir, "rebase-apply")); err == nil {
		return true
	}
	return false
}

// RebaseContinue continues an in-progress rebase after conflicts were
// staged. core.editor is disabled so rebase never drops into an editor
// for the replayed commit messages.
func RebaseContinue(ctx context.Context) (RebaseResult, error) {
	_, err := RunGitCommandWithContext(ctx, "-c", "core.editor=true", "rebase", "--continue")
	if err != nil {
		// Check if rebase is still in progress (another conflict)
		if IsRebaseInProgress(ctx) {
			return RebaseConflict, nil
		}
		return RebaseConflict, fmt.Errorf("rebase continue failed: %w", err)
	}

	return RebaseDone, nil
}

// RebaseSkip skips the current commit of an in-progress rebase
func RebaseSkip(ctx context.Context) (RebaseResult, error) {
	_, err := RunGitCommandWithContext(ctx, "rebase", "--skip")
	if err != nil {
		if IsRebaseInProgress(ctx) {
			return RebaseConflict, nil
		}
		return RebaseConflict, fmt.Errorf("rebase skip failed: %w", err)
	}

	return RebaseDone, nil
}

// RebaseAbort aborts an in-progress rebase
func RebaseAbort(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "rebase", "--abort")
	if err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}

// GetRebaseHead returns the commit being rebased (REBASE_HEAD)
func GetRebaseHead() (string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return "", err
	}

	ref, err := repo.Reference(plumbing.ReferenceName("REBASE_HEAD"), true)
	if err != nil {
		return "", fmt.Errorf("rebase head not found: %w", err)
	}
	return ref.Hash().String(), nil
}
