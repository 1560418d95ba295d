package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// MergeResult represents the result of a merge operation
type MergeResult int

const (
	// MergeDone indicates the merge completed
	MergeDone MergeResult = iota
	// MergeConflictResult indicates the merge stopped on conflicts
	MergeConflictResult
	// MergeNothingToDo indicates the target was already up to date
	MergeNothingToDo
)

// MergeNoFF merges rev into the current branch with a merge commit even
// when a fast-forward is possible, so the landed work stays visible as a
// single integration point
func MergeNoFF(ctx context.Context, rev, message string) (MergeResult, error) {
	args := []string{"merge", "--no-ff"}
	if message != "" {
		args = append(args, "-m", message)
	}
	args = append(args, rev)

	output, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		if IsMergeInProgress(ctx) {
			return MergeConflictResult, nil
		}
		return MergeConflictResult, fmt.Errorf("merge of %s failed: %w", rev, err)
	}

	if containsAny(output, "Already up to date") {
		return MergeNothingToDo, nil
	}
	return MergeDone, nil
}

// MergeFFOnly fast-forwards the current branch to rev, failing if the
// histories have diverged
func MergeFFOnly(ctx context.Context, rev string) error {
	_, err := RunGitCommandWithContext(ctx, "merge", "--ff-only", rev)
	if err != nil {
		return fmt.Errorf("fast-forward to %s failed: %w", rev, err)
	}
	return nil
}

// IsMergeInProgress checks if a merge is currently in progress
func IsMergeInProgress(ctx context.Context) bool {
	gitDir, err := GitDir(ctx)
	if err != nil {
		return false
	}

	_, err = os.Stat(filepath.Join(gitDir, "MERGE_HEAD"))
	return err == nil
}

// MergeContinue concludes an in-progress merge after conflicts were staged
func MergeContinue(ctx context.Context) (MergeResult, error) {
	_, err := RunGitCommandWithContext(ctx, "-c", "core.editor=true", "merge", "--continue")
	if err != nil {
		if IsMergeInProgress(ctx) {
			return MergeConflictResult, nil
		}
		return MergeConflictResult, fmt.Errorf("merge continue failed: %w", err)
	}
	return MergeDone, nil
}

// MergeAbort aborts an in-progress merge and restores the pre-merge state
func MergeAbort(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "merge", "--abort")
	if err != nil {
		return fmt.Errorf("merge abort failed: %w", err)
	}
	return nil
}
