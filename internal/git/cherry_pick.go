package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// CherryPickResult represents the result of a cherry-pick operation
type CherryPickResult int

const (
	// CherryPickDone indicates the cherry-pick applied cleanly
	CherryPickDone CherryPickResult = iota
	// CherryPickConflict indicates the cherry-pick stopped on conflicts
	CherryPickConflict
	// CherryPickEmpty indicates the commit was already present and was skipped
	CherryPickEmpty
)

// CherryPick applies a single commit onto HEAD. With annotate the commit
// message gains a "(cherry picked from commit ...)" trailer recording the
// source SHA.
func CherryPick(ctx context.Context, sha string, annotate bool) (CherryPickResult, error) {
	args := []string{"cherry-pick"}
	if annotate {
		args = append(args, "-x")
	}
	args = append(args, sha)

	_, err := RunGitCommandWithContext(ctx, args...)
	if err == nil {
		return CherryPickDone, nil
	}

	// A pick of an already-applied change stops with "--allow-empty" advice
	// and sequencer state still present. Check the message before the
	// in-progress state or the empty pick would read as a conflict.
	if isEmptyPickError(err) {
		_, _ = RunGitCommandWithContext(ctx, "cherry-pick", "--skip")
		return CherryPickEmpty, nil
	}

	if IsCherryPickInProgress(ctx) {
		return CherryPickConflict, nil
	}

	return CherryPickConflict, fmt.Errorf("cherry-pick of %s failed: %w", AbbrevSHA(sha), err)
}

// IsCherryPickInProgress checks if a cherry-pick is currently in progress
func IsCherryPickInProgress(ctx context.Context) bool {
	gitDir, err := GitDir(ctx)
	if err != nil {
		return false
	}

	if _, err := os.Stat(filepath.Join(gitDir, "CHERRY_PICK_HEAD")); err == nil {
		return true
	}
	// Multi-commit picks keep their position in the sequencer directory
	if _, err := os.Stat(filepath.Join(gitDir, "sequencer")); err == nil {
		return true
	}
	return false
}

// CherryPickContinue continues an in-progress cherry-pick after conflicts
// were staged
func CherryPickContinue(ctx context.Context) (CherryPickResult, error) {
	_, err := RunGitCommandWithContext(ctx, "-c", "core.editor=true", "cherry-pick", "--continue")
	if err != nil {
		if IsCherryPickInProgress(ctx) {
			return CherryPickConflict, nil
		}
		return CherryPickConflict, fmt.Errorf("cherry-pick continue failed: %w", err)
	}
	return CherryPickDone, nil
}

// CherryPickSkip drops the current commit of an in-progress cherry-pick
func CherryPickSkip(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "cherry-pick", "--skip")
	if err != nil {
		return fmt.Errorf("cherry-pick skip failed: %w", err)
	}
	return nil
}

// CherryPickAbort aborts an in-progress cherry-pick and restores HEAD
func CherryPickAbort(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "cherry-pick", "--abort")
	if err != nil {
		return fmt.Errorf("cherry-pick abort failed: %w", err)
	}
	return nil
}

// isEmptyPickError matches the failure git reports when a cherry-pick
// produces an empty commit because the change already exists upstream
func isEmptyPickError(err error) bool {
	gitErr := AsGitCommandError(err)
	if gitErr == nil {
		return false
	}
	return containsAny(gitErr.Stderr+gitErr.Stdout,
		"The previous cherry-pick is now empty",
		"--allow-empty",
		"nothing to commit",
	)
}
