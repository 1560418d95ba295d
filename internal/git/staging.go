package git

import (
	"context"
	"fmt"
	"strings"
)

// StageAll stages all changes including untracked files
func StageAll(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "add", "-A")
	if err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}

// StagePaths stages specific paths
func StagePaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to stage %d path(s): %w", len(paths), err)
	}
	return nil
}

// HasStagedChanges checks if there are staged changes
func HasStagedChanges() (bool, error) {
	output, err := RunGitCommand("diff", "--cached", "--shortstat")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUnstagedChanges checks if there are unstaged changes to tracked files
func HasUnstagedChanges() (bool, error) {
	output, err := RunGitCommand("diff", "--name-only")
	if err != nil {
		return false, fmt.Errorf("failed to check unstaged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUntrackedFiles checks if there are untracked files
func HasUntrackedFiles() (bool, error) {
	output, err := RunGitCommand("ls-files", "--others", "--exclude-standard")
	if err != nil {
		return false, fmt.Errorf("failed to check untracked files: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// IsWorktreeClean reports whether the worktree has no staged, unstaged or
// untracked changes. Landing operations refuse to start on a dirty tree.
func IsWorktreeClean() (bool, error) {
	staged, err := HasStagedChanges()
	if err != nil {
		return false, err
	}
	unstaged, err := HasUnstagedChanges()
	if err != nil {
		return false, err
	}
	untracked, err := HasUntrackedFiles()
	if err != nil {
		return false, err
	}
	return !staged && !unstaged && !untracked, nil
}

// Commit records the staged changes with the given message
func Commit(ctx context.Context, message string) error {
	_, err := RunGitCommandWithContext(ctx, "commit", "-m", message)
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
