package git

import (
	"context"
	"fmt"
)

// CheckoutPaths copies the listed paths from rev into the worktree and
// the index, leaving all other files untouched. This is the file-scope
// variant of landing: whole files move over, history does not.
func CheckoutPaths(ctx context.Context, rev string, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no paths to checkout from %s", rev)
	}

	args := append([]string{"checkout", rev, "--"}, paths...)
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to checkout %d path(s) from %s: %w", len(paths), rev, err)
	}
	return nil
}

// ListTreePaths returns every file path tracked at rev
func ListTreePaths(ctx context.Context, rev string) ([]string, error) {
	lines, err := RunGitCommandLinesWithContext(ctx, "ls-tree", "-r", "--name-only", rev)
	if err != nil {
		return nil, fmt.Errorf("failed to list tree of %s: %w", rev, err)
	}
	return lines, nil
}

// PathExistsAt reports whether a path is tracked at rev
func PathExistsAt(ctx context.Context, rev, path string) (bool, error) {
	_, err := RunGitCommandWithContext(ctx, "cat-file", "-e", rev+":"+path)
	if err != nil {
		if AsGitCommandError(err) != nil {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ShowFileAt returns the raw content of a path at rev
func ShowFileAt(ctx context.Context, rev, path string) (string, error) {
	content, err := RunGitCommandRawWithContext(ctx, "show", rev+":"+path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", path, rev, err)
	}
	return content, nil
}
