package git

import (
	"context"
	"fmt"
	"strings"
)

// FetchRemote fetches all branches from a remote
func FetchRemote(ctx context.Context, remote string) error {
	_, err := RunGitCommandWithContext(ctx, "fetch", remote)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", remote, err)
	}
	return nil
}

// FetchBranch fetches a single branch from a remote
func FetchBranch(ctx context.Context, remote, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "fetch", remote, branchName)
	if err != nil {
		return fmt.Errorf("failed to fetch %s/%s: %w", remote, branchName, err)
	}
	return nil
}

// PruneRemote fetches from a remote and drops remote-tracking refs for
// branches deleted on the server
func PruneRemote(ctx context.Context, remote string) error {
	_, err := RunGitCommandWithContext(ctx, "fetch", "--prune", remote)
	if err != nil {
		return fmt.Errorf("failed to prune %s: %w", remote, err)
	}
	return nil
}

// HasRemote reports whether a remote with the given name is configured
func HasRemote(ctx context.Context, remote string) (bool, error) {
	remotes, err := RunGitCommandLinesWithContext(ctx, "remote")
	if err != nil {
		return false, fmt.Errorf("failed to list remotes: %w", err)
	}
	for _, name := range remotes {
		if name == remote {
			return true, nil
		}
	}
	return false, nil
}

// RemoteURL returns the fetch URL of a remote
func RemoteURL(ctx context.Context, remote string) (string, error) {
	url, err := RunGitCommandWithContext(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("failed to get URL for remote %s: %w", remote, err)
	}
	return url, nil
}

// RemoteHeadBranch returns the branch the remote's HEAD points at, or ""
// when the symbolic ref is not set locally
func RemoteHeadBranch(ctx context.Context, remote string) string {
	ref, err := RunGitCommandWithContext(ctx, "symbolic-ref", "--short", "refs/remotes/"+remote+"/HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(ref, remote+"/")
}

// PushBranch pushes a branch to a remote, setting the upstream on first
// push. With force the push replaces the remote ref even after history
// was rewritten, but only if the remote still points where our
// remote-tracking ref expects.
func PushBranch(ctx context.Context, remote, branchName string, force bool) error {
	args := []string{"push", "-u"}
	if force {
		args = append(args, "--force-with-lease")
	}
	args = append(args, remote, branchName)
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to push %s to %s: %w", branchName, remote, err)
	}
	return nil
}
