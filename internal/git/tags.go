package git

import (
	"context"
	"fmt"
)

// CreateTag creates an annotated tag pointing at rev
func CreateTag(ctx context.Context, name, rev, message string) error {
	if message == "" {
		message = name
	}
	_, err := RunGitCommandWithContext(ctx, "tag", "-a", name, "-m", message, rev)
	if err != nil {
		return fmt.Errorf("failed to create tag %s at %s: %w", name, rev, err)
	}
	return nil
}

// ListTags returns tag names matching prefix, newest first by creation date
func ListTags(ctx context.Context, prefix string) ([]string, error) {
	args := []string{"tag", "--list", "--sort=-creatordate"}
	if prefix != "" {
		args = append(args, prefix+"*")
	}
	tags, err := RunGitCommandLinesWithContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// DeleteTag deletes a tag
func DeleteTag(ctx context.Context, name string) error {
	_, err := RunGitCommandWithContext(ctx, "tag", "-d", name)
	if err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", name, err)
	}
	return nil
}

// ResolveTag returns the commit SHA a tag points at, peeling annotated tags
func ResolveTag(ctx context.Context, name string) (string, error) {
	sha, err := RunGitCommandWithContext(ctx, "rev-parse", "--verify", name+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve tag %s: %w", name, err)
	}
	return sha, nil
}

// TagExists reports whether a tag exists
func TagExists(ctx context.Context, name string) (bool, error) {
	_, err := RunGitCommandWithContext(ctx, "show-ref", "--verify", "--quiet", "refs/tags/"+name)
	if err != nil {
		if AsGitCommandError(err) != nil {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
