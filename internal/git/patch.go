package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatPatch writes one mbox-format patch file per commit in base..head
// into outputDir and returns the generated file paths in apply order
func FormatPatch(ctx context.Context, base, head, outputDir string) ([]string, error) {
	output, err := RunGitCommandWithContext(ctx, "format-patch", "--output-directory", outputDir, base+".."+head)
	if err != nil {
		return nil, fmt.Errorf("format-patch failed for %s..%s: %w", base, head, err)
	}
	if output == "" {
		return nil, nil
	}
	return strings.Split(output, "\n"), nil
}

// FormatPatchCommit writes a single commit as an mbox-format patch file
// into outputDir and returns its path
func FormatPatchCommit(ctx context.Context, sha, outputDir string) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "format-patch", "--output-directory", outputDir, "-1", sha)
	if err != nil {
		return "", fmt.Errorf("format-patch failed for %s: %w", AbbrevSHA(sha), err)
	}
	return strings.TrimSpace(output), nil
}

// MailboxResult represents the result of applying a patch series
type MailboxResult int

const (
	// MailboxDone indicates the whole series applied
	MailboxDone MailboxResult = iota
	// MailboxConflict indicates a patch stopped on conflicts
	MailboxConflict
)

// ApplyMailbox applies a series of mbox-format patches with git am. The
// three-way flag lets git fall back to a content merge (leaving conflict
// markers) when a patch does not apply cleanly against the worktree.
func ApplyMailbox(ctx context.Context, patchFiles []string, threeWay bool) (MailboxResult, error) {
	if len(patchFiles) == 0 {
		return MailboxDone, nil
	}

	args := []string{"am"}
	if threeWay {
		args = append(args, "-3")
	}
	args = append(args, patchFiles...)

	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		if IsMailboxInProgress(ctx) {
			return MailboxConflict, nil
		}
		return MailboxConflict, fmt.Errorf("git am failed: %w", err)
	}
	return MailboxDone, nil
}

// IsMailboxInProgress checks if a git am session is currently in progress
func IsMailboxInProgress(ctx context.Context) bool {
	gitDir, err := GitDir(ctx)
	if err != nil {
		return false
	}

	// git am keeps its queue under rebase-apply with an "applying" marker
	applyDir := filepath.Join(gitDir, "rebase-apply")
	if _, err := os.Stat(applyDir); err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(applyDir, "applying"))
	return err == nil
}

// MailboxContinue resumes an interrupted git am after conflicts were staged
func MailboxContinue(ctx context.Context) (MailboxResult, error) {
	_, err := RunGitCommandWithContext(ctx, "am", "--continue")
	if err != nil {
		if IsMailboxInProgress(ctx) {
			return MailboxConflict, nil
		}
		return MailboxConflict, fmt.Errorf("git am continue failed: %w", err)
	}
	return MailboxDone, nil
}

// MailboxSkip drops the current patch of an interrupted git am
func MailboxSkip(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "am", "--skip")
	if err != nil {
		return fmt.Errorf("git am skip failed: %w", err)
	}
	return nil
}

// MailboxAbort aborts an interrupted git am and restores the original branch
func MailboxAbort(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "am", "--abort")
	if err != nil {
		return fmt.Errorf("git am abort failed: %w", err)
	}
	return nil
}
