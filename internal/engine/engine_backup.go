package engine

import (
	"context"
	"fmt"
	"strings"

	regrafterrors "regraft.dev/regraft/internal/errors"
	"regraft.dev/regraft/internal/git"
)

// BackupTagPrefix namespaces backup tags so they never collide with
// release tags. The full shape is regraft/backup/<branch>/<timestamp>.
const BackupTagPrefix = "regraft/backup/"

// BackupBranch tags the branch tip under the backup namespace and
// returns the tag name
func (e *engineImpl) BackupBranch(ctx context.Context, branchName string) (string, error) {
	if !git.BranchExists(branchName) {
		return "", regrafterrors.NewBranchNotFoundError(branchName)
	}

	rev, err := git.GetRevision(ctx, branchName)
	if err != nil {
		return "", err
	}

	tag := BackupTagPrefix + branchName + "/" + git.GetCurrentDate()
	message := fmt.Sprintf("regraft backup of %s", branchName)
	if err := git.CreateTag(ctx, tag, rev, message); err != nil {
		return "", fmt.Errorf("failed to tag %s: %w", branchName, err)
	}

	return tag, nil
}

// ListBackups returns backup tags newest first, for one branch or for
// all branches when branchName is empty
func (e *engineImpl) ListBackups(ctx context.Context, branchName string) ([]string, error) {
	prefix := BackupTagPrefix
	if branchName != "" {
		prefix += branchName + "/"
	}
	return git.ListTags(ctx, prefix)
}

// PruneBackups deletes all but the keep newest backup tags of a branch
// and returns the deleted tag names
func (e *engineImpl) PruneBackups(ctx context.Context, branchName string, keep int) ([]string, error) {
	if branchName == "" {
		return nil, fmt.Errorf("prune needs a branch name")
	}
	if keep < 0 {
		keep = 0
	}

	tags, err := e.ListBackups(ctx, branchName)
	if err != nil {
		return nil, err
	}
	if len(tags) <= keep {
		return nil, nil
	}

	var deleted []string
	for _, tag := range tags[keep:] {
		if err := git.DeleteTag(ctx, tag); err != nil {
			return deleted, err
		}
		deleted = append(deleted, tag)
	}
	return deleted, nil
}

// RestoreBackup moves the branch named inside the tag back to the tagged
// commit. The branch may have been deleted since, in which case it is
// recreated.
func (e *engineImpl) RestoreBackup(ctx context.Context, tag string) error {
	if !strings.HasPrefix(tag, BackupTagPrefix) {
		return fmt.Errorf("%s is not a regraft backup tag", tag)
	}

	rest := strings.TrimPrefix(tag, BackupTagPrefix)
	cut := strings.LastIndex(rest, "/")
	if cut <= 0 {
		return fmt.Errorf("malformed backup tag name: %s", tag)
	}
	branchName := rest[:cut]

	sha, err := git.ResolveTag(ctx, tag)
	if err != nil {
		return fmt.Errorf("failed to resolve backup tag: %w", err)
	}

	if !git.BranchExists(branchName) {
		if err := git.CreateBranchAt(ctx, branchName, sha); err != nil {
			return err
		}
		return e.rebuild()
	}

	// Resetting the checked-out branch needs the worktree updated too
	if e.CurrentBranch() == branchName {
		if err := git.HardReset(ctx, sha); err != nil {
			return err
		}
		return e.rebuild()
	}

	if err := git.UpdateBranchRef(branchName, sha); err != nil {
		return err
	}
	return e.rebuild()
}
