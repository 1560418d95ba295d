package git

import (
	"context"

	regrafterrors "regraft.dev/regraft/internal/errors"
)

// GetAllBranchNames returns all local branch names in the repository
func GetAllBranchNames() ([]string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return nil, err
	}
	return repo.GetBranchNames()
}

// GetCurrentBranch returns the current branch name
func GetCurrentBranch() (string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return "", err
	}
	name, err := repo.GetCurrentBranch()
	if err != nil {
		return "", regrafterrors.ErrNotOnBranch
	}
	return name, nil
}

// BranchExists reports whether a local branch with the given name exists
func BranchExists(branchName string) bool {
	_, err := RunGitCommand("show-ref", "--verify", "--quiet", "refs/heads/"+branchName)
	return err == nil
}

// GetRevision resolves a branch name, tag or revision expression to a full SHA
func GetRevision(ctx context.Context, rev string) (string, error) {
	return RunGitCommandWithContext(ctx, "rev-parse", "--verify", rev+"^{commit}")
}

// AbbrevSHA shortens a full SHA for display
func AbbrevSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
