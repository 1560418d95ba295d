package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// MergeBase finds the best common ancestor of two revisions using the
// repository object graph. Returns the full SHA of the merge base.
func MergeBase(rev1, rev2 string) (string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return "", err
	}

	commit1, err := loadCommit(repo, rev1)
	if err != nil {
		return "", err
	}
	commit2, err := loadCommit(repo, rev2)
	if err != nil {
		return "", err
	}

	// Synchronize go-git operations to prevent concurrent packfile access
	goGitMu.Lock()
	defer goGitMu.Unlock()

	bases, err := commit1.MergeBase(commit2)
	if err != nil {
		return "", fmt.Errorf("failed to compute merge base of %s and %s: %w", rev1, rev2, err)
	}
	if len(bases) == 0 {
		return "", fmt.Errorf("no common ancestor between %s and %s", rev1, rev2)
	}

	return bases[0].Hash.String(), nil
}

// IsAncestor reports whether ancestor is reachable from descendant
func IsAncestor(ancestor, descendant string) (bool, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return false, err
	}

	ancestorCommit, err := loadCommit(repo, ancestor)
	if err != nil {
		return false, err
	}
	descendantCommit, err := loadCommit(repo, descendant)
	if err != nil {
		return false, err
	}

	if ancestorCommit.Hash == descendantCommit.Hash {
		return true, nil
	}

	// Synchronize go-git operations to prevent concurrent packfile access
	goGitMu.Lock()
	defer goGitMu.Unlock()

	return ancestorCommit.IsAncestor(descendantCommit)
}

// loadCommit resolves a revision and loads its commit object
func loadCommit(repo *Repository, rev string) (*object.Commit, error) {
	hash, err := resolveRefHash(repo, rev)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", rev, err)
	}

	goGitMu.Lock()
	defer goGitMu.Unlock()

	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
	}
	return commit, nil
}
