package git

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitSummary describes one commit in a range
type CommitSummary struct {
	SHA      string
	ShortSHA string
	Subject  string
	Author   string
	Date     time.Time
	IsMerge  bool
}

// CommitsBetween returns the commits in base..head, oldest first and
// exclusive of base and anything base can already reach. With an empty
// base it returns everything reachable from head.
func CommitsBetween(base, head string) ([]CommitSummary, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return nil, err
	}

	headHash, err := resolveRefHash(repo, head)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve head: %w", err)
	}

	var baseHash plumbing.Hash
	if base != "" {
		baseHash, err = resolveRefHash(repo, base)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base: %w", err)
		}
	}

	commits, err := iterateCommits(repo, headHash, baseHash)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate commits: %w", err)
	}

	// iterateCommits walks newest first; callers replay oldest first
	result := make([]CommitSummary, 0, len(commits))
	for i := len(commits) - 1; i >= 0; i-- {
		commit := commits[i]
		subject := strings.Split(strings.TrimSpace(commit.Message), "\n")[0]
		result = append(result, CommitSummary{
			SHA:      commit.Hash.String(),
			ShortSHA: commit.Hash.String()[:7],
			Subject:  strings.TrimSpace(subject),
			Author:   commit.Author.Name,
			Date:     commit.Author.When,
			IsMerge:  commit.NumParents() > 1,
		})
	}

	return result, nil
}

// CommitSHAsBetween returns the full SHAs in base..head, oldest first
func CommitSHAsBetween(base, head string) ([]string, error) {
	commits, err := CommitsBetween(base, head)
	if err != nil {
		return nil, err
	}

	shas := make([]string, 0, len(commits))
	for _, commit := range commits {
		shas = append(shas, commit.SHA)
	}
	return shas, nil
}

// ChangedFiles returns the paths touched in base..head, sorted and unique
func ChangedFiles(ctx context.Context, base, head string) ([]string, error) {
	output, err := RunGitCommandWithContext(ctx, "diff", "--name-only", base+".."+head)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}
	if output == "" {
		return nil, nil
	}
	return strings.Split(output, "\n"), nil
}

// DiffStat returns the diffstat summary line for base..head
// (e.g. "3 files changed, 40 insertions(+), 2 deletions(-)")
func DiffStat(ctx context.Context, base, head string) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "diff", "--shortstat", base+".."+head)
	if err != nil {
		return "", fmt.Errorf("failed to compute diffstat: %w", err)
	}
	return strings.TrimSpace(output), nil
}

// iterateCommits collects base..head, newest first. Sources that merged
// the baseline back in have baseline commits reachable below the merge,
// so exclusion covers everything base can reach, not just base itself.
func iterateCommits(repo *Repository, headHash, baseHash plumbing.Hash) ([]*object.Commit, error) {
	// Synchronize go-git operations to prevent concurrent packfile access
	goGitMu.Lock()
	defer goGitMu.Unlock()

	excluded, err := reachableFrom(repo, baseHash)
	if err != nil {
		return nil, err
	}

	var commits []*object.Commit
	visited := make(map[plumbing.Hash]bool)

	queue := []plumbing.Hash{headHash}
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]

		if visited[hash] || excluded[hash] {
			continue
		}
		visited[hash] = true

		commit, err := repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
		}

		commits = append(commits, commit)
		queue = append(queue, commit.ParentHashes...)
	}

	return commits, nil
}

// reachableFrom returns every commit hash reachable from start, start
// included. Callers must hold goGitMu.
func reachableFrom(repo *Repository, start plumbing.Hash) (map[plumbing.Hash]bool, error) {
	reachable := make(map[plumbing.Hash]bool)
	if start.IsZero() {
		return reachable, nil
	}

	queue := []plumbing.Hash{start}
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]

		if reachable[hash] {
			continue
		}
		reachable[hash] = true

		commit, err := repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
		}
		queue = append(queue, commit.ParentHashes...)
	}

	return reachable, nil
}
