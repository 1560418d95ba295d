package testhelpers

import (
	"context"
	"fmt"

	githubpkg "regraft.dev/regraft/internal/github"
)

// FakeGitHubClient implements githubpkg.Client in memory, recording what
// the code under test asked for
type FakeGitHubClient struct {
	Owner string
	Repo  string

	nextNumber int
	byBranch   map[string]*githubpkg.PullRequestInfo

	// Updates records every UpdatePullRequest call in order
	Updates []githubpkg.UpdatePROptions
}

// NewFakeGitHubClient creates an empty fake for the given repository
func NewFakeGitHubClient(owner, repo string) *FakeGitHubClient {
	return &FakeGitHubClient{
		Owner:      owner,
		Repo:       repo,
		nextNumber: 1,
		byBranch:   make(map[string]*githubpkg.PullRequestInfo),
	}
}

// GetOwnerRepo returns the repository owner and name
func (c *FakeGitHubClient) GetOwnerRepo() (string, string) {
	return c.Owner, c.Repo
}

// CreatePullRequest records a new pull request and returns it
func (c *FakeGitHubClient) CreatePullRequest(_ context.Context, owner, repo string, opts githubpkg.CreatePROptions) (*githubpkg.PullRequestInfo, error) {
	pr := &githubpkg.PullRequestInfo{
		Number:  c.nextNumber,
		HTMLURL: fmt.Sprintf("https://github.com/%s/%s/pull/%d", owner, repo, c.nextNumber),
		Title:   opts.Title,
		Body:    opts.Body,
		State:   "open",
		Draft:   opts.Draft,
		Base:    opts.Base,
		Head:    opts.Head,
	}
	c.nextNumber++
	c.byBranch[opts.Head] = pr
	return pr, nil
}

// UpdatePullRequest applies the update to the stored pull request
func (c *FakeGitHubClient) UpdatePullRequest(_ context.Context, _, _ string, prNumber int, opts githubpkg.UpdatePROptions) error {
	c.Updates = append(c.Updates, opts)
	for _, pr := range c.byBranch {
		if pr.Number != prNumber {
			continue
		}
		if opts.Title != nil {
			pr.Title = *opts.Title
		}
		if opts.Body != nil {
			pr.Body = *opts.Body
		}
		if opts.Base != nil {
			pr.Base = *opts.Base
		}
		if opts.Draft != nil {
			pr.Draft = *opts.Draft
		}
		return nil
	}
	return fmt.Errorf("no pull request #%d", prNumber)
}

// GetPullRequestByBranch returns the stored pull request whose head is the
// branch, or nil when none exists
func (c *FakeGitHubClient) GetPullRequestByBranch(_ context.Context, _, _ string, branchName string) (*githubpkg.PullRequestInfo, error) {
	pr, ok := c.byBranch[branchName]
	if !ok {
		return nil, nil
	}
	return pr, nil
}
