package actions

import (
	"context"
	"fmt"
	"strings"

	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/github"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
	"regraft.dev/regraft/internal/utils"
)

// SubmitOptions are options for the submit command
type SubmitOptions struct {
	SourceBranch string

	// Title overrides the generated PR title
	Title string

	// Draft opens the PR as a draft
	Draft bool

	// Force pushes with force-with-lease, needed after the landing branch
	// was recreated
	Force bool

	// NoPR pushes the branch without touching pull requests
	NoPR bool
}

// SubmitAction pushes the landing branch and opens or refreshes its pull
// request against the baseline. The PR body carries the landing provenance
// and the verification summary.
func SubmitAction(ctx context.Context, rc *runtime.Context, opts SubmitOptions) error {
	source, err := ResolveSourceBranch(rc, opts.SourceBranch)
	if err != nil {
		return err
	}

	landing := rc.Engine.LandingBranchFor(source)
	if !rc.Engine.BranchExists(landing) {
		return fmt.Errorf("no landing branch %s to submit; land %s first", landing, source)
	}
	if rc.Engine.HasSession() {
		return fmt.Errorf("a landing is still in progress; finish it with 'regraft continue' or cancel it with 'regraft abort'")
	}

	remote := rc.Engine.Remote()
	rc.Splog.Info("Pushing %s to %s...", tui.ColorBranchName(landing, false), remote)
	if err := git.PushBranch(ctx, remote, landing, opts.Force); err != nil {
		return err
	}

	if opts.NoPR {
		rc.Splog.Info("Pushed %s.", tui.ColorBranchName(landing, false))
		return nil
	}
	if rc.GitHub == nil {
		rc.Splog.Info("Pushed %s.", tui.ColorBranchName(landing, false))
		rc.Splog.Tip("Set GITHUB_TOKEN or log in with gh to open pull requests from here.")
		return nil
	}

	return submitPullRequest(ctx, rc, source, landing, opts)
}

func submitPullRequest(ctx context.Context, rc *runtime.Context, source, landing string, opts SubmitOptions) error {
	owner, repo := rc.GitHub.GetOwnerRepo()
	baseline := rc.Engine.Baseline()
	body := buildPRBody(ctx, rc, source, landing)

	existing, err := rc.GitHub.GetPullRequestByBranch(ctx, owner, repo, landing)
	if err != nil {
		return fmt.Errorf("failed to look up pull requests for %s: %w", landing, err)
	}

	if existing == nil {
		title := opts.Title
		if title == "" {
			title = fmt.Sprintf("Land %s onto %s", source, baseline)
			if utils.IsInteractive() {
				entered, err := tui.PromptTextInput("Pull request title", title)
				if err != nil {
					return err
				}
				if entered != "" {
					title = entered
				}
			}
		}
		pr, err := rc.GitHub.CreatePullRequest(ctx, owner, repo, github.CreatePROptions{
			Title: title,
			Body:  body,
			Head:  landing,
			Base:  baseline,
			Draft: opts.Draft,
		})
		if err != nil {
			return fmt.Errorf("failed to create pull request: %w", err)
		}
		rc.Splog.Info("Opened %s %s", tui.ColorPRNumber(pr.Number), tui.ColorDim(pr.HTMLURL))
		attachPRMetadata(rc, landing, pr)
		return nil
	}

	update := github.UpdatePROptions{Body: &body}
	if opts.Title != "" {
		update.Title = &opts.Title
	}
	if err := rc.GitHub.UpdatePullRequest(ctx, owner, repo, existing.Number, update); err != nil {
		return fmt.Errorf("failed to update pull request: %w", err)
	}
	rc.Splog.Info("Updated %s %s", tui.ColorPRNumber(existing.Number), tui.ColorDim(existing.HTMLURL))
	attachPRMetadata(rc, landing, existing)
	return nil
}

// buildPRBody summarizes the landing for reviewers: provenance from the
// metadata ref plus the range-diff verification outcome
func buildPRBody(ctx context.Context, rc *runtime.Context, source, landing string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lands `%s` onto `%s`.\n", source, rc.Engine.Baseline())

	if meta, err := git.ReadMetadataRef(landing); err == nil {
		if meta.Strategy != nil && *meta.Strategy != "" {
			fmt.Fprintf(&b, "\nStrategy: %s\n", *meta.Strategy)
		}
		if meta.SourceRevision != nil && *meta.SourceRevision != "" {
			fmt.Fprintf(&b, "Source revision: %s\n", git.AbbrevSHA(*meta.SourceRevision))
		}
		if meta.BackupTag != nil && *meta.BackupTag != "" {
			fmt.Fprintf(&b, "Backup tag: `%s`\n", *meta.BackupTag)
		}
	}

	if report, err := rc.Engine.Verify(ctx, source); err == nil && report.Summary != nil {
		fmt.Fprintf(&b, "\nVerification: %s\n", report.Summary.String())
		for _, subject := range report.AnnotationOnly {
			fmt.Fprintf(&b, "- message changed only: %s\n", subject)
		}
		for _, subject := range report.PatchMismatches {
			fmt.Fprintf(&b, "- patch id changed: %s\n", subject)
		}
	}

	return b.String()
}

// attachPRMetadata records the PR on the landing branch's metadata ref,
// best effort
func attachPRMetadata(rc *runtime.Context, landing string, pr *github.PullRequestInfo) {
	meta, err := git.ReadMetadataRef(landing)
	if err != nil {
		return
	}
	meta.PrInfo = &git.PrInfo{
		Number:  &pr.Number,
		Base:    &pr.Base,
		URL:     &pr.HTMLURL,
		Title:   &pr.Title,
		State:   &pr.State,
		IsDraft: &pr.Draft,
	}
	if err := git.WriteMetadataRef(landing, meta); err != nil {
		rc.Splog.Debug("could not record PR on metadata ref: %v", err)
	}
}
