package engine

import (
	"context"
	"fmt"
	"strings"

	regrafterrors "regraft.dev/regraft/internal/errors"
	"regraft.dev/regraft/internal/git"
)

// Plan inspects sourceBranch against the baseline and selects a landing
// strategy. The computation is read-only and works entirely off local
// refs; fetch first if the comparison should include remote movement.
func (e *engineImpl) Plan(ctx context.Context, sourceBranch string) (*Plan, error) {
	e.mu.RLock()
	baseline := e.baseline
	pickLimit := e.pickLimit
	fileLimit := e.fileLimit
	e.mu.RUnlock()

	if sourceBranch == baseline {
		return nil, fmt.Errorf("source branch and baseline are both %s; nothing to land", baseline)
	}
	if !e.BranchExists(sourceBranch) {
		return nil, regrafterrors.NewBranchNotFoundError(sourceBranch)
	}
	if !e.BranchExists(baseline) {
		return nil, regrafterrors.NewBranchNotFoundError(baseline)
	}

	mergeBase, err := git.MergeBase(baseline, sourceBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base: %w", err)
	}
	sourceTip, err := git.GetRevision(ctx, sourceBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", sourceBranch, err)
	}
	baselineTip, err := git.GetRevision(ctx, baseline)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", baseline, err)
	}

	// All source-side commits past the merge base, for metadata and for
	// merge-commit detection
	sourceCommits, err := git.CommitsBetween(mergeBase, sourceBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to read source commits: %w", err)
	}

	// The unique set is patch-aware: commits whose change already sits on
	// the baseline under another SHA are not landed again
	uniqueSHAs, err := git.UnpickedCommits(ctx, baseline, sourceBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to compare patches: %w", err)
	}
	uniqueSet := make(map[string]bool, len(uniqueSHAs))
	for _, sha := range uniqueSHAs {
		uniqueSet[sha] = true
	}

	var unique []git.CommitSummary
	hasMerges := false
	for _, commit := range sourceCommits {
		if commit.IsMerge {
			hasMerges = true
			continue
		}
		if uniqueSet[commit.SHA] {
			unique = append(unique, commit)
		}
	}

	baselineAheadSHAs, err := git.CommitSHAsBetween(mergeBase, baseline)
	if err != nil {
		return nil, fmt.Errorf("failed to count baseline commits: %w", err)
	}

	sourceFiles, err := git.ChangedFiles(ctx, mergeBase, sourceBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to list source files: %w", err)
	}
	baselineFiles, err := git.ChangedFiles(ctx, mergeBase, baseline)
	if err != nil {
		return nil, fmt.Errorf("failed to list baseline files: %w", err)
	}

	plan := &Plan{
		SourceBranch:    sourceBranch,
		Baseline:        baseline,
		LandingBranch:   e.LandingBranchFor(sourceBranch),
		MergeBase:       mergeBase,
		SourceTip:       sourceTip,
		BaselineTip:     baselineTip,
		UniqueCommits:   unique,
		BaselineAhead:   len(baselineAheadSHAs),
		SourceFiles:     sourceFiles,
		BaselineFiles:   baselineFiles,
		OverlapFiles:    intersect(sourceFiles, baselineFiles),
		HasMergeCommits: hasMerges,
	}

	decide(plan, pickLimit, fileLimit)
	return plan, nil
}

// decide applies the strategy rules in their fixed order and records one
// reason line per rule consulted
func decide(plan *Plan, pickLimit, fileLimit int) {
	unique := len(plan.UniqueCommits)

	// Rule 1: nothing unique means nothing to land
	if unique == 0 {
		plan.Strategy = StrategyNone
		plan.Reasons = append(plan.Reasons,
			"every source change already exists on the baseline")
		return
	}
	plan.Reasons = append(plan.Reasons,
		fmt.Sprintf("%d commit(s) on %s are not on %s", unique, plan.SourceBranch, plan.Baseline))

	// Rule 2: a baseline that never moved makes a direct merge clean by
	// construction
	if plan.BaselineAhead == 0 {
		plan.Strategy = StrategyMerge
		plan.Reasons = append(plan.Reasons,
			fmt.Sprintf("%s has not moved past the merge base; a direct merge lands the work without rewriting it", plan.Baseline))
		plan.addWarnings()
		return
	}
	plan.Reasons = append(plan.Reasons,
		fmt.Sprintf("%s is %d commit(s) ahead of the merge base", plan.Baseline, plan.BaselineAhead))

	// Rules 3 and 4: small commit counts land commit by commit
	if unique <= pickLimit {
		plan.Strategy = StrategyPick
		if len(plan.SourceFiles) <= fileLimit {
			plan.FileScoped = true
			plan.Reasons = append(plan.Reasons,
				fmt.Sprintf("change set touches only %d file(s); file-scope landing is also viable", len(plan.SourceFiles)))
		}
		plan.Reasons = append(plan.Reasons,
			fmt.Sprintf("%d unique commit(s) fit the pick limit of %d", unique, pickLimit))
		plan.addWarnings()
		return
	}

	// Rule 5: everything else replays the whole range
	plan.Strategy = StrategyReplay
	plan.Reasons = append(plan.Reasons,
		fmt.Sprintf("%d unique commit(s) exceed the pick limit of %d; replaying the whole range", unique, pickLimit))
	plan.addWarnings()
}

// addWarnings attaches hazards that hold regardless of the chosen strategy
func (p *Plan) addWarnings() {
	if len(p.OverlapFiles) > 0 {
		preview := p.OverlapFiles
		if len(preview) > 5 {
			preview = preview[:5]
		}
		p.Warnings = append(p.Warnings,
			fmt.Sprintf("%d file(s) changed on both branches (%s): conflicts likely",
				len(p.OverlapFiles), strings.Join(preview, ", ")))
	}

	if p.HasMergeCommits {
		switch p.Strategy {
		case StrategyReplay:
			p.Warnings = append(p.Warnings,
				"source history contains merge commits; replay flattens them unless merges are preserved")
		case StrategyPick:
			p.Warnings = append(p.Warnings,
				"source history contains merge commits; picks land the individual commits, not the merges")
		}
	}
}

// intersect returns the elements present in both sorted-or-not slices,
// preserving a's order
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}

	var result []string
	for _, s := range a {
		if inB[s] {
			result = append(result, s)
		}
	}
	return result
}
