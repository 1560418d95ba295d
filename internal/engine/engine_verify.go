package engine

import (
	"context"
	"fmt"

	regrafterrors "regraft.dev/regraft/internal/errors"
	"regraft.dev/regraft/internal/git"
)

// Verify compares the source branch's commits against the landing
// branch's with range-diff, then crosschecks every matched pair with
// stable patch ids. Patch ids ignore commit messages, so picks rewritten
// only by their source annotation still verify clean. A clean report
// means every source commit landed with its patch intact.
func (e *engineImpl) Verify(ctx context.Context, sourceBranch string) (*VerifyReport, error) {
	e.mu.RLock()
	baseline := e.baseline
	e.mu.RUnlock()

	if !e.BranchExists(sourceBranch) {
		return nil, regrafterrors.NewBranchNotFoundError(sourceBranch)
	}
	landing := e.LandingBranchFor(sourceBranch)
	if !git.BranchExists(landing) {
		return nil, fmt.Errorf("no landing branch %s to verify (land %s first)", landing, sourceBranch)
	}

	oldBase, err := git.MergeBase(baseline, sourceBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base: %w", err)
	}

	// The landing branch hangs off the baseline revision recorded when it
	// was created; fall back to the live merge base for landings made
	// before metadata existed
	newBase := ""
	if meta, err := git.ReadMetadataRef(landing); err == nil && meta.BaselineRevision != nil {
		newBase = *meta.BaselineRevision
	}
	if newBase == "" {
		newBase, err = git.MergeBase(baseline, landing)
		if err != nil {
			return nil, fmt.Errorf("failed to find merge base: %w", err)
		}
	}

	summary, err := git.RangeDiff(ctx, oldBase, sourceBranch, newBase, landing)
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{
		SourceBranch:  sourceBranch,
		LandingBranch: landing,
		OldRange:      fmt.Sprintf("%s..%s", git.AbbrevSHA(oldBase), sourceBranch),
		NewRange:      fmt.Sprintf("%s..%s", git.AbbrevSHA(newBase), landing),
		Summary:       summary,
	}

	annotationOnly, mismatches, err := crosscheckPatchIDs(ctx, summary.Entries)
	if err != nil {
		return nil, err
	}
	report.AnnotationOnly = annotationOnly
	report.PatchMismatches = mismatches

	return report, nil
}

// crosscheckPatchIDs recomputes stable patch ids for the commit pairs
// range-diff matched up. Pairs whose ids disagree changed while landing
// and are reported as mismatches; pairs range-diff marked modified whose
// ids still agree differ only in their message.
func crosscheckPatchIDs(ctx context.Context, entries []git.RangeDiffEntry) (annotationOnly, mismatches []string, err error) {
	var left, right []string
	for _, entry := range entries {
		if !pairedEntry(entry) {
			continue
		}
		left = append(left, entry.LeftSHA)
		right = append(right, entry.RightSHA)
	}
	if len(left) == 0 {
		return nil, nil, nil
	}

	leftIDs, err := git.BatchPatchIDs(ctx, left)
	if err != nil {
		return nil, nil, err
	}
	rightIDs, err := git.BatchPatchIDs(ctx, right)
	if err != nil {
		return nil, nil, err
	}

	for _, entry := range entries {
		if !pairedEntry(entry) {
			continue
		}
		switch {
		case leftIDs[entry.LeftSHA] != rightIDs[entry.RightSHA]:
			mismatches = append(mismatches, entry.Subject)
		case entry.Disposition == git.RangeDiffModified:
			annotationOnly = append(annotationOnly, entry.Subject)
		}
	}
	return annotationOnly, mismatches, nil
}

func pairedEntry(entry git.RangeDiffEntry) bool {
	if entry.LeftSHA == "" || entry.RightSHA == "" {
		return false
	}
	return entry.Disposition == git.RangeDiffEqual || entry.Disposition == git.RangeDiffModified
}
