package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"regraft.dev/regraft/internal/config"
	regrafterrors "regraft.dev/regraft/internal/errors"
	"regraft.dev/regraft/internal/git"
)

// preflight refuses to start a landing operation on a repository that is
// dirty, mid-operation, or already running a session
func (e *engineImpl) preflight(ctx context.Context) error {
	clean, err := git.IsWorktreeClean()
	if err != nil {
		return fmt.Errorf("failed to check worktree: %w", err)
	}
	if !clean {
		return regrafterrors.ErrDirtyWorktree
	}

	if git.IsRebaseInProgress(ctx) || git.IsCherryPickInProgress(ctx) ||
		git.IsMergeInProgress(ctx) || git.IsMailboxInProgress(ctx) {
		return regrafterrors.ErrOperationInProgress
	}

	if config.HasSessionState(e.repoRoot) {
		return regrafterrors.ErrSessionInProgress
	}

	return nil
}

// beginSession runs the preflight, takes the backup tag, creates the
// landing branch at startPoint and persists session state plus a
// preliminary metadata record. Nothing is rewritten until it returns.
func (e *engineImpl) beginSession(ctx context.Context, sourceBranch string, strategy Strategy,
	planned []string, mergeBase, baselineTip, startPoint string, opts StartOptions) (*config.SessionState, error) {

	if err := e.preflight(ctx); err != nil {
		return nil, err
	}

	landing := opts.LandingBranch
	if landing == "" {
		landing = e.LandingBranchFor(sourceBranch)
	}

	if git.BranchExists(landing) {
		if !opts.Force {
			return nil, fmt.Errorf("landing branch %s already exists (re-run with --force to recreate it)", landing)
		}
		if err := git.DeleteBranch(ctx, landing); err != nil {
			return nil, fmt.Errorf("failed to recreate landing branch: %w", err)
		}
	}

	e.mu.RLock()
	autoBackup := e.autoBackup
	baseline := e.baseline
	e.mu.RUnlock()

	backupTag := ""
	if autoBackup && !opts.NoBackup && sourceBranch != "" {
		tag, err := e.BackupBranch(ctx, sourceBranch)
		if err != nil {
			return nil, fmt.Errorf("failed to create backup tag: %w", err)
		}
		backupTag = tag
	}

	if err := git.CreateBranchAt(ctx, landing, startPoint); err != nil {
		return nil, err
	}

	session := &config.SessionState{
		SourceBranch:     sourceBranch,
		Baseline:         baseline,
		LandingBranch:    landing,
		MergeBase:        mergeBase,
		Strategy:         strategy.String(),
		PlannedSHAs:      planned,
		BackupTag:        backupTag,
		BaselineRevision: baselineTip,
		StartedAt:        time.Now().UTC(),
	}
	if err := config.PersistSessionState(e.repoRoot, session); err != nil {
		_ = git.DeleteBranch(ctx, landing)
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	// Provenance is recorded before the first object is rewritten so the
	// backup tag is findable even after a crash
	e.writeMetadata(session, "")

	return session, nil
}

// writeMetadata records landing provenance in the metadata ref namespace
func (e *engineImpl) writeMetadata(session *config.SessionState, landedAt string) {
	meta := &git.LandingMeta{
		BaselineRevision: stringPtr(session.BaselineRevision),
		Strategy:         stringPtr(session.Strategy),
	}
	if session.SourceBranch != "" {
		meta.SourceBranch = stringPtr(session.SourceBranch)
		if rev, err := git.GetRevision(context.Background(), session.SourceBranch); err == nil {
			meta.SourceRevision = stringPtr(rev)
		}
	}
	if session.BackupTag != "" {
		meta.BackupTag = stringPtr(session.BackupTag)
	}
	if landedAt != "" {
		meta.LandedAt = stringPtr(landedAt)
	}
	_ = git.WriteMetadataRef(session.LandingBranch, meta)
}

// abandonStart rolls back a session whose operation failed outright
// before any conflict state existed
func (e *engineImpl) abandonStart(ctx context.Context, session *config.SessionState) {
	_ = git.DeleteMetadataRef(session.LandingBranch)
	if git.BranchExists(session.LandingBranch) {
		_ = git.DeleteBranch(ctx, session.LandingBranch)
	}
	_ = config.ClearSessionState(e.repoRoot)
	_ = e.rebuild()
}

// returnToBranch checks out branchName, falling back when it is empty or
// no longer exists
func (e *engineImpl) returnToBranch(ctx context.Context, branchName, fallback string) {
	if branchName != "" && git.BranchExists(branchName) {
		_ = git.CheckoutBranch(ctx, branchName)
		return
	}
	if fallback != "" && git.BranchExists(fallback) {
		_ = git.CheckoutBranch(ctx, fallback)
	}
}

// conflictExit persists continuation state and builds the conflict result.
// After it returns, `regraft continue` and `regraft abort` are the two
// ways forward.
func (e *engineImpl) conflictExit(ctx context.Context, session *config.SessionState,
	op, currentSHA string, remaining []string, annotate bool, checkedOut string) (*LandingResult, error) {

	cont := &config.ContinuationState{
		Op:               op,
		LandingBranch:    session.LandingBranch,
		SourceBranch:     session.SourceBranch,
		CurrentSHA:       currentSHA,
		RemainingSHAs:    remaining,
		Annotate:         annotate,
		CheckedOutBranch: checkedOut,
	}
	if err := config.PersistContinuationState(e.repoRoot, cont); err != nil {
		return nil, fmt.Errorf("failed to persist continuation state: %w", err)
	}

	files, err := git.UnmergedPaths(ctx)
	if err != nil {
		files = nil
	}

	strategy, _ := ParseStrategy(session.Strategy)
	return &LandingResult{
		Result:        LandConflict,
		Strategy:      strategy,
		LandingBranch: session.LandingBranch,
		LandedCount:   len(session.LandedSHAs),
		TotalPlanned:  len(session.PlannedSHAs),
		BackupTag:     session.BackupTag,
		ConflictFiles: files,
	}, nil
}

// StartReplay lands the source's commits by rebasing them onto the
// baseline tip under the landing branch. The source branch never moves.
func (e *engineImpl) StartReplay(ctx context.Context, sourceBranch string, opts StartOptions) (*LandingResult, error) {
	plan, err := e.Plan(ctx, sourceBranch)
	if err != nil {
		return nil, err
	}
	if plan.Strategy == StrategyNone {
		return &LandingResult{Result: LandNothingToDo, Strategy: StrategyReplay}, nil
	}

	planned := make([]string, 0, len(plan.UniqueCommits))
	for _, commit := range plan.UniqueCommits {
		planned = append(planned, commit.SHA)
	}

	checkedOut := e.CurrentBranch()

	// The landing branch starts at the source tip; the rebase then moves
	// it onto the baseline
	session, err := e.beginSession(ctx, sourceBranch, StrategyReplay, planned,
		plan.MergeBase, plan.BaselineTip, plan.SourceTip, opts)
	if err != nil {
		return nil, err
	}

	result, err := git.Rebase(ctx, session.LandingBranch, plan.BaselineTip, plan.MergeBase, opts.PreserveMerges)
	if err != nil {
		e.abandonStart(ctx, session)
		return nil, err
	}
	if result == git.RebaseConflict {
		return e.conflictExit(ctx, session, config.OpReplay, "", nil, false, checkedOut)
	}

	session.LandedSHAs = session.PlannedSHAs
	_ = config.PersistSessionState(e.repoRoot, session)

	if err := e.FinishSession(ctx); err != nil {
		return nil, err
	}

	return &LandingResult{
		Result:        LandDone,
		Strategy:      StrategyReplay,
		LandingBranch: session.LandingBranch,
		LandedCount:   len(planned),
		TotalPlanned:  len(planned),
		BackupTag:     session.BackupTag,
	}, nil
}

// StartPick lands commits one at a time with cherry-pick on a landing
// branch cut from the baseline tip. When shas is empty the planned unique
// set is used. Picked commits are annotated with their source SHA unless
// opts.NoAnnotate is set.
func (e *engineImpl) StartPick(ctx context.Context, sourceBranch string, shas []string, opts StartOptions) (*LandingResult, error) {
	plan, err := e.Plan(ctx, sourceBranch)
	if err != nil {
		return nil, err
	}

	if len(shas) == 0 {
		for _, commit := range plan.UniqueCommits {
			shas = append(shas, commit.SHA)
		}
	} else {
		// Resolve abbreviated SHAs up front so the session file carries
		// full revisions
		resolved := make([]string, 0, len(shas))
		for _, sha := range shas {
			full, err := git.GetRevision(ctx, sha)
			if err != nil {
				return nil, fmt.Errorf("not a commit: %s", sha)
			}
			resolved = append(resolved, full)
		}
		shas = resolved
	}

	if len(shas) == 0 {
		return &LandingResult{Result: LandNothingToDo, Strategy: StrategyPick}, nil
	}

	checkedOut := e.CurrentBranch()

	session, err := e.beginSession(ctx, sourceBranch, StrategyPick, shas,
		plan.MergeBase, plan.BaselineTip, plan.BaselineTip, opts)
	if err != nil {
		return nil, err
	}

	if err := git.CheckoutBranch(ctx, session.LandingBranch); err != nil {
		e.abandonStart(ctx, session)
		return nil, err
	}

	annotate := !opts.NoAnnotate
	result, err := e.drainPicks(ctx, session, shas, annotate, checkedOut)
	if err != nil {
		return nil, err
	}
	if result.Result == LandConflict {
		return result, nil
	}

	e.returnToBranch(ctx, checkedOut, sourceBranch)
	if err := e.FinishSession(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// drainPicks applies queued cherry-picks onto the checked-out landing
// branch, persisting progress after every commit
func (e *engineImpl) drainPicks(ctx context.Context, session *config.SessionState,
	queue []string, annotate bool, checkedOut string) (*LandingResult, error) {

	for i, sha := range queue {
		result, err := git.CherryPick(ctx, sha, annotate)
		if err != nil {
			return nil, err
		}
		if result == git.CherryPickConflict {
			return e.conflictExit(ctx, session, config.OpPick, sha, queue[i+1:], annotate, checkedOut)
		}

		// Applied or skipped as already present; either way it is handled
		session.LandedSHAs = append(session.LandedSHAs, sha)
		if err := config.PersistSessionState(e.repoRoot, session); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
	}

	return &LandingResult{
		Result:        LandDone,
		Strategy:      StrategyPick,
		LandingBranch: session.LandingBranch,
		LandedCount:   len(session.LandedSHAs),
		TotalPlanned:  len(session.PlannedSHAs),
		BackupTag:     session.BackupTag,
	}, nil
}

// StartMerge lands the source with a single merge commit on a landing
// branch cut from the baseline tip. History is preserved exactly.
func (e *engineImpl) StartMerge(ctx context.Context, sourceBranch string, opts StartOptions) (*LandingResult, error) {
	plan, err := e.Plan(ctx, sourceBranch)
	if err != nil {
		return nil, err
	}
	if plan.Strategy == StrategyNone {
		return &LandingResult{Result: LandNothingToDo, Strategy: StrategyMerge}, nil
	}

	planned := make([]string, 0, len(plan.UniqueCommits))
	for _, commit := range plan.UniqueCommits {
		planned = append(planned, commit.SHA)
	}

	checkedOut := e.CurrentBranch()

	session, err := e.beginSession(ctx, sourceBranch, StrategyMerge, planned,
		plan.MergeBase, plan.BaselineTip, plan.BaselineTip, opts)
	if err != nil {
		return nil, err
	}

	if err := git.CheckoutBranch(ctx, session.LandingBranch); err != nil {
		e.abandonStart(ctx, session)
		return nil, err
	}

	message := fmt.Sprintf("Merge branch '%s' into %s", sourceBranch, session.LandingBranch)
	result, err := git.MergeNoFF(ctx, sourceBranch, message)
	if err != nil {
		e.returnToBranch(ctx, checkedOut, sourceBranch)
		e.abandonStart(ctx, session)
		return nil, err
	}
	if result == git.MergeConflictResult {
		return e.conflictExit(ctx, session, config.OpMerge, "", nil, false, checkedOut)
	}
	if result == git.MergeNothingToDo {
		e.returnToBranch(ctx, checkedOut, sourceBranch)
		e.abandonStart(ctx, session)
		return &LandingResult{Result: LandNothingToDo, Strategy: StrategyMerge}, nil
	}

	session.LandedSHAs = session.PlannedSHAs
	_ = config.PersistSessionState(e.repoRoot, session)

	e.returnToBranch(ctx, checkedOut, sourceBranch)
	if err := e.FinishSession(ctx); err != nil {
		return nil, err
	}

	return &LandingResult{
		Result:        LandDone,
		Strategy:      StrategyMerge,
		LandingBranch: session.LandingBranch,
		LandedCount:   len(planned),
		TotalPlanned:  len(planned),
		BackupTag:     session.BackupTag,
	}, nil
}

// LandFiles copies whole files from the source branch onto a landing
// branch cut from the baseline and commits them with a message that
// references the source revision. No commit history moves over.
func (e *engineImpl) LandFiles(ctx context.Context, sourceBranch string, pathspecs []string, opts StartOptions) (*LandingResult, error) {
	if len(pathspecs) == 0 {
		return nil, fmt.Errorf("no paths given")
	}
	if !e.BranchExists(sourceBranch) {
		return nil, regrafterrors.NewBranchNotFoundError(sourceBranch)
	}

	e.mu.RLock()
	baseline := e.baseline
	e.mu.RUnlock()

	mergeBase, err := git.MergeBase(baseline, sourceBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base: %w", err)
	}
	baselineTip, err := git.GetRevision(ctx, baseline)
	if err != nil {
		return nil, err
	}
	sourceTip, err := git.GetRevision(ctx, sourceBranch)
	if err != nil {
		return nil, err
	}

	checkedOut := e.CurrentBranch()

	session, err := e.beginSession(ctx, sourceBranch, StrategyFiles, nil,
		mergeBase, baselineTip, baselineTip, opts)
	if err != nil {
		return nil, err
	}

	if err := git.CheckoutBranch(ctx, session.LandingBranch); err != nil {
		e.abandonStart(ctx, session)
		return nil, err
	}

	if err := git.CheckoutPaths(ctx, sourceTip, pathspecs); err != nil {
		e.returnToBranch(ctx, checkedOut, sourceBranch)
		e.abandonStart(ctx, session)
		return nil, err
	}

	staged, err := git.HasStagedChanges()
	if err != nil {
		return nil, err
	}
	if !staged {
		e.returnToBranch(ctx, checkedOut, sourceBranch)
		e.abandonStart(ctx, session)
		return &LandingResult{Result: LandNothingToDo, Strategy: StrategyFiles}, nil
	}

	landedFiles, err := git.RunGitCommandLinesWithContext(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Land %d file(s) from %s\n\n(landed from commit %s)",
		len(landedFiles), sourceBranch, sourceTip)
	if err := git.Commit(ctx, message); err != nil {
		e.returnToBranch(ctx, checkedOut, sourceBranch)
		e.abandonStart(ctx, session)
		return nil, err
	}

	e.returnToBranch(ctx, checkedOut, sourceBranch)
	if err := e.FinishSession(ctx); err != nil {
		return nil, err
	}

	return &LandingResult{
		Result:        LandDone,
		Strategy:      StrategyFiles,
		LandingBranch: session.LandingBranch,
		LandedCount:   len(landedFiles),
		TotalPlanned:  len(landedFiles),
		BackupTag:     session.BackupTag,
	}, nil
}

// ApplyPatches lands an exported format-patch series onto a landing
// branch cut from the baseline, using git am with three-way fallback
func (e *engineImpl) ApplyPatches(ctx context.Context, patchDir string, opts StartOptions) (*LandingResult, error) {
	patches, err := collectPatchFiles(patchDir)
	if err != nil {
		return nil, err
	}
	if len(patches) == 0 {
		return &LandingResult{Result: LandNothingToDo, Strategy: StrategyApply}, nil
	}

	e.mu.RLock()
	baseline := e.baseline
	e.mu.RUnlock()

	baselineTip, err := git.GetRevision(ctx, baseline)
	if err != nil {
		return nil, err
	}

	if opts.LandingBranch == "" {
		opts.LandingBranch = e.LandingBranchFor(filepath.Base(filepath.Clean(patchDir)))
	}

	checkedOut := e.CurrentBranch()

	session, err := e.beginSession(ctx, "", StrategyApply, nil,
		baselineTip, baselineTip, baselineTip, opts)
	if err != nil {
		return nil, err
	}

	if err := git.CheckoutBranch(ctx, session.LandingBranch); err != nil {
		e.abandonStart(ctx, session)
		return nil, err
	}

	result, err := git.ApplyMailbox(ctx, patches, true)
	if err != nil {
		e.returnToBranch(ctx, checkedOut, baseline)
		e.abandonStart(ctx, session)
		return nil, err
	}
	if result == git.MailboxConflict {
		return e.conflictExit(ctx, session, config.OpApply, "", nil, false, checkedOut)
	}

	e.returnToBranch(ctx, checkedOut, baseline)
	if err := e.FinishSession(ctx); err != nil {
		return nil, err
	}

	return &LandingResult{
		Result:        LandDone,
		Strategy:      StrategyApply,
		LandingBranch: session.LandingBranch,
		LandedCount:   len(patches),
		TotalPlanned:  len(patches),
		BackupTag:     session.BackupTag,
	}, nil
}

// collectPatchFiles returns the .patch files in a directory in apply order
func collectPatchFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read patch directory: %w", err)
	}

	var patches []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".patch") {
			continue
		}
		patches = append(patches, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(patches)
	return patches, nil
}

// ContinueSession resumes the interrupted operation after conflicts were
// resolved and staged, drains queued work, and finishes the session when
// nothing is left
func (e *engineImpl) ContinueSession(ctx context.Context) (*LandingResult, error) {
	cont, err := config.GetContinuationState(e.repoRoot)
	if err != nil {
		return nil, regrafterrors.ErrNoOperationInProgress
	}
	session, err := config.GetSessionState(e.repoRoot)
	if err != nil {
		return nil, regrafterrors.ErrNoSession
	}

	switch cont.Op {
	case config.OpReplay:
		return e.continueReplay(ctx, cont, session)
	case config.OpPick:
		return e.continuePick(ctx, cont, session)
	case config.OpMerge:
		return e.continueMerge(ctx, cont, session)
	case config.OpApply:
		return e.continueApply(ctx, cont, session)
	}
	return nil, fmt.Errorf("unknown operation in continuation state: %q", cont.Op)
}

func (e *engineImpl) continueReplay(ctx context.Context, cont *config.ContinuationState,
	session *config.SessionState) (*LandingResult, error) {

	result, err := git.RebaseContinue(ctx)
	if err != nil {
		return nil, err
	}
	if result == git.RebaseConflict {
		// Stopped again on the next commit
		return e.conflictExit(ctx, session, config.OpReplay, "", nil, false, cont.CheckedOutBranch)
	}

	// The rebase ran on a detached HEAD; move the landing branch to the
	// rebased tip before leaving
	newRev, err := git.GetRevision(ctx, "HEAD")
	if err != nil {
		return nil, err
	}
	if err := git.UpdateBranchRef(cont.LandingBranch, newRev); err != nil {
		return nil, err
	}

	e.returnToBranch(ctx, cont.CheckedOutBranch, cont.SourceBranch)

	session.LandedSHAs = session.PlannedSHAs
	_ = config.PersistSessionState(e.repoRoot, session)

	if err := e.FinishSession(ctx); err != nil {
		return nil, err
	}

	return &LandingResult{
		Result:        LandDone,
		Strategy:      StrategyReplay,
		LandingBranch: session.LandingBranch,
		LandedCount:   len(session.PlannedSHAs),
		TotalPlanned:  len(session.PlannedSHAs),
		BackupTag:     session.BackupTag,
	}, nil
}

func (e *engineImpl) continuePick(ctx context.Context, cont *config.ContinuationState,
	session *config.SessionState) (*LandingResult, error) {

	result, err := git.CherryPickContinue(ctx)
	if err != nil {
		return nil, err
	}
	if result == git.CherryPickConflict {
		return e.conflictExit(ctx, session, config.OpPick, cont.CurrentSHA, cont.RemainingSHAs,
			cont.Annotate, cont.CheckedOutBranch)
	}

	session.LandedSHAs = append(session.LandedSHAs, cont.CurrentSHA)
	if err := config.PersistSessionState(e.repoRoot, session); err != nil {
		return nil, err
	}

	drained, err := e.drainPicks(ctx, session, cont.RemainingSHAs, cont.Annotate, cont.CheckedOutBranch)
	if err != nil {
		return nil, err
	}
	if drained.Result == LandConflict {
		return drained, nil
	}

	e.returnToBranch(ctx, cont.CheckedOutBranch, cont.SourceBranch)
	if err := e.FinishSession(ctx); err != nil {
		return nil, err
	}
	return drained, nil
}

func (e *engineImpl) continueMerge(ctx context.Context, cont *config.ContinuationState,
	session *config.SessionState) (*LandingResult, error) {

	result, err := git.MergeContinue(ctx)
	if err != nil {
		return nil, err
	}
	if result == git.MergeConflictResult {
		return e.conflictExit(ctx, session, config.OpMerge, "", nil, false, cont.CheckedOutBranch)
	}

	session.LandedSHAs = session.PlannedSHAs
	_ = config.PersistSessionState(e.repoRoot, session)

	e.returnToBranch(ctx, cont.CheckedOutBranch, cont.SourceBranch)
	if err := e.FinishSession(ctx); err != nil {
		return nil, err
	}

	return &LandingResult{
		Result:        LandDone,
		Strategy:      StrategyMerge,
		LandingBranch: session.LandingBranch,
		LandedCount:   len(session.PlannedSHAs),
		TotalPlanned:  len(session.PlannedSHAs),
		BackupTag:     session.BackupTag,
	}, nil
}

func (e *engineImpl) continueApply(ctx context.Context, cont *config.ContinuationState,
	session *config.SessionState) (*LandingResult, error) {

	result, err := git.MailboxContinue(ctx)
	if err != nil {
		return nil, err
	}
	if result == git.MailboxConflict {
		return e.conflictExit(ctx, session, config.OpApply, "", nil, false, cont.CheckedOutBranch)
	}

	e.returnToBranch(ctx, cont.CheckedOutBranch, session.Baseline)
	if err := e.FinishSession(ctx); err != nil {
		return nil, err
	}

	return &LandingResult{
		Result:        LandDone,
		Strategy:      StrategyApply,
		LandingBranch: session.LandingBranch,
		BackupTag:     session.BackupTag,
	}, nil
}

// PickQueued drains cherry-picks still queued by an interrupted pick.
// Useful when the current pick was finished by hand with git directly.
func (e *engineImpl) PickQueued(ctx context.Context) (*LandingResult, error) {
	cont, err := config.GetContinuationState(e.repoRoot)
	if err != nil {
		return nil, regrafterrors.ErrNoOperationInProgress
	}
	if cont.Op != config.OpPick {
		return nil, fmt.Errorf("interrupted operation is %s, not a pick", cont.Op)
	}
	if git.IsCherryPickInProgress(ctx) {
		return nil, regrafterrors.ErrOperationInProgress
	}
	session, err := config.GetSessionState(e.repoRoot)
	if err != nil {
		return nil, regrafterrors.ErrNoSession
	}

	drained, err := e.drainPicks(ctx, session, cont.RemainingSHAs, cont.Annotate, cont.CheckedOutBranch)
	if err != nil {
		return nil, err
	}
	if drained.Result == LandConflict {
		return drained, nil
	}

	e.returnToBranch(ctx, cont.CheckedOutBranch, cont.SourceBranch)
	if err := e.FinishSession(ctx); err != nil {
		return nil, err
	}
	return drained, nil
}

// FinishSession records final landing metadata and clears session and
// continuation state
func (e *engineImpl) FinishSession(ctx context.Context) error {
	session, err := config.GetSessionState(e.repoRoot)
	if err != nil {
		return regrafterrors.ErrNoSession
	}

	e.writeMetadata(session, git.GetCurrentDate())

	if err := config.ClearContinuationState(e.repoRoot); err != nil {
		return err
	}
	if err := config.ClearSessionState(e.repoRoot); err != nil {
		return err
	}

	return e.rebuild()
}

// AbortSession aborts whatever git operation is in flight, removes the
// landing branch and clears session state. The source and baseline
// branches were never moved, so aborting is always safe. With
// restoreBackup the source branch is additionally reset to the backup tag.
func (e *engineImpl) AbortSession(ctx context.Context, restoreBackup bool) error {
	session, err := config.GetSessionState(e.repoRoot)
	if err != nil {
		return regrafterrors.ErrNoSession
	}
	cont, _ := config.GetContinuationState(e.repoRoot)

	switch {
	case git.IsRebaseInProgress(ctx):
		if err := git.RebaseAbort(ctx); err != nil {
			return err
		}
	case git.IsCherryPickInProgress(ctx):
		if err := git.CherryPickAbort(ctx); err != nil {
			return err
		}
	case git.IsMergeInProgress(ctx):
		if err := git.MergeAbort(ctx); err != nil {
			return err
		}
	case git.IsMailboxInProgress(ctx):
		if err := git.MailboxAbort(ctx); err != nil {
			return err
		}
	}

	// Leave the landing branch before deleting it
	target := ""
	if cont != nil {
		target = cont.CheckedOutBranch
	}
	fallback := session.SourceBranch
	if fallback == "" {
		fallback = session.Baseline
	}
	e.returnToBranch(ctx, target, fallback)

	if session.LandingBranch != "" && git.BranchExists(session.LandingBranch) {
		if err := git.DeleteBranch(ctx, session.LandingBranch); err != nil {
			return err
		}
	}
	_ = git.DeleteMetadataRef(session.LandingBranch)

	if restoreBackup && session.BackupTag != "" {
		if err := e.RestoreBackup(ctx, session.BackupTag); err != nil {
			return err
		}
	}

	if err := config.ClearContinuationState(e.repoRoot); err != nil {
		return err
	}
	if err := config.ClearSessionState(e.repoRoot); err != nil {
		return err
	}

	return e.rebuild()
}

func stringPtr(s string) *string {
	return &s
}
