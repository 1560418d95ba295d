// Package engine provides the landing state machine and the strategy
// decision procedure. It plans how a source branch's work reaches the
// baseline, executes the chosen strategy through git, and tracks the
// session from start to finish or abort.
package engine

import (
	"context"

	"regraft.dev/regraft/internal/config"
	"regraft.dev/regraft/internal/git"
)

// SessionReader provides read-only access to repository and session state
// Thread-safe: All methods are safe for concurrent use
type SessionReader interface {
	RepoRoot() string
	Baseline() string
	Remote() string
	CurrentBranch() string
	AllBranchNames() []string
	BranchExists(branchName string) bool

	// LandingBranchFor returns the landing branch name for a source branch
	LandingBranchFor(sourceBranch string) string

	// Session state
	HasSession() bool
	Session() (*config.SessionState, error)

	// LandingBranches returns every landing branch that has metadata,
	// mapped to its provenance record
	LandingBranches() (map[string]*git.LandingMeta, error)
}

// Planner computes landing plans without touching the repository
// Thread-safe: All methods are safe for concurrent use
type Planner interface {
	// Plan inspects source against the baseline and selects a strategy.
	// Pure computation over already-fetched refs; never mutates anything.
	Plan(ctx context.Context, sourceBranch string) (*Plan, error)
}

// StartOptions tunes how a landing operation begins
type StartOptions struct {
	// LandingBranch overrides the landingPrefix + source default
	LandingBranch string

	// Force recreates the landing branch if it already exists
	Force bool

	// NoBackup skips the safety tag even when autoBackup is configured
	NoBackup bool

	// PreserveMerges recreates merge topology during replay instead of
	// flattening it
	PreserveMerges bool

	// NoAnnotate suppresses the source-SHA annotation on picked commits
	NoAnnotate bool
}

// LandingManager executes landing strategies and drives interrupted ones
// forward or back
// Thread-safe: All methods are safe for concurrent use
type LandingManager interface {
	// StartReplay rebases the source's unique commits onto the baseline
	// tip under the landing branch
	StartReplay(ctx context.Context, sourceBranch string, opts StartOptions) (*LandingResult, error)

	// StartPick cherry-picks the given commits (or the planned unique
	// set when shas is empty) onto a landing branch cut from the baseline
	StartPick(ctx context.Context, sourceBranch string, shas []string, opts StartOptions) (*LandingResult, error)

	// StartMerge merges the source into a landing branch cut from the
	// baseline with an explicit merge commit
	StartMerge(ctx context.Context, sourceBranch string, opts StartOptions) (*LandingResult, error)

	// LandFiles copies pathspecs from the source onto a landing branch
	// cut from the baseline and commits them, referencing the source
	// revision. Whole files move over; history does not.
	LandFiles(ctx context.Context, sourceBranch string, pathspecs []string, opts StartOptions) (*LandingResult, error)

	// ApplyPatches lands an exported format-patch series with git am
	ApplyPatches(ctx context.Context, patchDir string, opts StartOptions) (*LandingResult, error)

	// ContinueSession resumes the interrupted operation after conflicts
	// were resolved and staged, drains any queued work, and finishes the
	// session when everything has landed
	ContinueSession(ctx context.Context) (*LandingResult, error)

	// PickQueued drains cherry-picks still queued after a conflict
	PickQueued(ctx context.Context) (*LandingResult, error)

	// FinishSession records landing metadata and clears session state
	FinishSession(ctx context.Context) error

	// AbortSession aborts any in-flight git operation, removes the
	// landing branch and clears session state. With restoreBackup the
	// source branch is reset to the session's backup tag.
	AbortSession(ctx context.Context, restoreBackup bool) error
}

// Verifier checks a finished landing against the original work
// Thread-safe: All methods are safe for concurrent use
type Verifier interface {
	// Verify range-diffs the source range against the landed range and
	// cross-checks patch ids
	Verify(ctx context.Context, sourceBranch string) (*VerifyReport, error)
}

// BackupManager creates and restores safety tags
// Thread-safe: All methods are safe for concurrent use
type BackupManager interface {
	// BackupBranch tags the branch tip under the backup namespace and
	// returns the tag name
	BackupBranch(ctx context.Context, branchName string) (string, error)

	// ListBackups returns backup tags for a branch (all branches when
	// branchName is empty), newest first
	ListBackups(ctx context.Context, branchName string) ([]string, error)

	// RestoreBackup resets the tagged branch to the backup tag
	RestoreBackup(ctx context.Context, tag string) error

	// PruneBackups deletes all but the keep newest backup tags of a
	// branch and returns the deleted tag names
	PruneBackups(ctx context.Context, branchName string, keep int) ([]string, error)
}

// Engine is the core interface for landing operations. It composes
// SessionReader, Planner, LandingManager, Verifier and BackupManager.
// New code should prefer depending on the smaller interfaces.
// Thread-safe: All methods are safe for concurrent use
type Engine interface {
	SessionReader
	Planner
	LandingManager
	Verifier
	BackupManager
}
