// Package errors provides sentinel errors and custom error types for the regraft application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrRebaseConflict indicates that a rebase replay stopped on a conflict
	ErrRebaseConflict = errors.New("rebase conflict")

	// ErrCherryPickConflict indicates that a cherry-pick stopped on a conflict
	ErrCherryPickConflict = errors.New("cherry-pick conflict")

	// ErrMergeConflict indicates that a merge stopped on a conflict
	ErrMergeConflict = errors.New("merge conflict")

	// ErrApplyConflict indicates that a patch application stopped on a conflict
	ErrApplyConflict = errors.New("patch application conflict")

	// ErrNoOperationInProgress indicates that no resumable git operation is active
	ErrNoOperationInProgress = errors.New("no operation in progress")

	// ErrOperationInProgress indicates a rebase, cherry-pick, merge or am
	// is already underway and must be finished or aborted first
	ErrOperationInProgress = errors.New("another operation is in progress")

	// ErrDirtyWorktree indicates uncommitted changes that would be clobbered
	ErrDirtyWorktree = errors.New("worktree has uncommitted changes")

	// ErrNoSession indicates that no landing session is active
	ErrNoSession = errors.New("no landing session in progress")

	// ErrSessionInProgress indicates that a landing session is already active
	ErrSessionInProgress = errors.New("a landing session is already in progress")
)

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// ConflictError represents a git operation that stopped on unresolved conflicts.
// Op is the git operation that conflicted: "rebase", "cherry-pick", "merge" or "am".
type ConflictError struct {
	Op         string
	BranchName string
	Files      []string
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s conflict on branch %s", e.Op, e.BranchName)
	if len(e.Files) > 0 {
		msg += fmt.Sprintf(" (%s)", strings.Join(e.Files, ", "))
	}
	return msg
}

// Is maps the conflict to the sentinel for its operation
func (e *ConflictError) Is(target error) bool {
	switch e.Op {
	case "rebase":
		return target == ErrRebaseConflict
	case "cherry-pick":
		return target == ErrCherryPickConflict
	case "merge":
		return target == ErrMergeConflict
	case "am":
		return target == ErrApplyConflict
	}
	return false
}

// NewConflictError creates a new ConflictError
func NewConflictError(op, branchName string, files []string) *ConflictError {
	return &ConflictError{Op: op, BranchName: branchName, Files: files}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
