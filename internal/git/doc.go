// Package git provides low-level Git operations.
//
// It wraps git command execution and go-git plumbing behind a Go-friendly
// interface for:
//   - Branch management (create, delete, checkout, update-ref)
//   - History queries (merge base, commit ranges, cherry marks, patch ids)
//   - Replay operations (rebase --onto, cherry-pick, merge, am)
//   - Conflict state (unmerged files, marker hunks, resolution)
//   - Safety nets (backup tags, metadata refs, range-diff verification)
//
// This package should be the only place where direct git commands are executed.
package git
