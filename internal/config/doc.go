// Package config manages regraft configuration and state persistence.
//
// It handles:
//   - Repository-specific configuration
//   - Landing session state from plan to completion
//   - Continuation state for operations interrupted by conflicts
//
// All files live under .git/ so they never pollute the worktree and vanish
// with the clone.
package config
