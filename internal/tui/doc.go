// Package tui provides the terminal user interface for regraft.
//
// It handles:
//   - Interactive prompts and selections (using survey and bubbletea)
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - Conflict hunk rendering with inline diffs
package tui
